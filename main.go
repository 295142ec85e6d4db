package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/mnk-tictactoe/internal"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/config"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/settings"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	closeLog := func() {}
	defer func() {
		if code := shutdown(recover(), closeLog, os.Stderr); code != 0 {
			os.Exit(code)
		}
	}()

	configPath := flag.String("config", "config.yml", "path to the config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-config path] [settings-file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	conf := config.MustLoad(*configPath)

	logger, closer := initLogger(conf)
	closeLog = closer

	gameSettings := initSettings(conf, flag.Arg(0))

	if err := app.RunApp(logger, conf, gameSettings, os.Stdin, os.Stdout); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// shutdown closes the log output before a fatal error is reported, since os.Exit skips
// deferred calls. It returns the process exit code.
func shutdown(recovered any, closeLog func(), stderr io.Writer) int {
	closeLog()

	if recovered == nil {
		return 0
	}

	fmt.Fprintf(stderr, "%v\n", recovered)

	return 1
}

// initialize settings: the settings file wins over the config.
func initSettings(conf *config.Config, path string) entity.Settings {
	if path == "" {
		return conf.Settings.ToEntity()
	}

	gameSettings, err := settings.Load(path)
	if err != nil {
		panic(err)
	}

	return gameSettings
}

// initialize logger.
func initLogger(conf *config.Config) (*slog.Logger, func()) {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var output io.Writer
	closeLog := func() {}

	switch conf.LogOutput {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		file, err := os.OpenFile(conf.LogOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			panic(fmt.Errorf("failed to open log output: %w", err))
		}

		output = file
		closeLog = func() { _ = file.Close() }
	}

	return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})), closeLog
}

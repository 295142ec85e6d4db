package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/config"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/repository"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/service"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/transport/console"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/mnk-tictactoe/transport/rest"
)

var ErrViewerWithoutStorage = errors.New("the HTTP log viewer needs redis to be enabled")

// RunApp - runs the interactive game on stdin/stdout until the player exits or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config, settings entity.Settings, stdin io.Reader, stdout io.Writer) error {
	log := logger.With("component", "app")

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("could not start a game: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var gameLogRepo repository.GameLogRepository
	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		gameLogRepo = repository.NewGameLogRepository(redisStorage.Connection)
	}

	httpErrCh := make(chan error, 1)
	if conf.HTTPPort != "" {
		if gameLogRepo == nil {
			return ErrViewerWithoutStorage
		}

		router := rest.NewRouter(logger, gameLogRepo)
		go func() {
			if httpErr := rest.Start(ctx, logger, conf.HTTPPort, router); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
				cancel()
			}
		}()
	}

	renderer := console.NewRenderer(stdout, conf.ClearScreen)
	prompter := console.NewPrompter(stdin, renderer)
	defer prompter.Close()
	controller := tictactoe.NewGameController(logger, prompter, renderer,
		tictactoe.Options{IncludeSettingsSnapshot: conf.Features.Editor})
	gameLogs := service.NewGameLogService(logger, conf.LogDir, conf.Features.Editor)
	features := usecase.Features{Editor: conf.Features.Editor, Secret: conf.Features.Secret}

	manager := usecase.NewGameManager(logger, renderer, prompter, controller, gameLogs, gameLogRepo, settings, features)

	err := manager.Run(ctx)
	cancel()

	select {
	case httpErr := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", httpErr)
	default:
	}

	if errors.Is(err, context.Canceled) {
		log.Info("Application context canceled, shutting down")
		return nil
	}

	if err != nil {
		return fmt.Errorf("game manager failed: %w", err)
	}

	return nil
}

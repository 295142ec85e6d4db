package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
)

type Config struct {
	LogLevel    string   `yaml:"log-level" env:"MNK_LOG_LEVEL" env-default:"info"`
	LogOutput   string   `yaml:"log-output" env:"MNK_LOG_OUTPUT" env-default:"stderr"`
	LogDir      string   `yaml:"log-dir" env:"MNK_LOG_DIR" env-default:"."`
	ClearScreen bool     `yaml:"clear-screen" env:"MNK_CLEAR_SCREEN"`
	HTTPPort    string   `yaml:"http-port" env:"MNK_HTTP_PORT" env-default:""`
	Settings    Settings `yaml:"settings"`
	Features    Features `yaml:"features"`
	Redis       Redis    `yaml:"redis"`
}

// Settings are the board settings used when no settings file is given.
type Settings struct {
	Width   int `yaml:"width" env:"MNK_WIDTH" env-default:"3"`
	Height  int `yaml:"height" env:"MNK_HEIGHT" env-default:"3"`
	Matches int `yaml:"matches" env:"MNK_MATCHES" env-default:"3"`
}

// Features toggle the optional parts of the main menu.
type Features struct {
	// Editor allows editing the settings between games and keeps a settings snapshot in every game log.
	Editor bool `yaml:"editor" env:"MNK_EDITOR" env-default:"false"`
	// Secret hides the "Save Game Log" menu item.
	Secret bool `yaml:"secret" env:"MNK_SECRET" env-default:"false"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"MNK_REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"MNK_REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"MNK_REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads the config file and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that Settings) ToEntity() entity.Settings {
	return entity.Settings{
		Width:   that.Width,
		Height:  that.Height,
		Matches: that.Matches,
	}
}

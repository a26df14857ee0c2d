package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeSolve    = "solve"
	ModeSelfPlay = "selfplay"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode       string `yaml:"mode" env:"MODE" env-default:"solve"`
	ProfileDir string `yaml:"profile-dir" env:"PROFILE_DIR"`
	Board      Board  `yaml:"board"`
	Engine     Engine `yaml:"engine"`
}

type Board struct {
	Size     int    `yaml:"size" env:"BOARD_SIZE" env-default:"3"`
	Position string `yaml:"position" env:"BOARD_POSITION"`
	ToMove   string `yaml:"to-move" env:"BOARD_TO_MOVE"`
}

type Engine struct {
	MaxDepth  int  `yaml:"max-depth" env:"ENGINE_MAX_DEPTH" env-default:"0"`
	// FullWidth disables alpha-beta cutoffs. Zero value keeps pruning on, so a
	// yml false is never overwritten by a default.
	FullWidth bool `yaml:"full-width" env:"ENGINE_FULL_WIDTH"`
	TraceTree bool `yaml:"trace-tree" env:"ENGINE_TRACE_TREE" env-default:"false"`
}

// MustLoad - load all configurations from the yml file at path, falling back to
// environment variables and defaults when the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return config, nil
}

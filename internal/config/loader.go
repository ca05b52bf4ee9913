package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// PathEnv names the environment variable holding the YAML config path.
	PathEnv     = "CONFIG_PATH"
	defaultPath = "./config.yaml"
)

// Load reads configuration using the path from CONFIG_PATH, falling back
// to ./config.yaml. Priority: ENV > YAML > defaults (env-default tags).
func Load() (*Config, error) {
	path := os.Getenv(PathEnv)
	return LoadFile(path, path != "")
}

// LoadFile reads configuration from path. When path is empty the default
// location is tried. A missing file is an error only if required is set;
// otherwise ENV and defaults are used alone.
func LoadFile(path string, required bool) (*Config, error) {
	var cfg Config

	if path == "" {
		path = defaultPath
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

const (
	// Relative to the XDG config directories
	DefaultPath = "budgie-rd/config.toml"
	// Prefix of all environment overrides
	EnvPrefix = "BUDGIE_"
)

// Load reads the config file at path on top of the defaults and applies
// environment overrides. An empty path searches the XDG config
// directories and falls back to the defaults if there is no file.
func Load(path string) (*Config, error) {
	conf := Default()

	if path == "" {
		found, err := xdg.SearchConfigFile(DefaultPath)
		if err != nil {
			logrus.WithField("path", DefaultPath).Debugln("No config file found, using defaults")
		}
		path = found
	}

	if path != "" {
		if err := conf.readFile(path); err != nil {
			return nil, err
		}
		logrus.WithField("path", path).Debugln("Loaded config file")
	}

	if err := conf.applyEnv(); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s doesn't exist: %w", path, err)
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err = toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Encode writes the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

package config

import (
	"errors"
	"os"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/flagx"
)

// Config holds runtime settings for the YogaTrack CLI.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	AdminToken         string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 5 * time.Second
}

func (c *Config) Validate() error {
	if c.ServerEndpointAddr == "" {
		return errors.New("server address is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	return nil
}

// LoadConfig applies defaults, then the config file (if any), then flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Load() (*Config, error) {
	return LoadConfig(os.Args[1:])
}

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/yogatrack/internal/flagx"
	"github.com/dmitrijs2005/yogatrack/internal/timex"
	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	RequestTimeout     *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	AdminToken         string          `json:"admin_token" yaml:"admin_token"`
}

func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if flagx.IsYAML(path) {
		err = yaml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = fc.ServerEndpointAddr
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.AdminToken != "" {
		cfg.AdminToken = fc.AdminToken
	}
	return nil
}

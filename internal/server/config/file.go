package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/yogatrack/internal/flagx"
	"github.com/dmitrijs2005/yogatrack/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of Config. Durations accept "10m" style
// strings or integer nanoseconds. Fields left out keep their current value.
type fileConfig struct {
	EndpointAddrGRPC     string          `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	StorageBackend       string          `json:"storage_backend" yaml:"storage_backend"`
	DataDir              string          `json:"data_dir" yaml:"data_dir"`
	DatabaseDSN          string          `json:"database_dsn" yaml:"database_dsn"`
	S3RootUser           string          `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword       string          `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket             string          `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region             string          `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint       string          `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3Prefix             string          `json:"s3_prefix" yaml:"s3_prefix"`
	RedisAddr            string          `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword        string          `json:"redis_password" yaml:"redis_password"`
	RedisKeyPrefix       string          `json:"redis_key_prefix" yaml:"redis_key_prefix"`
	SecretKey            string          `json:"secret_key" yaml:"secret_key"`
	EncryptionKey        string          `json:"encryption_key" yaml:"encryption_key"`
	AdminToken           string          `json:"admin_token" yaml:"admin_token"`
	SessionSweepInterval *timex.Duration `json:"session_sweep_interval" yaml:"session_sweep_interval"`
	LogLevel             string          `json:"log_level" yaml:"log_level"`
	LogFormat            string          `json:"log_format" yaml:"log_format"`
}

// parseFile overlays the JSON or YAML file at path onto config. YAML is
// chosen by the .yaml/.yml extension.
func parseFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &fileConfig{}
	if flagx.IsYAML(path) {
		err = yaml.Unmarshal(data, c)
	} else {
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.StorageBackend, c.StorageBackend)
	set(&config.DataDir, c.DataDir)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.S3Prefix, c.S3Prefix)
	set(&config.RedisAddr, c.RedisAddr)
	set(&config.RedisPassword, c.RedisPassword)
	set(&config.RedisKeyPrefix, c.RedisKeyPrefix)
	set(&config.SecretKey, c.SecretKey)
	set(&config.EncryptionKey, c.EncryptionKey)
	set(&config.AdminToken, c.AdminToken)
	set(&config.LogLevel, c.LogLevel)
	set(&config.LogFormat, c.LogFormat)
	if c.SessionSweepInterval != nil {
		config.SessionSweepInterval = c.SessionSweepInterval.Duration
	}
	return nil
}

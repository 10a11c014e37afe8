// Package config loads runtime configuration for the YogaTrack CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string     address:port of the gRPC server
//	-t duration   per-request timeout
//	-m string     admin token for back-office commands
//
// File schema (JSON shown; YAML uses the same keys):
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "5s",
//	  "admin_token": ""
//	}
package config

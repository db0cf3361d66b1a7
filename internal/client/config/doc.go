// Package config loads runtime configuration for the lumext CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with LUMEXT_, including those of an
//     optional .env file in the working directory.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Durations are either strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://portal.example",
//	  "tenant_path": "/tenant/acme/lumext/user",
//	  "request_timeout": "10s",
//	  "log_level": "debug"
//	}
package config

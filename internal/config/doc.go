// Package config loads runtime configuration for the hospital client CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://api.example.com",
//	  "request_timeout": "30s",
//	  "credentials_db": "hospital.db",
//	  "use_encryption": true,
//	  "verbose": false
//	}
//
// This package does not read environment variables; use the JSON file or
// flags to configure values.
package config

// Package config provides configuration loading and validation for halokit
// tools.
//
// It uses Viper to load configuration from files and environment variables,
// with optional .env support for local development.
//
// # Usage
//
//	var cfg config.RunConfig
//	err := config.Load("halokit", &cfg)
//	cfg.ApplyDefaults()
//	err = cfg.Validate()
//
// Environment variables override file values using underscore-separated
// paths (e.g., LOGGING_LEVEL=debug).
package config

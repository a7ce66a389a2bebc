// Package config loads and validates the authcore configuration.
//
// It uses Viper to merge a YAML config file with environment variables
// (loaded from a .env file when one is present). The top-level Config struct
// aggregates the per-package configs; Load applies defaults and validates
// before returning, so a returned Config is always usable.
package config

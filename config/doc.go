// Package config provides configuration loading and validation for facerelay.
//
// The package handles YAML configuration files, .env files, environment
// variables and CLI flags with automatic merging and validation using
// go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (FACERELAY_ prefix), including those read from .env
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx = config.WithContext(ctx, cfg)
//
// # Environment Variables
//
// All config keys map to environment variables with the FACERELAY_ prefix;
// dots become underscores:
//
//	FACERELAY_SERVER_PORT=8000
//	FACERELAY_STORAGE_PATH=uploads
//	FACERELAY_CORS_EXTRA_ORIGIN=https://kiosk.example
//	FACERELAY_CORS_EXTRA_PORT=5173
//	FACERELAY_ENV=production
//
// # CORS
//
// The allow-list defaults to the local development origins
// http://localhost:3000 and http://localhost:4200. CORSConfig.Origins adds
// cors.extra_origin and http://localhost:<cors.extra_port> when set.
package config

// Package config loads backend settings from the environment or a file.
//
// Environment variables (envconfig):
//   - PORT, HOST: listen address (default 127.0.0.1:8000)
//   - LOG_LEVEL, LOG_DEV: zap level and development mode
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CORS_ORIGINS: comma-separated allowed origins
//   - FINDER_HOME: writable root, defaults to the user's home directory
//   - FINDER_READONLY_ROOTS: comma-separated readable roots
//
// A TOML or YAML file with the same structure can be loaded via LoadFile:
//
//	[server]
//	port = "8100"
//
//	[filesystem]
//	home = "/Users/me"
//	readonly_roots = ["/Applications"]
package config

// Package main is the entry point for the Finder backend server.
//
// The server exposes a path-validated view of the local filesystem to the
// Finder UI: listing, item info, search, preview and mutations confined to
// the user's home directory, with a small set of read-only system roots.
//
// Configuration:
//   - Environment variables (PORT, HOST, LOG_LEVEL, FINDER_HOME, ...)
//   - A TOML or YAML file via -config (replaces the environment)
//   - CLI flags (override both)
//
// Usage:
//
//	# Defaults: 127.0.0.1:8000, home from $HOME
//	./server
//
//	# Config file plus overrides
//	./server -config finder.toml -port 9000 -home /srv/finder
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main

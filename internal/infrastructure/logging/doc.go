// Package logging provides structured logging using uber/zap.
//
// Two modes are available:
//   - Production: JSON output for machine parsing
//   - Development: colored console output
//
// Subsystems take a named child via Component, so filesystem, http and
// server lines can be told apart.
//
// Example Usage:
//
//	logger := logging.FromLevel(cfg.Logging.Level, cfg.Logging.Development)
//	logger.Info("Server starting", zap.String("addr", "127.0.0.1:8000"))
//	fsLogger := logger.Component("filesystem")
package logging

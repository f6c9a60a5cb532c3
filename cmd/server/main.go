package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/finder/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/finder/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/finder/backend/internal/infrastructure/server"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file")
	port := flag.String("port", "", "Server port (overrides config)")
	host := flag.String("host", "", "Bind address (overrides config)")
	home := flag.String("home", "", "Home directory exposed to clients (overrides config)")
	dev := flag.Bool("dev", false, "Development logging")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *home != "" {
		cfg.Filesystem.Home = *home
	}
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	logger := logging.FromLevel(cfg.Logging.Level, cfg.Logging.Development)
	defer logger.Sync()

	srv, err := server.NewServer(cfg)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case sig := <-sigChan:
		logger.Info("Shutting down gracefully", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}
	case err := <-errChan:
		if err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	}
}

// loadConfig reads path when given, otherwise the environment. A bad
// environment falls back to defaults; a bad file is fatal.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadOrDefault(), nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, errors.Join(errors.New("config file rejected"), err)
	}
	return cfg, nil
}

// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-passkey.
//
// go-passkey is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeremyhahn/go-passkey/internal/config"
	"github.com/jeremyhahn/go-passkey/internal/rest"
	"github.com/jeremyhahn/go-passkey/pkg/passkey"
)

var (
	// Version information (set during build)
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	// Show version if requested
	if *showVersion {
		fmt.Printf("go-passkey server\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Git Commit: %s\n", commit)
		fmt.Printf("  Built:      %s\n", date)
		os.Exit(0)
	}

	// Check for config file override via environment
	if envConfig := os.Getenv("PASSKEY_CONFIG"); envConfig != "" {
		*configPath = envConfig
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	logger.Info("Starting passkey server",
		"config", *configPath,
		"version", version,
		"port", cfg.Server.Port)

	// In-memory stores; all state is lost on restart.
	service, err := passkey.NewService(passkey.ServiceParams{
		UserStore:       passkey.NewMemoryUserStore(),
		CredentialStore: passkey.NewMemoryCredentialStore(),
	})
	if err != nil {
		logger.Error("Failed to create passkey service", slog.Any("error", err))
		os.Exit(1)
	}

	server, err := rest.NewServer(&rest.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Service:        service,
		Logger:         logger,
		AllowedOrigin:  cfg.CORS.AllowedOrigin,
		CookieName:     cfg.Session.CookieName,
		CookieMaxAge:   cfg.Session.MaxAge,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
	})
	if err != nil {
		logger.Error("Failed to create server", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup signal handler for graceful shutdown
	shutdownCtx := setupSignalHandler(logger)

	// Start the server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errChan <- err
		}
	}()

	logger.Info("Server started successfully", "addr", server.Addr())

	// Wait for shutdown signal or error
	select {
	case <-shutdownCtx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		logger.Error("Server error", slog.Any("error", err))
	}

	// Gracefully shutdown
	shutdownTimeout, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownTimeout); err != nil {
		logger.Error("Error during server shutdown", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Server stopped successfully")
}

// newLogger builds a slog.Logger from the logging configuration.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

// setupSignalHandler sets up signal handling for graceful shutdown
func setupSignalHandler(logger *slog.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signalCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	return ctx
}

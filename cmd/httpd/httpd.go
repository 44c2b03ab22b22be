// Package httpd implements the HTTP server command for the analysis API.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	cmdcommon "github.com/jonesrussell/pagepulse/cmd/common"
	"github.com/jonesrussell/pagepulse/internal/api"
	"github.com/jonesrussell/pagepulse/internal/logger"
)

const (
	signalChannelBufferSize = 1
	errorChannelBufferSize  = 1
	defaultShutdownTimeout  = 30 * time.Second
)

// Command returns the httpd command for running the HTTP API server.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Run the HTTP API server",
		Long: `This command starts the HTTP API server exposing analysis,
full-inspection, and PDF report endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Start()
		},
	}
}

// Start starts the HTTP server and runs until interrupted.
// It handles graceful shutdown on SIGINT or SIGTERM signals.
func Start() error {
	// Phase 1: Initialize dependencies
	deps, err := cmdcommon.NewDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	srvCfg := deps.Config.Server
	if validateErr := srvCfg.Validate(); validateErr != nil {
		return fmt.Errorf("server config: %w", validateErr)
	}

	// Phase 2: Build the analyzer and report composer
	an, err := deps.NewAnalyzer()
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	apiServer := api.NewServer(srvCfg, an, deps.NewComposer(), deps.Logger.WithComponent("api"))

	// Phase 3: Start HTTP server
	server := &http.Server{
		Addr:         srvCfg.Address,
		Handler:      apiServer.Handler(),
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
		IdleTimeout:  srvCfg.IdleTimeout,
	}

	deps.Logger.Info("Starting HTTP server", "addr", srvCfg.Address)
	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	// Phase 4: Run server until interrupted
	return runServerUntilInterrupt(deps.Logger, server, errChan)
}

// runServerUntilInterrupt runs the server until interrupted by signal or error.
func runServerUntilInterrupt(log logger.Interface, server *http.Server, errChan chan error) error {
	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case serverErr := <-errChan:
		log.Error("Server error", "error", serverErr)
		return fmt.Errorf("server error: %w", serverErr)
	case sig := <-sigChan:
		return shutdownServer(log, server, sig)
	}
}

// shutdownServer performs graceful shutdown of the server.
func shutdownServer(log logger.Interface, server *http.Server, sig os.Signal) error {
	log.Info("Shutdown signal received", "signal", sig.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	log.Info("Stopping HTTP server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to stop server", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	log.Info("Server stopped successfully")
	return nil
}

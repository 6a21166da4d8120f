package cmd

import (
	"apiversions/config"
	"apiversions/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the versioned API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		portToUse := servePort
		if portToUse == "" {
			portToUse = config.AppConfig.Server.Port
		}

		parent, err := buildVersionedApp()
		if err != nil {
			return fmt.Errorf("assembling versioned app: %w", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := parent.Startup(ctx); err != nil {
			return fmt.Errorf("startup: %w", err)
		}

		server := &http.Server{
			Addr:              ":" + portToUse,
			Handler:           parent,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Serve Command: Listening on :%s", portToUse)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()
		fmt.Fprintf(os.Stdout, "Serving %s on :%s (Ctrl+C to stop)\n", parent.Title, portToUse)

		var serveErr error
		select {
		case <-ctx.Done():
			logger.Info("Serve Command: Shutdown signal received...")
		case serveErr = <-errCh:
			logger.Error("Serve Command: ListenAndServe error: %v", serveErr)
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Serve Command: Graceful shutdown failed: %v", err)
		} else {
			logger.Info("Serve Command: Gracefully stopped.")
		}
		if err := parent.Shutdown(shutdownCtx); err != nil {
			logger.Error("Serve Command: Shutdown hooks failed: %v", err)
			serveErr = errors.Join(serveErr, err)
		}
		return serveErr
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port for the server to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

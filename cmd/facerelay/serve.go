package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/facerelay"
	"github.com/sagarc03/facerelay/config"
	"github.com/sagarc03/facerelay/filesystem"
	relayhttp "github.com/sagarc03/facerelay/http"
	"github.com/sagarc03/facerelay/memory"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the facerelay HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "listen address (default: 0.0.0.0, env: FACERELAY_SERVER_HOST)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	storage, root, err := filesystem.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() { _ = root.Close() }()

	service, err := facerelay.NewService(facerelay.Repos{
		History: memory.NewHistory(),
		Names:   memory.NewSettings(),
		Tuning:  memory.NewSettings(),
	}, storage, facerelay.ServiceConfig{
		Intervals: cfg.Intervals.Service(),
	})
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	handlerConfig := relayhttp.HandlerConfig{
		CORS:          cfg.CORS.Handler(),
		MaxUploadSize: cfg.Server.MaxUploadSize,
		MaxMemory:     cfg.Server.MaxMemory,
		Logger:        slog.Default(),
	}

	handler := relayhttp.NewHandler(&handlerConfig, service)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"addr", server.Addr,
			"storage", cfg.Storage.Path,
			"origins", handlerConfig.CORS.AllowedOrigins,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

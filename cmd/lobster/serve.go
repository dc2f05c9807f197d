package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/lobster"
	httpAdapter "github.com/aretw0/lobster/internal/adapters/http"
	"github.com/aretw0/lobster/internal/auth"
	"github.com/aretw0/lobster/pkg/observability"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the Lobster engine as an HTTP API with bearer token authentication and Prometheus metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(true); err != nil {
			fail("Invalid configuration", err)
		}

		metrics := observability.NewMetrics()
		hooks := metrics.Hooks()
		engine, release, err := newEngine(&hooks, metrics)
		if err != nil {
			fail("Error initializing lobster", err)
		}
		defer release()

		authority, err := auth.New(auth.Config{
			Key:      []byte(cfg.JWTKey),
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
			Subject:  cfg.JWTSubject,
			TTL:      cfg.JWTTTL,
		})
		if err != nil {
			fail("Error initializing auth", err)
		}

		handler := httpAdapter.NewHandler(engine, authority,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(metrics.Handler()),
			httpAdapter.WithVersion(lobster.Version),
		)

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting Lobster Server", "addr", srv.Addr, "backend", cfg.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				release()
				fail("Server error", err)
			}

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("Error killing server", "err", err)
				}
			}
			logger.Info("Lobster Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default :8080)")
	serveCmd.Flags().Bool("distributed-lock", false, "Serialize same-user requests across replicas through Redis")
}

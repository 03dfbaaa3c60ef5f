package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/bookdex/internal/db/redis"
	"github.com/kailas-cloud/bookdex/internal/metrics"
	chiTransport "github.com/kailas-cloud/bookdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/bookdex/internal/usecase/health"
)

func (a *app) serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the same operations over HTTP",
		Long: `Starts an HTTP server with the routes
  POST /samples, GET /books/{id}, PUT /index, DELETE /index,
  GET /search, GET /aggregate, GET /health, GET /metrics.
Every request runs on its own connection, like a CLI invocation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port > 0 {
				a.cfg.HTTP.Port = port
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides http.port)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	if err := a.waitForDatabase(ctx); err != nil {
		return err
	}

	metrics.RegisterHTTPMetrics()

	healthSvc := healthuc.New(a.library, a.library)
	server := chiTransport.NewServer(a.library, healthSvc, a.logger)
	router := chiTransport.NewRouter(server, a.cfg.Auth.APIKeys, a.logger)

	addr := fmt.Sprintf(":%d", a.cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", addr), zap.String("index", a.cfg.Index.Name))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		a.logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("Server stopped gracefully")
	return nil
}

// waitForDatabase blocks until the engine answers PING or the readiness timeout passes.
func (a *app) waitForDatabase(ctx context.Context) error {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:       a.cfg.Database.Addrs,
		Username:    a.cfg.Database.Username,
		Password:    a.cfg.Database.Password,
		DB:          a.cfg.Database.DB,
		DialTimeout: a.cfg.Database.DialTimeout(),
	})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer store.Close()

	timeout := time.Duration(a.cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		return err
	}
	a.logger.Info("Connected to database")
	return nil
}

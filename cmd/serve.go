package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/association-registrations/internal/database"
	"github.com/Shivanand-hulikatti/association-registrations/internal/handler"
	"github.com/Shivanand-hulikatti/association-registrations/internal/metrics"
	"github.com/Shivanand-hulikatti/association-registrations/internal/repository"
	"github.com/Shivanand-hulikatti/association-registrations/internal/service"
)

func newServeCmd(a *app) *cobra.Command {
	var memory bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), memory)
		},
	}
	cmd.Flags().BoolVar(&memory, "memory", false, "keep all data in process memory instead of PostgreSQL")
	return cmd
}

func (a *app) serve(ctx context.Context, memory bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// ── 1. Storage ───────────────────────────────────────────────────────
	var store service.Store
	if memory {
		a.logger.Warn("using in-memory store; data is lost on exit")
		store = repository.NewMemory()
	} else {
		if a.cfg.AutoMigrate {
			if err := database.MigrateUp(a.cfg.DB.MigrateURL()); err != nil {
				return err
			}
			a.logger.Info("migrations applied")
		}
		pool, err := database.NewPool(ctx, a.cfg.DB, a.logger)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()
		a.logger.Info("connected to postgres", zap.String("host", a.cfg.DB.Host), zap.String("db", a.cfg.DB.Name))
		store = repository.NewPostgres(pool,
			repository.WithLogger(a.logger.Named("postgres")),
			repository.WithRetryObserver(m),
		)
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	opts := []service.Option{service.WithLogger(a.logger), service.WithMetrics(m)}
	router := handler.NewRouter(handler.Deps{
		Events:         service.NewEventService(store, opts...),
		Registrations:  service.NewRegistrationService(store, opts...),
		SessionSecret:  []byte(a.cfg.SessionSecret),
		AllowedOrigins: a.cfg.AllowedOrigins,
		Logger:         a.logger,
		Gatherer:       reg,
	})

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}

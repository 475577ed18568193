// Package main is the entry point for the travel agency API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/travel-agency/internal/config"
	"github.com/pkordes/travel-agency/internal/handler"
	"github.com/pkordes/travel-agency/internal/metrics"
	"github.com/pkordes/travel-agency/internal/middleware"
	"github.com/pkordes/travel-agency/internal/repo"
	"github.com/pkordes/travel-agency/internal/service"
	"github.com/pkordes/travel-agency/seed"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before the configured one exists.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// --- Metrics ----------------------------------------------------------
	// A private registry keeps /metrics to what this process exports.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// --- Data -------------------------------------------------------------
	ctx := context.Background()
	store, err := repo.New(cfg.DataDir,
		repo.WithLogger(logger),
		repo.WithMetrics(metrics.NewPersistence(reg)),
	)
	if err != nil {
		slog.Error("failed to open data directory", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	if cfg.SeedData {
		seeded, err := store.Bootstrap(ctx, seed.FS)
		if err != nil {
			slog.Error("failed to seed data directory", "dir", cfg.DataDir, "error", err)
			os.Exit(1)
		}
		if seeded {
			slog.Info("sample dataset written", "dir", cfg.DataDir)
		}
	}
	// A file that fails to load leaves its collection empty; the rest of
	// the data is still served.
	if err := store.Load(ctx); err != nil {
		slog.Error("data loaded with errors", "error", err)
	}

	// --- Services ---------------------------------------------------------
	reviews := service.NewReviewService(store.Reviews(), store.Customers(), store.Packages(), store)
	if cfg.SeedSampleReviews {
		added, err := reviews.SeedSamples(ctx)
		if err != nil {
			slog.Error("failed to save sample reviews", "error", err)
		}
		if len(added) > 0 {
			slog.Info("sample reviews added", "count", len(added))
		}
	}
	srv := handler.NewServer(handler.Services{
		Customers:  service.NewCustomerService(store.Customers(), store.Bookings(), store),
		Activities: service.NewActivityService(store.Activities(), store.Packages(), store),
		Packages:   service.NewPackageService(store.Packages(), store.Activities(), store.Bookings(), store),
		Bookings:   service.NewBookingService(store.Bookings(), store.Customers(), store.Packages(), store),
		Reviews:    reviews,
		Reports:    service.NewReportService(store.Packages(), store.Customers(), store.Bookings()),
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// The API routes read and write the shared collections, so they get the
	// body limit and the single-writer guard; /metrics does not.
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
		r.Use(middleware.NewSerializer())
		r.Mount("/", srv.Routes())
	})

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "data_dir", store.Dir())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// Package main is the entry point for the ride ledger API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
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
	"github.com/redis/go-redis/v9"

	"github.com/carlapp/ride-ledger/internal/advisory"
	"github.com/carlapp/ride-ledger/internal/config"
	"github.com/carlapp/ride-ledger/internal/handler"
	"github.com/carlapp/ride-ledger/internal/location"
	"github.com/carlapp/ride-ledger/internal/middleware"
	"github.com/carlapp/ride-ledger/internal/region"
	"github.com/carlapp/ride-ledger/internal/service"
	"github.com/carlapp/ride-ledger/internal/session"
	"github.com/carlapp/ride-ledger/internal/store"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog with a JSON handler writes machine-readable output suitable
	// for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Ledger store -----------------------------------------------------
	// The ledger lives as one blob: under a redis key when REDIS_ADDR is
	// set, otherwise in a local JSON file. Corrupt or missing blobs load as
	// an empty ledger, never as a startup failure.
	var ledgerStore store.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()
		if err := client.Ping(context.Background()).Err(); err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		ledgerStore = store.NewRedisStore(client, logger)
		slog.Info("ledger store ready", "backend", "redis", "addr", cfg.RedisAddr)
	} else {
		ledgerStore = store.NewFileStore(cfg.DataFile, logger)
		slog.Info("ledger store ready", "backend", "file", "path", cfg.DataFile)
	}

	// --- Location feed and region gate ------------------------------------
	feed := location.NewFeed(cfg.LocationTimeout)
	gate := region.NewGate()

	// The gate check waits up to the location timeout for a first fix, so
	// it runs in the background: startup never stalls on GPS, and the gate
	// fails open until (and unless) a coordinate proves the device is
	// outside the service region.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.LocationTimeout+time.Second)
		defer cancel()
		status := gate.Check(ctx, feed)
		slog.Info("region gate decided", "status", string(status))
	}()

	// --- Ride session and ledger poller -----------------------------------
	rideSession := session.New(ledgerStore, feed, logger)
	defer rideSession.Close()

	poller := store.NewPoller(ledgerStore, cfg.PollInterval)
	pollCtx, stopPolling := context.WithCancel(context.Background())
	defer stopPolling()
	go poller.Run(pollCtx)

	// --- Advisory ---------------------------------------------------------
	coach := advisory.NewClient(cfg.AdvisoryURL, cfg.AdvisoryAPIKey, cfg.AdvisoryModel,
		advisory.WithLogger(logger))

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS →
	// body limit → region gate. The gate exempts health and region status
	// so a blocked client can still see why it is blocked.
	srv := handler.NewServer(
		service.NewTripService(ledgerStore),
		service.NewCustomerService(ledgerStore),
		service.NewExpenseService(ledgerStore),
		rideSession,
		feed,
		poller,
		gate,
		coach,
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(1 << 20))
	r.Use(middleware.NewRegionGate(gate, "/healthz", "/region"))
	r.Mount("/", srv.Routes())

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
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

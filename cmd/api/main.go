package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raulbellosom/travel-sub002/internal/activity"
	"github.com/raulbellosom/travel-sub002/internal/app"
	"github.com/raulbellosom/travel-sub002/internal/clock"
	"github.com/raulbellosom/travel-sub002/internal/config"
	"github.com/raulbellosom/travel-sub002/internal/entitlement"
	"github.com/raulbellosom/travel-sub002/internal/metrics"
	"github.com/raulbellosom/travel-sub002/internal/storage/postgres"
	"github.com/raulbellosom/travel-sub002/internal/storage/redisx"
	"github.com/raulbellosom/travel-sub002/internal/taxonomy"
	transporthttp "github.com/raulbellosom/travel-sub002/internal/transport/http"
	"github.com/raulbellosom/travel-sub002/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	var locker app.Locker = app.NewKeyedMutex()
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		if err := rdb.Ping(startupCtx).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		defer func() { _ = rdb.Close() }()
		locker = redisx.NewLock(rdb)
		logger.Printf("admission lock backed by redis at %s", cfg.RedisAddr)
	}

	var sink activity.Sink = activity.LogSink{}
	if len(cfg.KafkaBrokers) > 0 {
		sink = activity.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Printf("activity events published to kafka topic %s", cfg.KafkaTopic)
	}
	dispatcher := activity.NewDispatcher(sink, cfg.ActivityQueueLen)
	defer dispatcher.Close()

	limits := map[string]int{}
	if cfg.MonthlyLimit > 0 {
		limits[entitlement.LimitReservationsPerMonth] = cfg.MonthlyLimit
	}
	entitlements := entitlement.NewStatic(cfg.DisabledModules, limits)

	admissionSvc := app.NewAdmissionService(
		postgres.NewReservationRepository(pool),
		postgres.NewResourceRepository(pool),
		postgres.NewUserRepository(pool),
		entitlements,
		taxonomy.NewStatic(),
		dispatcher,
		locker,
		clock.NewSystem(),
		app.WithHoldTTL(cfg.HoldTTL),
	)

	m := metrics.New()

	handler := transporthttp.NewRouter(transporthttp.RouterDeps{
		Admissions:  admissionSvc,
		Observer:    m,
		Metrics:     m.Handler(),
		JWTSecret:   []byte(cfg.JWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}

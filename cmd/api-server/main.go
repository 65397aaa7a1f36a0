package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/inklab/studio-booking/internal/api"
	"github.com/inklab/studio-booking/internal/artist"
	"github.com/inklab/studio-booking/internal/availability"
	"github.com/inklab/studio-booking/internal/booking"
	"github.com/inklab/studio-booking/internal/config"
	"github.com/inklab/studio-booking/internal/db"
	"github.com/inklab/studio-booking/internal/logger"
	redisclient "github.com/inklab/studio-booking/internal/redis"
	"github.com/inklab/studio-booking/internal/schedule"
)

const version = "0.3.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load error: " + err.Error())
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic("logger init error: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("api-server starting up", zap.String("env", cfg.Env), zap.String("http_port", cfg.HTTPPort))

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal("postgres connection error", zap.Error(err))
	}
	defer pgPool.Close()
	log.Info("connected to Postgres")

	// Apply migrations
	migCtx, cancelMig := context.WithTimeout(rootCtx, 30*time.Second)
	err = db.Migrate(migCtx, pgPool)
	cancelMig()
	if err != nil {
		log.Fatal("migration error", zap.Error(err))
	}

	// Connect Redis
	rdb, err := redisclient.New(rootCtx, redisclient.Config{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		log.Fatal("redis connection error", zap.Error(err))
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn("error closing redis", zap.Error(err))
		}
	}()
	log.Info("connected to Redis")

	// Wire repositories, caches and services
	scheduleRepo := schedule.NewCachedRepository(schedule.NewPgRepository(pgPool), rdb, cfg.ScheduleCacheTTL, log)
	bookingRepo := booking.NewPgRepository(pgPool)
	intervalCache := booking.NewIntervalCache(bookingRepo, rdb, cfg.BookedCacheTTL, log)
	artistRepo := artist.NewPgRepository(pgPool)

	locker := redisclient.NewRedisArtistLocker(rdb, cfg.LockTTL)
	bookingSvc := booking.NewService(bookingRepo, locker, intervalCache, log)
	availabilitySvc := availability.NewService(scheduleRepo, intervalCache)

	router := api.NewRouter(api.RouterConfig{
		Availability: availabilitySvc,
		Bookings:     bookingSvc,
		Schedules:    scheduleRepo,
		Artists:      artistRepo,
		PgPool:       pgPool,
		Redis:        rdb,
		Logger:       log,
		Env:          cfg.Env,
		Version:      version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Fatal("http server error", zap.Error(err))
	case <-rootCtx.Done():
	}

	log.Info("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
	}
}

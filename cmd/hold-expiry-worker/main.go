package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/inklab/studio-booking/internal/booking"
	"github.com/inklab/studio-booking/internal/config"
	"github.com/inklab/studio-booking/internal/db"
	"github.com/inklab/studio-booking/internal/logger"
	redisclient "github.com/inklab/studio-booking/internal/redis"
)

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

	log.Info("hold-expiry-worker starting up",
		zap.String("env", cfg.Env),
		zap.Duration("interval", cfg.WorkerInterval),
		zap.Duration("hold_ttl", cfg.HoldTTL),
	)

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

	repo := booking.NewPgRepository(pgPool)
	cache := booking.NewIntervalCache(repo, rdb, cfg.BookedCacheTTL, log)
	locker := redisclient.NewRedisArtistLocker(rdb, cfg.LockTTL)
	svc := booking.NewService(repo, locker, cache, log)

	// Run once at startup
	runOnce(rootCtx, svc, cfg.HoldTTL, log)

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Info("shutdown signal received, stopping hold-expiry worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, svc, cfg.HoldTTL, log)
		}
	}
}

func runOnce(ctx context.Context, svc *booking.Service, ttl time.Duration, log *zap.Logger) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	if err := svc.ExpireStaleHolds(runCtx, ttl); err != nil {
		log.Error("hold-expiry run error", zap.Error(err))
		return
	}
	log.Info("hold-expiry run complete", zap.Duration("took", time.Since(start)))
}

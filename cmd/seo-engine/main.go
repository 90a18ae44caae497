package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/nitesh/seo_engine/internal/api"
	"github.com/nitesh/seo_engine/internal/config"
	"github.com/nitesh/seo_engine/internal/logger"
	"github.com/nitesh/seo_engine/internal/metrics"
	"github.com/nitesh/seo_engine/internal/scheduler"
	"github.com/nitesh/seo_engine/internal/service"
	"github.com/nitesh/seo_engine/internal/sitemap"
	"github.com/nitesh/seo_engine/internal/store"
)

// backend is satisfied by both PgStore and MemStore.
type backend interface {
	service.PageStore
	service.Directory
	sitemap.Source
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	repo, closeStore, err := openStore(cfg, lg)
	if err != nil {
		lg.Error("store init failed", logger.Error(err))
		os.Exit(1)
	}
	defer closeStore()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer rdb.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(ctx).Err(); err != nil {
		lg.Warn("redis ping failed, page cache degraded", logger.Error(err))
	}
	cancel()

	m := metrics.New()
	svc := service.NewService(repo, repo, rdb, lg, m).WithCacheTTL(cfg.PageCacheTTL)
	sitemaps := sitemap.New(repo, cfg.BaseURL)

	if cfg.GenerationSchedule != "" {
		sched := scheduler.New(svc, cfg.GenerationCities, cfg.GenerationWorkers, lg)
		if err := sched.Start(cfg.GenerationSchedule); err != nil {
			lg.Error("scheduler init failed", logger.Error(err))
			os.Exit(1)
		}
		defer sched.Stop()
	}

	handler := api.NewHandler(svc, sitemaps, m, cfg.GenerationWorkers)
	router := gin.Default()
	api.RegisterRoutes(router, handler)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		lg.Info("listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server failed", logger.Error(err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown failed", logger.Error(err))
	}
}

func openStore(cfg *config.Config, lg logger.Logger) (backend, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		mem := store.NewMemStore()
		if cfg.SeedFile != "" {
			if err := mem.LoadSeedFile(cfg.SeedFile); err != nil {
				return nil, nil, err
			}
		}
		lg.Info("using in-memory store", logger.String("seed_file", cfg.SeedFile))
		return mem, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresURL())
	if err != nil {
		return nil, nil, err
	}
	// db might be starting in docker
	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		lg.Warn("waiting for db", logger.Int("attempt", i+1), logger.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store.NewPgStore(db), func() { db.Close() }, nil
}

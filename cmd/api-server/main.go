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

	"mimo/database"
	"mimo/internal/cache"
	"mimo/internal/config"
	"mimo/internal/http-api/handler"
	"mimo/internal/http-api/repository"
	"mimo/internal/http-api/router"
	"mimo/internal/http-api/service"
	"mimo/internal/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "api-server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.DBAutoMigrate {
		if err := database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsTable, log); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Connect(ctx, cfg, log)
	cancel()
	if err != nil {
		return err
	}
	defer db.Close()

	store, closeCache := cache.Open(context.Background(), cfg.RedisURL, cfg.CacheTTL, log)
	defer closeCache()

	movieRepo := repository.NewMovieRepository(db.Gorm)
	ratingRepo := repository.NewRatingRepository(db.Gorm)
	watchlistRepo := repository.NewWatchlistRepository(db.Gorm)
	userRepo := repository.NewUserRepository(db.Gorm)

	identities, err := service.NewIdentityService(userRepo, cfg.AuthCacheSize, cfg.AuthCacheTTL)
	if err != nil {
		return err
	}

	engine, err := router.New(router.Services{
		Movies:     service.NewMovieService(movieRepo, store, cfg.CacheTTL, log),
		Ratings:    service.NewRatingService(ratingRepo, movieRepo, store, log),
		Watchlist:  service.NewWatchlistService(watchlistRepo, userRepo, movieRepo),
		Identities: identities,
		DB:         db,
	}, router.Options{
		Options: handler.Options{
			Timeout:      cfg.RequestTimeout,
			DefaultLimit: cfg.DefaultPageLimit,
			Logger:       log,
		},
		Gzip:           cfg.GzipEnabled,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server_started", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutdown_signal_received", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	log.Info("server_stopped")
	return nil
}

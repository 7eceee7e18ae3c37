package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"mimo/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB owns the GORM handle and its connection pool.
type DB struct {
	Gorm *gorm.DB
	sql  *sql.DB
}

// Connect opens the Postgres pool described by cfg and verifies it answers.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DB, error) {
	level := gormlogger.Warn
	if cfg.IsDevelopment() && cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		// close the pool if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to the database successfully",
		"max_open_conns", cfg.DBMaxOpenConns,
		"max_idle_conns", cfg.DBMaxIdleConns,
	)
	return &DB{Gorm: gdb, sql: sqlDB}, nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.sql.Close()
}

// Reset removes every row and restarts the id sequences.
func (d *DB) Reset(ctx context.Context) error {
	err := d.Gorm.WithContext(ctx).
		Exec("TRUNCATE TABLE watchlist_items, ratings, movies, users RESTART IDENTITY CASCADE").Error
	if err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	return nil
}

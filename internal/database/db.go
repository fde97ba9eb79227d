package database

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/config"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/pkg/logger"
)

// Open creates the Postgres connection pool from config.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.DBPoolSize)
	db.SetMaxIdleConns(cfg.DBPoolSize / 2)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info(ctx, "Database pool initialized", "max_open", cfg.DBPoolSize)
	return db, nil
}

// Migrate creates the schema when it does not exist yet (idempotent).
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			priority     TEXT NOT NULL,
			status       TEXT NOT NULL,
			location     TEXT NOT NULL DEFAULT '',
			due_date     TIMESTAMPTZ,
			created_at   TIMESTAMPTZ NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL,
			completed_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks (priority)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks (due_date)`,
		`CREATE TABLE IF NOT EXISTS weather_snapshots (
			id          TEXT PRIMARY KEY,
			city        TEXT NOT NULL,
			temperature DOUBLE PRECISION NOT NULL,
			humidity    INTEGER NOT NULL,
			pressure    DOUBLE PRECISION NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			wind_speed  DOUBLE PRECISION NOT NULL,
			visibility  DOUBLE PRECISION,
			created_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_weather_snapshots_city ON weather_snapshots (city, created_at DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	logger.Info(ctx, "Schema ensured")
	return nil
}

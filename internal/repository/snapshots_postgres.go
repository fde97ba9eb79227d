package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/pkg/logger"
)

// PostgresSnapshotStore persists weather snapshots. Rows are never updated
// or deleted; the table is an append-only observation log.
type PostgresSnapshotStore struct {
	db *sql.DB
}

func NewPostgresSnapshotStore(db *sql.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

func (s *PostgresSnapshotStore) Save(ctx context.Context, snap *models.WeatherSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO weather_snapshots (id, city, temperature, humidity, pressure, description, wind_speed, visibility, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		snap.ID, snap.City, snap.Temperature, snap.Humidity, snap.Pressure,
		snap.Description, snap.WindSpeed, snap.Visibility, snap.CreatedAt)
	if err != nil {
		logger.Error(ctx, "Repository save snapshot failed", "error", err, "city", snap.City)
		return err
	}
	return nil
}

func (s *PostgresSnapshotStore) ListByCity(ctx context.Context, city string, limit int) ([]models.WeatherSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, city, temperature, humidity, pressure, description, wind_speed, visibility, created_at
		 FROM weather_snapshots WHERE city = $1 ORDER BY created_at DESC LIMIT $2`,
		city, limit)
	if err != nil {
		logger.Error(ctx, "Repository list snapshots failed", "error", err, "city", city)
		return nil, err
	}
	defer rows.Close()
	var snaps []models.WeatherSnapshot
	for rows.Next() {
		var snap models.WeatherSnapshot
		if err := rows.Scan(&snap.ID, &snap.City, &snap.Temperature, &snap.Humidity,
			&snap.Pressure, &snap.Description, &snap.WindSpeed, &snap.Visibility, &snap.CreatedAt); err != nil {
			logger.Error(ctx, "Repository scan snapshot failed", "error", err)
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

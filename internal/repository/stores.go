package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
)

// ErrNotFound is returned when a referenced task does not exist.
var ErrNotFound = errors.New("task not found")

// TaskStore is the storage contract for tasks. Queries take an explicit
// criteria object so the same call shape works against Postgres and the
// in-memory store.
type TaskStore interface {
	Create(ctx context.Context, t *models.Task) error
	Get(ctx context.Context, id string) (models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch, now time.Time) (models.Task, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, f models.TaskFilter) ([]models.Task, error)
	FindOverdue(ctx context.Context, now time.Time) ([]models.Task, error)
}

// SnapshotStore persists the append-only weather observation log.
type SnapshotStore interface {
	Save(ctx context.Context, s *models.WeatherSnapshot) error
	ListByCity(ctx context.Context, city string, limit int) ([]models.WeatherSnapshot, error)
}

package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
)

// MemorySnapshotStore keeps weather snapshots per city, newest last.
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data map[string][]models.WeatherSnapshot
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[string][]models.WeatherSnapshot)}
}

func (s *MemorySnapshotStore) Save(ctx context.Context, snap *models.WeatherSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[snap.City] = append(s.data[snap.City], *snap)
	return nil
}

func (s *MemorySnapshotStore) ListByCity(ctx context.Context, city string, limit int) ([]models.WeatherSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.data[city]
	var out []models.WeatherSnapshot
	for i := len(history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

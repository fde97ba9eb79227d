package weather

import (
	"context"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/repository"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/pkg/logger"
)

// Service fronts the weather gateway. Every successful fetch appends an
// immutable snapshot to the observation log.
type Service struct {
	gateway    Gateway
	snapshots  repository.SnapshotStore
	historyMax int
}

func NewService(gateway Gateway, snapshots repository.SnapshotStore, historyMax int) *Service {
	if historyMax <= 0 {
		historyMax = 96
	}
	return &Service{gateway: gateway, snapshots: snapshots, historyMax: historyMax}
}

// Current fetches current conditions for a city and records a snapshot.
// The snapshot write is best effort: a storage error is logged but does
// not fail the lookup.
func (s *Service) Current(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	snap, err := s.gateway.Current(ctx, city)
	if err != nil {
		return models.WeatherSnapshot{}, err
	}
	if err := s.snapshots.Save(ctx, &snap); err != nil {
		logger.Warn(ctx, "Weather snapshot save failed", "error", err, "city", city)
	}
	return snap, nil
}

// History returns stored snapshots for a city, newest first.
func (s *Service) History(ctx context.Context, city string) ([]models.WeatherSnapshot, error) {
	return s.snapshots.ListByCity(ctx, city, s.historyMax)
}

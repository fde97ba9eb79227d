package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
)

// MemoryTaskStore is a concurrency-safe in-memory TaskStore. It preserves
// insertion order, which is what the aggregate views rely on for
// deterministic tie-breaking. Used in tests and for local runs without
// Postgres.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks []models.Task
	index map[string]int
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{index: make(map[string]int)}
}

func (s *MemoryTaskStore) Create(ctx context.Context, t *models.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.index[t.ID] = len(s.tasks)
	s.tasks = append(s.tasks, *t)
	return nil
}

func (s *MemoryTaskStore) Get(ctx context.Context, id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	return s.tasks[i], nil
}

func (s *MemoryTaskStore) Update(ctx context.Context, id string, patch models.TaskPatch, now time.Time) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	t := s.tasks[i]
	patch.Apply(&t, now)
	s.tasks[i] = t
	return t, nil
}

func (s *MemoryTaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.tasks); j++ {
		s.index[s.tasks[j].ID] = j
	}
	return nil
}

func (s *MemoryTaskStore) Find(ctx context.Context, f models.TaskFilter) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Task
	for _, t := range s.tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryTaskStore) FindOverdue(ctx context.Context, now time.Time) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.DueDate != nil && t.DueDate.Before(now) &&
			(t.Status == models.StatusPending || t.Status == models.StatusInProgress) {
			out = append(out, t)
		}
	}
	return out, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/pkg/logger"
)

const taskColumns = "id, title, description, priority, status, location, due_date, created_at, updated_at, completed_at"

// PostgresTaskStore is the production TaskStore backed by database/sql.
type PostgresTaskStore struct {
	db *sql.DB
}

func NewPostgresTaskStore(db *sql.DB) *PostgresTaskStore {
	return &PostgresTaskStore{db: db}
}

// Create inserts a new task, assigning the ID and timestamps.
func (s *PostgresTaskStore) Create(ctx context.Context, t *models.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.Title, t.Description, t.Priority, t.Status, t.Location,
		t.DueDate, t.CreatedAt, t.UpdatedAt, t.CompletedAt)
	if err != nil {
		logger.Error(ctx, "Repository create task failed", "error", err)
		return err
	}
	return nil
}

// Get fetches a single task by ID.
func (s *PostgresTaskStore) Get(ctx context.Context, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository get task failed", "error", err, "id", id)
		return models.Task{}, err
	}
	return t, nil
}

// Update applies a partial patch; nil patch fields keep their column value.
func (s *PostgresTaskStore) Update(ctx context.Context, id string, patch models.TaskPatch, now time.Time) (models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE tasks SET
			title       = COALESCE($1, title),
			description = COALESCE($2, description),
			priority    = COALESCE($3, priority),
			status      = COALESCE($4, status),
			location    = COALESCE($5, location),
			due_date    = COALESCE($6, due_date),
			updated_at  = $7
		 WHERE id = $8
		 RETURNING `+taskColumns,
		patch.Title, patch.Description, patch.Priority, patch.Status,
		patch.Location, patch.DueDate, now, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository update task failed", "error", err, "id", id)
		return models.Task{}, err
	}
	return t, nil
}

// Delete removes a task by ID.
func (s *PostgresTaskStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		logger.Error(ctx, "Repository delete task failed", "error", err, "id", id)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Find returns tasks matching the filter, in insertion order. An empty
// filter returns the whole collection.
func (s *PostgresTaskStore) Find(ctx context.Context, f models.TaskFilter) ([]models.Task, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Status != "" {
		conds = append(conds, "status = "+arg(f.Status))
	}
	if f.Priority != "" {
		conds = append(conds, "priority = "+arg(f.Priority))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, "(title ILIKE "+p+" OR description ILIKE "+p+")")
	}
	if f.Location != "" {
		conds = append(conds, "location ILIKE "+arg("%"+f.Location+"%"))
	}
	q := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at, id"
	return s.queryTasks(ctx, q, args...)
}

// FindOverdue returns tasks with a past due date that are still actionable.
func (s *PostgresTaskStore) FindOverdue(ctx context.Context, now time.Time) ([]models.Task, error) {
	return s.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE due_date < $1 AND status IN ($2, $3)
		 ORDER BY created_at, id`,
		now, models.StatusPending, models.StatusInProgress)
}

func (s *PostgresTaskStore) queryTasks(ctx context.Context, q string, args ...interface{}) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		logger.Error(ctx, "Repository query tasks failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Error(ctx, "Repository scan task failed", "error", err)
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(r rowScanner) (models.Task, error) {
	var t models.Task
	err := r.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&t.Location, &t.DueDate, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt)
	return t, err
}

package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/cache"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/queue"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/report"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/repository"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/pkg/logger"
)

var validate = validator.New()

// TaskController handles the /tasks resource. It composes the task store,
// the filter criteria from query params, and the derived-field view.
type TaskController struct {
	store  repository.TaskStore
	cache  *cache.Cache
	events *queue.Publisher
	group  singleflight.Group
}

func NewTaskController(store repository.TaskStore, c *cache.Cache, events *queue.Publisher) *TaskController {
	return &TaskController{store: store, cache: c, events: events}
}

type createTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Location    string     `json:"location"`
	DueDate     *time.Time `json:"due_date"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Location    *string    `json:"location"`
	DueDate     *time.Time `json:"due_date"`
}

// List returns tasks matching the optional status/priority/search/location
// criteria. The unfiltered listing is served cache-first as raw bytes,
// with singleflight collapsing concurrent misses.
func (tc *TaskController) List(c *gin.Context) {
	ctx := c.Request.Context()
	f := models.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
		Location: c.Query("location"),
	}

	if f.IsZero() {
		if b, ok := tc.cache.GetRaw(ctx, cache.KeyTaskList); ok {
			c.Data(http.StatusOK, "application/json", b)
			return
		}
		v, err, _ := tc.group.Do(cache.KeyTaskList, func() (interface{}, error) {
			tasks, err := tc.store.Find(context.Background(), models.TaskFilter{})
			if err != nil {
				return nil, err
			}
			return json.Marshal(models.NewTaskViews(tasks, time.Now()))
		})
		if err != nil {
			logger.Error(ctx, "List tasks failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
			return
		}
		b := v.([]byte)
		c.Data(http.StatusOK, "application/json", b)
		tc.cache.SetRawAsync(cache.KeyTaskList, b)
		return
	}

	tasks, err := tc.store.Find(ctx, f)
	if err != nil {
		logger.Error(ctx, "List tasks failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, models.NewTaskViews(tasks, time.Now()))
}

// Create validates the payload and inserts a new task. Status defaults to
// pending and priority to medium when unspecified.
func (tc *TaskController) Create(c *gin.Context) {
	ctx := c.Request.Context()
	var body createTaskRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := validate.Struct(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	task := models.Task{
		Title:       body.Title,
		Description: body.Description,
		Priority:    models.PriorityMedium,
		Status:      models.StatusPending,
		Location:    body.Location,
		DueDate:     body.DueDate,
	}
	if body.Priority != "" {
		task.Priority = models.Priority(body.Priority)
	}
	if body.Status != "" {
		task.Status = models.Status(body.Status)
	}

	if err := tc.store.Create(ctx, &task); err != nil {
		logger.Error(ctx, "Create task failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	tc.afterMutation(ctx, "created", task.ID)
	c.JSON(http.StatusCreated, models.NewTaskView(task, time.Now()))
}

// Get fetches a single task.
func (tc *TaskController) Get(c *gin.Context) {
	ctx := c.Request.Context()
	task, err := tc.store.Get(ctx, c.Param("id"))
	if err != nil {
		tc.renderStoreError(c, err, "Get task failed")
		return
	}
	c.JSON(http.StatusOK, models.NewTaskView(task, time.Now()))
}

// Update applies a full or partial update. ID and created_at are
// immutable; updated_at refreshes on every call.
func (tc *TaskController) Update(c *gin.Context) {
	ctx := c.Request.Context()
	var body updateTaskRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := validate.Struct(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	patch := models.TaskPatch{
		Title:       body.Title,
		Description: body.Description,
		Location:    body.Location,
		DueDate:     body.DueDate,
	}
	if body.Priority != nil {
		p := models.Priority(*body.Priority)
		patch.Priority = &p
	}
	if body.Status != nil {
		s := models.Status(*body.Status)
		patch.Status = &s
	}

	task, err := tc.store.Update(ctx, c.Param("id"), patch, time.Now())
	if err != nil {
		tc.renderStoreError(c, err, "Update task failed")
		return
	}
	tc.afterMutation(ctx, "updated", task.ID)
	c.JSON(http.StatusOK, models.NewTaskView(task, time.Now()))
}

// Delete removes a task.
func (tc *TaskController) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := tc.store.Delete(ctx, id); err != nil {
		tc.renderStoreError(c, err, "Delete task failed")
		return
	}
	tc.afterMutation(ctx, "deleted", id)
	c.Status(http.StatusNoContent)
}

// MarkCompleted sets the status to completed. It deliberately leaves
// completed_at untouched, matching the system of record; see DESIGN.md
// before changing that.
func (tc *TaskController) MarkCompleted(c *gin.Context) {
	ctx := c.Request.Context()
	status := models.StatusCompleted
	task, err := tc.store.Update(ctx, c.Param("id"), models.TaskPatch{Status: &status}, time.Now())
	if err != nil {
		tc.renderStoreError(c, err, "Mark completed failed")
		return
	}
	tc.afterMutation(ctx, "completed", task.ID)
	c.JSON(http.StatusOK, gin.H{"status": "Task marked as completed"})
}

// Summary returns the task summary statistics.
func (tc *TaskController) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	tasks, err := tc.store.Find(ctx, models.TaskFilter{})
	if err != nil {
		logger.Error(ctx, "Summary failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, report.BuildSummary(tasks, time.Now()))
}

// Overdue lists tasks with a past due date still pending or in progress.
func (tc *TaskController) Overdue(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()
	tasks, err := tc.store.FindOverdue(ctx, now)
	if err != nil {
		logger.Error(ctx, "Overdue listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list overdue tasks"})
		return
	}
	c.JSON(http.StatusOK, models.NewTaskViews(tasks, now))
}

// afterMutation invalidates cached payloads and emits the lifecycle event.
// Both are best effort; the mutation is already committed.
func (tc *TaskController) afterMutation(ctx context.Context, action, taskID string) {
	tc.cache.Invalidate(ctx, cache.KeyTaskList, cache.KeyReportSummary)
	event := &models.TaskEvent{Action: action, TaskID: taskID, OccurredAt: time.Now()}
	if err := tc.events.Publish(ctx, event); err != nil {
		logger.Warn(ctx, "Task event publish failed", "error", err, "action", action, "task_id", taskID)
	}
}

func (tc *TaskController) renderStoreError(c *gin.Context, err error, logMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	logger.Error(c.Request.Context(), logMsg, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}

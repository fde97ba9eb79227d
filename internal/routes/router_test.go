package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/controller"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/repository"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/weather"
)

type fakeGateway struct {
	calls int
}

func (g *fakeGateway) Current(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	g.calls++
	return models.WeatherSnapshot{City: city, Temperature: 20, Humidity: 55}, nil
}

func newTestRouter(gw weather.Gateway) (*gin.Engine, *repository.MemoryTaskStore) {
	store := repository.NewMemoryTaskStore()
	svc := weather.NewService(gw, repository.NewMemorySnapshotStore(), 10)
	router := Router(
		controller.NewTaskController(store, nil, nil),
		controller.NewReportController(store, nil),
		controller.NewWeatherController(store, svc),
		controller.NewHealthController(nil, nil),
	)
	return router, store
}

func do(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func seedTask(t *testing.T, store *repository.MemoryTaskStore, task models.Task) models.Task {
	t.Helper()
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if err := store.Create(context.Background(), &task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func TestCreateTaskDefaults(t *testing.T) {
	router, _ := newTestRouter(&fakeGateway{})

	rec := do(router, http.MethodPost, "/tasks", gin.H{"title": "write docs"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var view models.TaskView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.ID == "" {
		t.Error("expected assigned ID")
	}
	if view.Status != models.StatusPending {
		t.Errorf("Status = %q, want default pending", view.Status)
	}
	if view.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want default medium", view.Priority)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	router, _ := newTestRouter(&fakeGateway{})

	if rec := do(router, http.MethodPost, "/tasks", gin.H{"description": "no title"}); rec.Code != http.StatusBadRequest {
		t.Errorf("missing title: status = %d, want 400", rec.Code)
	}
	if rec := do(router, http.MethodPost, "/tasks", gin.H{"title": "x", "priority": "extreme"}); rec.Code != http.StatusBadRequest {
		t.Errorf("bad priority: status = %d, want 400", rec.Code)
	}
	if rec := do(router, http.MethodPost, "/tasks", gin.H{"title": "x", "status": "archived"}); rec.Code != http.StatusBadRequest {
		t.Errorf("bad status: status = %d, want 400", rec.Code)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	router, _ := newTestRouter(&fakeGateway{})
	if rec := do(router, http.MethodGet, "/tasks/nope", nil); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListTasksFilterIntersection(t *testing.T) {
	router, store := newTestRouter(&fakeGateway{})
	seedTask(t, store, models.Task{Title: "foo one", Status: models.StatusPending})
	seedTask(t, store, models.Task{Title: "bar", Status: models.StatusPending})
	seedTask(t, store, models.Task{Title: "foo two", Status: models.StatusCompleted})

	rec := do(router, http.MethodGet, "/tasks?status=pending&search=foo", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var views []models.TaskView
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) != 1 || views[0].Title != "foo one" {
		t.Errorf("views = %+v, want only the pending foo task", views)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	router, store := newTestRouter(&fakeGateway{})
	task := seedTask(t, store, models.Task{Title: "before", Location: "Oslo"})

	rec := do(router, http.MethodPatch, "/tasks/"+task.ID, gin.H{"title": "after"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var view models.TaskView
	json.Unmarshal(rec.Body.Bytes(), &view)
	if view.Title != "after" {
		t.Errorf("Title = %q, want after", view.Title)
	}
	if view.Location != "Oslo" {
		t.Error("unset fields must survive a partial update")
	}
	if view.ID != task.ID || !view.CreatedAt.Equal(task.CreatedAt) {
		t.Error("id and created_at must be immutable")
	}
	if view.UpdatedAt.Before(view.CreatedAt) {
		t.Error("created_at must not exceed updated_at")
	}
}

func TestMarkCompletedLeavesCompletedAtUnset(t *testing.T) {
	router, store := newTestRouter(&fakeGateway{})
	task := seedTask(t, store, models.Task{Title: "finish me"})

	rec := do(router, http.MethodPost, "/tasks/"+task.ID+"/mark_completed", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	stored, err := store.Get(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want completed", stored.Status)
	}
	if stored.CompletedAt != nil {
		t.Error("mark_completed must not populate completed_at")
	}
}

func TestDeleteTask(t *testing.T) {
	router, store := newTestRouter(&fakeGateway{})
	task := seedTask(t, store, models.Task{Title: "temp"})

	if rec := do(router, http.MethodDelete, "/tasks/"+task.ID, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if rec := do(router, http.MethodDelete, "/tasks/"+task.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", rec.Code)
	}
}

func TestTaskSummary(t *testing.T) {
	router, store := newTestRouter(&fakeGateway{})
	seedTask(t, store, models.Task{Title: "a", Status: models.StatusCompleted})
	seedTask(t, store, models.Task{Title: "b"})
	seedTask(t, store, models.Task{Title: "c"})
	seedTask(t, store, models.Task{Title: "d", Status: models.StatusInProgress})

	rec := do(router, http.MethodGet, "/tasks/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var summary struct {
		TotalTasks     int     `json:"total_tasks"`
		CompletionRate float64 `json:"completion_rate"`
	}
	json.Unmarshal(rec.Body.Bytes(), &summary)
	if summary.TotalTasks != 4 {
		t.Errorf("total_tasks = %d, want 4", summary.TotalTasks)
	}
	if summary.CompletionRate != 25.00 {
		t.Errorf("completion_rate = %v, want 25.00", summary.CompletionRate)
	}
}

func TestOverdueListing(t *testing.T) {
	router, store := newTestRouter(&fakeGateway{})
	past := time.Now().Add(-time.Hour)
	late := seedTask(t, store, models.Task{Title: "late", DueDate: &past})
	seedTask(t, store, models.Task{Title: "done late", Status: models.StatusCompleted, DueDate: &past})

	rec := do(router, http.MethodGet, "/tasks/overdue", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var views []models.TaskView
	json.Unmarshal(rec.Body.Bytes(), &views)
	if len(views) != 1 || views[0].ID != late.ID {
		t.Errorf("views = %+v, want only the late pending task", views)
	}
	if !views[0].IsOverdue {
		t.Error("overdue listing entries must carry is_overdue=true")
	}
}

func TestReportTaskStatus(t *testing.T) {
	router, store := newTestRouter(&fakeGateway{})
	seedTask(t, store, models.Task{Title: "a"})
	seedTask(t, store, models.Task{Title: "b"})
	seedTask(t, store, models.Task{Title: "c", Status: models.StatusCompleted})

	rec := do(router, http.MethodGet, "/reports/task-status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var dist map[string]int
	json.Unmarshal(rec.Body.Bytes(), &dist)
	if dist["Pending"] != 2 || dist["Completed"] != 1 {
		t.Errorf("distribution = %v", dist)
	}
	if _, ok := dist["In_progress"]; ok {
		t.Error("empty statuses must be omitted")
	}
}

func TestReportTopLocations(t *testing.T) {
	router, store := newTestRouter(&fakeGateway{})
	for i := 0; i < 3; i++ {
		seedTask(t, store, models.Task{Title: "a", Location: "NY"})
	}
	for i := 0; i < 5; i++ {
		seedTask(t, store, models.Task{Title: "b", Location: "LA"})
	}
	seedTask(t, store, models.Task{Title: "c"})

	rec := do(router, http.MethodGet, "/reports/top-locations", nil)
	var locs map[string]int
	json.Unmarshal(rec.Body.Bytes(), &locs)
	if locs["LA"] != 5 || locs["NY"] != 3 {
		t.Errorf("locations = %v", locs)
	}
	if _, ok := locs[""]; ok {
		t.Error("empty location must be excluded")
	}
}

func TestReportCharts(t *testing.T) {
	router, store := newTestRouter(&fakeGateway{})
	seedTask(t, store, models.Task{Title: "a", Priority: models.PriorityUrgent, Location: "Oslo"})

	rec := do(router, http.MethodGet, "/reports/charts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var charts struct {
		CompletionTrend      []struct{ Completed int }                 `json:"completion_trend"`
		PriorityDistribution []struct{ Label, Color string; Value int } `json:"priority_distribution"`
		StatusDistribution   []struct{ Label string }                  `json:"status_distribution"`
	}
	json.Unmarshal(rec.Body.Bytes(), &charts)
	if len(charts.CompletionTrend) != 31 {
		t.Errorf("trend len = %d, want 31", len(charts.CompletionTrend))
	}
	if len(charts.PriorityDistribution) != 4 || len(charts.StatusDistribution) != 4 {
		t.Error("distributions must be zero-filled over the full taxonomy")
	}
	for _, p := range charts.CompletionTrend {
		if p.Completed != 0 {
			t.Error("trend must be zero while completed_at is never populated")
		}
	}
}

func TestReportSummary(t *testing.T) {
	router, store := newTestRouter(&fakeGateway{})
	seedTask(t, store, models.Task{Title: "a", Status: models.StatusCompleted})
	seedTask(t, store, models.Task{Title: "b"})

	rec := do(router, http.MethodGet, "/reports/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var overview struct {
		TotalTasks         int            `json:"total_tasks"`
		StatusDistribution map[string]int `json:"status_distribution"`
		CompletionRate     float64        `json:"completion_rate"`
	}
	json.Unmarshal(rec.Body.Bytes(), &overview)
	if overview.TotalTasks != 2 || overview.CompletionRate != 50.00 {
		t.Errorf("overview = %+v", overview)
	}
	if overview.StatusDistribution["completed"] != 1 {
		t.Errorf("status distribution = %v, want raw keys", overview.StatusDistribution)
	}
}

func TestWeatherForTask(t *testing.T) {
	gw := &fakeGateway{}
	router, store := newTestRouter(gw)
	task := seedTask(t, store, models.Task{Title: "travel", Location: "Oslo"})

	rec := do(router, http.MethodGet, "/weather/task/"+task.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Task struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			Location string `json:"location"`
		} `json:"task"`
		Weather models.WeatherSnapshot `json:"weather"`
	}
	json.Unmarshal(rec.Body.Bytes(), &payload)
	if payload.Task.ID != task.ID || payload.Task.Location != "Oslo" {
		t.Errorf("task projection = %+v", payload.Task)
	}
	if payload.Weather.City != "Oslo" || payload.Weather.Temperature != 20 {
		t.Errorf("weather = %+v", payload.Weather)
	}
	if gw.calls != 1 {
		t.Errorf("gateway calls = %d, want 1", gw.calls)
	}
}

func TestWeatherForTaskWithoutLocation(t *testing.T) {
	gw := &fakeGateway{}
	router, store := newTestRouter(gw)
	task := seedTask(t, store, models.Task{Title: "deskbound"})

	rec := do(router, http.MethodGet, "/weather/task/"+task.ID, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if gw.calls != 0 {
		t.Errorf("gateway calls = %d, want 0 for a task without location", gw.calls)
	}
}

func TestWeatherForUnknownTask(t *testing.T) {
	router, _ := newTestRouter(&fakeGateway{})
	if rec := do(router, http.MethodGet, "/weather/task/nope", nil); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestWeatherCity(t *testing.T) {
	router, _ := newTestRouter(&fakeGateway{})
	rec := do(router, http.MethodGet, "/weather/Oslo", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var snap models.WeatherSnapshot
	json.Unmarshal(rec.Body.Bytes(), &snap)
	if snap.City != "Oslo" {
		t.Errorf("city = %q", snap.City)
	}

	// A fetch appends to the observation log served by the history route.
	rec = do(router, http.MethodGet, "/weather/Oslo/history", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d: %s", rec.Code, rec.Body.String())
	}
	var history struct {
		Snapshots []models.WeatherSnapshot `json:"snapshots"`
	}
	json.Unmarshal(rec.Body.Bytes(), &history)
	if len(history.Snapshots) != 1 {
		t.Errorf("history len = %d, want 1", len(history.Snapshots))
	}
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(&fakeGateway{})
	if rec := do(router, http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

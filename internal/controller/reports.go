package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/cache"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/report"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/repository"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/pkg/logger"
)

// ReportController serves the aggregate report endpoints. Every view is a
// pure function of the current task collection.
type ReportController struct {
	store repository.TaskStore
	cache *cache.Cache
	group singleflight.Group
}

func NewReportController(store repository.TaskStore, c *cache.Cache) *ReportController {
	return &ReportController{store: store, cache: c}
}

// TaskStatus returns status label -> count, empty statuses omitted.
func (rc *ReportController) TaskStatus(c *gin.Context) {
	tasks, ok := rc.allTasks(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.StatusDistribution(tasks))
}

// TopLocations returns the five most common locations as location -> count.
func (rc *ReportController) TopLocations(c *gin.Context) {
	tasks, ok := rc.allTasks(c)
	if !ok {
		return
	}
	data := make(map[string]int)
	for _, g := range report.TopLocations(tasks, 5) {
		data[g.Location] = g.Count
	}
	c.JSON(http.StatusOK, data)
}

// Summary returns the comprehensive report summary, cache-first.
func (rc *ReportController) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	if b, ok := rc.cache.GetRaw(ctx, cache.KeyReportSummary); ok {
		c.Data(http.StatusOK, "application/json", b)
		return
	}
	v, err, _ := rc.group.Do(cache.KeyReportSummary, func() (interface{}, error) {
		tasks, err := rc.store.Find(context.Background(), models.TaskFilter{})
		if err != nil {
			return nil, err
		}
		return json.Marshal(report.BuildOverview(tasks, time.Now()))
	})
	if err != nil {
		logger.Error(ctx, "Report summary failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	b := v.([]byte)
	c.Data(http.StatusOK, "application/json", b)
	rc.cache.SetRawAsync(cache.KeyReportSummary, b)
}

// Charts returns the chart-ready payload: completion trend, zero-filled
// priority/status distributions with colors, and top locations.
func (rc *ReportController) Charts(c *gin.Context) {
	tasks, ok := rc.allTasks(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.BuildCharts(tasks, time.Now()))
}

func (rc *ReportController) allTasks(c *gin.Context) ([]models.Task, bool) {
	ctx := c.Request.Context()
	tasks, err := rc.store.Find(ctx, models.TaskFilter{})
	if err != nil {
		logger.Error(ctx, "Report query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return nil, false
	}
	return tasks, true
}

package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/repository"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/weather"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/pkg/logger"
)

// WeatherController serves weather lookups for cities and for a task's
// location.
type WeatherController struct {
	store   repository.TaskStore
	weather *weather.Service
}

func NewWeatherController(store repository.TaskStore, svc *weather.Service) *WeatherController {
	return &WeatherController{store: store, weather: svc}
}

// City returns current conditions for an arbitrary city string.
func (wc *WeatherController) City(c *gin.Context) {
	ctx := c.Request.Context()
	snap, err := wc.weather.Current(ctx, c.Param("city"))
	if err != nil {
		wc.renderWeatherError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// History returns stored snapshots for a city, newest first.
func (wc *WeatherController) History(c *gin.Context) {
	ctx := c.Request.Context()
	city := c.Param("city")
	snaps, err := wc.weather.History(ctx, city)
	if err != nil {
		logger.Error(ctx, "Weather history failed", "error", err, "city", city)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load weather history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": city, "snapshots": snaps})
}

// TaskWeather returns current conditions for a task's location together
// with a projection of the task. The gateway is never called for a task
// without a location.
func (wc *WeatherController) TaskWeather(c *gin.Context) {
	ctx := c.Request.Context()
	task, err := wc.store.Get(ctx, c.Param("task_id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		logger.Error(ctx, "Task lookup for weather failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if task.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task has no location specified"})
		return
	}

	snap, err := wc.weather.Current(ctx, task.Location)
	if err != nil {
		wc.renderWeatherError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"task": gin.H{
			"id":       task.ID,
			"title":    task.Title,
			"location": task.Location,
			"priority": task.Priority,
			"status":   task.Status,
		},
		"weather": snap,
	})
}

func (wc *WeatherController) renderWeatherError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	if errors.Is(err, weather.ErrUpstream) {
		logger.Warn(ctx, "Weather gateway failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Weather service unavailable"})
		return
	}
	logger.Error(ctx, "Weather lookup failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}

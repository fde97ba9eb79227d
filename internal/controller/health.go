package controller

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/cache"
)

// HealthController exposes liveness and readiness probes.
type HealthController struct {
	db    *sql.DB
	cache *cache.Cache
}

func NewHealthController(db *sql.DB, c *cache.Cache) *HealthController {
	return &HealthController{db: db, cache: c}
}

// Health returns 200 if the process is alive. Used by load balancers.
func (hc *HealthController) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready returns 200 if the backing services are reachable. The database
// check is skipped when running on the in-memory store.
func (hc *HealthController) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if hc.db != nil {
		if err := hc.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database ping failed"})
			return
		}
	}
	if err := hc.cache.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
		return
	}
	c.String(http.StatusOK, "OK")
}

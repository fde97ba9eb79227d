package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/controller"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/middleware"
)

// Router builds the gin engine. Controllers arrive fully constructed;
// nothing here reaches for globals.
func Router(tasks *controller.TaskController, reports *controller.ReportController,
	weather *controller.WeatherController, health *controller.HealthController) *gin.Engine {

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// Health for load balancers and K8s probes
	router.GET("/health", health.Health)
	router.GET("/ready", health.Ready)

	t := router.Group("/tasks")
	{
		t.GET("", tasks.List)
		t.POST("", tasks.Create)
		t.GET("/summary", tasks.Summary)
		t.GET("/overdue", tasks.Overdue)
		t.GET("/:id", tasks.Get)
		t.PUT("/:id", tasks.Update)
		t.PATCH("/:id", tasks.Update)
		t.DELETE("/:id", tasks.Delete)
		t.POST("/:id/mark_completed", tasks.MarkCompleted)
	}

	r := router.Group("/reports")
	{
		r.GET("/task-status", reports.TaskStatus)
		r.GET("/top-locations", reports.TopLocations)
		r.GET("/summary", reports.Summary)
		r.GET("/charts", reports.Charts)
	}

	w := router.Group("/weather")
	{
		w.GET("/task/:task_id", weather.TaskWeather)
		w.GET("/:city", weather.City)
		w.GET("/:city/history", weather.History)
	}

	return router
}

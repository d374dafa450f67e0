package routes

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/handlers"
	"taskboard/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	taskHandler *handlers.TaskHandler,
	reportHandler *handlers.ReportHandler,
	readOnly bool,
) *gin.Engine {

	// ---- public
	r.GET("/health", taskHandler.Health)

	r.Use(middleware.ReadOnlyGuard(readOnly))

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		tasks.GET("/completed", taskHandler.Completed)
		tasks.GET("/stats", taskHandler.Stats)
		tasks.POST("/reload", taskHandler.Reload)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/tasks.pdf", reportHandler.TasksPDF)
	}

	return r
}

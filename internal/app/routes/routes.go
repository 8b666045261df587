package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mototransporte/internal/app/controllers"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/app/models/dto"
)

// Controllers groups every handler mounted by SetupRouter
type Controllers struct {
	Students  *controllers.EntityController[models.Student]
	Drivers   *controllers.EntityController[models.Driver]
	Vehicles  *controllers.EntityController[models.Vehicle]
	Routes    *controllers.EntityController[models.Route]
	Dashboard *controllers.DashboardController
	Backup    *controllers.BackupController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	// API version group
	v1 := router.Group("/api/v1")

	// Entity routes
	c.Students.Register(v1.Group("/students"))
	c.Drivers.Register(v1.Group("/drivers"))
	c.Vehicles.Register(v1.Group("/vehicles"))
	c.Routes.Register(v1.Group("/routes"))

	// Derived views
	v1.GET("/dashboard", c.Dashboard.GetDashboard)
	v1.GET("/route-summaries", c.Dashboard.GetRouteSummaries)
	v1.GET("/search", c.Dashboard.Search)

	// Backup routes
	backup := v1.Group("/backup")
	{
		backup.GET("/export", c.Backup.Export)
		backup.POST("/import", c.Backup.Import)
		backup.DELETE("", c.Backup.Clear)
	}

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mototransporte/internal/app/models/dto"
	"github.com/yigit/mototransporte/internal/app/services"
	"github.com/yigit/mototransporte/internal/middleware"
)

// DashboardController serves the derived views
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns totals, alerts and per-route counts
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.dashboardService.Dashboard(),
		Timestamp: time.Now(),
	})
}

// GetRouteSummaries returns every route with its assignments resolved
func (c *DashboardController) GetRouteSummaries(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.dashboardService.RouteSummaries(),
		Timestamp: time.Now(),
	})
}

// Search runs the global search over every collection
func (c *DashboardController) Search(ctx *gin.Context) {
	var query dto.SearchQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.dashboardService.Search(query.Term),
		Timestamp: time.Now(),
	})
}

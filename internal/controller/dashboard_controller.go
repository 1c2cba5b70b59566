package controller

import (
	"study_buddy_backend/internal/service"
	"study_buddy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// @Summary Dashboard
// @Description Active goal progress, today's tasks, recent achievements, reminders and headline stats
// @Tags dashboard
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} util.Response{data=model.DashboardView}
// @Failure 404 {object} util.Response
// @Router /dashboard/{userId} [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}

	view, err := c.DashboardService.GetDashboard(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err, "Failed to fetch dashboard data")
		return
	}
	util.Success(ctx, view)
}

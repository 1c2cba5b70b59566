package controller

import (
	"errors"
	"net/http"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/service"
	"study_buddy_backend/internal/util"
	"study_buddy_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InsightController struct {
	InsightService *service.InsightService
}

func NewInsightController(insightService *service.InsightService) *InsightController {
	return &InsightController{InsightService: insightService}
}

// @Summary Motivational insight for the active goal
// @Description Answers 404 both for an unknown user and for a user without an active goal
// @Tags insights
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} util.Response{data=model.InsightView}
// @Failure 404 {object} util.Response
// @Router /ai-insight/{userId} [get]
func (c *InsightController) GetInsight(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}

	text, err := c.InsightService.GetInsight(ctx.Request.Context(), userID)
	if err == nil {
		util.Success(ctx, model.InsightView{Insight: text})
		return
	}
	if errors.Is(err, util.ErrActiveGoalNotFound) {
		util.NotFound(ctx, "User or active goal not found")
		return
	}
	logger.Log.Error("Error generating AI insight", zap.Uint("user_id", userID), zap.Error(err))
	ctx.JSON(http.StatusInternalServerError, util.Response{
		Code:    http.StatusInternalServerError,
		Message: "Failed to generate insight",
		Data:    model.InsightView{Insight: service.InsightServerErrorMessage},
	})
}

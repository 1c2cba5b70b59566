package controller

import (
	"study_buddy_backend/internal/service"
	"study_buddy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// @Summary List unlocked achievements
// @Tags achievements
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} util.Response{data=[]model.Achievement}
// @Router /achievements/{userId} [get]
func (c *AchievementController) ListUserAchievements(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	list, err := c.AchievementService.ListUserAchievements(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err, "Failed to fetch achievements")
		return
	}
	util.Success(ctx, list)
}

// @Summary Achievement catalogue with the user's progress
// @Tags achievements
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} util.Response{data=[]model.CatalogueEntry}
// @Failure 404 {object} util.Response
// @Router /achievements/{userId}/catalogue [get]
func (c *AchievementController) Catalogue(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	entries, err := c.AchievementService.Catalogue(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err, "Failed to fetch achievements")
		return
	}
	util.Success(ctx, entries)
}

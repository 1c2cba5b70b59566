package controller

import (
	"errors"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/service"
	"study_buddy_backend/internal/util"
	"study_buddy_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// @Summary Create a goal with a generated study plan
// @Description Validates the request, asks the model for a plan and stores the goal with its tasks
// @Tags goals
// @Accept json
// @Produce json
// @Param request body model.GoalRequest true "Goal"
// @Success 201 {object} util.Response{data=model.GoalWithPlan}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	var req model.GoalRequest
	if !bindJSON(ctx, &req) {
		return
	}

	res, err := c.GoalService.CreateGoalWithPlan(ctx.Request.Context(), req)
	if err != nil {
		var genErr *service.GenerationError
		if errors.As(err, &genErr) {
			logger.Log.Error("Study plan generation failed",
				zap.Uint("user_id", req.UserID),
				zap.Bool("malformed", service.IsMalformed(err)),
				zap.Error(genErr.Cause))
			util.InternalServerError(ctx, "Failed to create goal and study plan")
			return
		}
		respondError(ctx, err, "Failed to create goal and study plan")
		return
	}
	util.Created(ctx, res)
}

// @Summary List a user's goals
// @Tags goals
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=[]model.StudyGoal}
// @Router /goals/{id} [get]
func (c *GoalController) ListUserGoals(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	goals, err := c.GoalService.ListUserGoals(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err, "Failed to fetch goals")
		return
	}
	util.Success(ctx, goals)
}

// @Summary Update a goal's status
// @Description Only "completed" changes the goal; other known statuses are accepted and ignored
// @Tags goals
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param request body model.GoalStatusRequest true "Status"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /goals/{id} [patch]
func (c *GoalController) UpdateGoalStatus(ctx *gin.Context) {
	goalID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req model.GoalStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if err := c.GoalService.UpdateGoalStatus(ctx.Request.Context(), goalID, req.Status); err != nil {
		respondError(ctx, err, "Failed to update goal")
		return
	}
	util.Success(ctx, gin.H{"message": "Goal updated successfully"})
}

// @Summary List a goal's tasks
// @Tags goals
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} util.Response{data=[]model.StudyTask}
// @Router /goals/{id}/tasks [get]
func (c *GoalController) ListGoalTasks(ctx *gin.Context) {
	goalID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	tasks, err := c.GoalService.ListGoalTasks(ctx.Request.Context(), goalID)
	if err != nil {
		respondError(ctx, err, "Failed to fetch tasks")
		return
	}
	util.Success(ctx, tasks)
}

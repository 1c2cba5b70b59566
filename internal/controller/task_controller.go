package controller

import (
	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/service"
	"study_buddy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	TaskService *service.TaskService
}

func NewTaskController(taskService *service.TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

// @Summary Mark a task complete or incomplete
// @Description Completing credits the task's XP to the goal owner and may unlock achievements
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskId path int true "Task ID"
// @Param request body model.TaskCompletionRequest true "Completion"
// @Success 200 {object} util.Response{data=model.StudyTask}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /tasks/{taskId}/complete [patch]
func (c *TaskController) SetCompletion(ctx *gin.Context) {
	taskID, ok := pathID(ctx, "taskId")
	if !ok {
		return
	}
	var req model.TaskCompletionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	task, err := c.TaskService.SetTaskCompletion(ctx.Request.Context(), taskID, *req.IsCompleted)
	if err != nil {
		respondError(ctx, err, "Failed to update task")
		return
	}
	util.Success(ctx, task)
}

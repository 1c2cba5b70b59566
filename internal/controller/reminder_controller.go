package controller

import (
	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/service"
	"study_buddy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	ReminderService *service.ReminderService
}

func NewReminderController(reminderService *service.ReminderService) *ReminderController {
	return &ReminderController{ReminderService: reminderService}
}

// @Summary Create a reminder
// @Tags reminders
// @Accept json
// @Produce json
// @Param request body model.CreateReminderRequest true "Reminder"
// @Success 201 {object} util.Response{data=model.StudyReminder}
// @Failure 400 {object} util.Response
// @Router /reminders [post]
func (c *ReminderController) CreateReminder(ctx *gin.Context) {
	var req model.CreateReminderRequest
	if !bindJSON(ctx, &req) {
		return
	}
	reminder, err := c.ReminderService.CreateReminder(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err, "Failed to create reminder")
		return
	}
	util.Created(ctx, reminder)
}

// @Summary Turn a reminder on or off
// @Tags reminders
// @Accept json
// @Produce json
// @Param reminderId path int true "Reminder ID"
// @Param request body model.ReminderActiveRequest true "State"
// @Success 200 {object} util.Response{data=model.StudyReminder}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /reminders/{reminderId} [patch]
func (c *ReminderController) SetActive(ctx *gin.Context) {
	reminderID, ok := pathID(ctx, "reminderId")
	if !ok {
		return
	}
	var req model.ReminderActiveRequest
	if !bindJSON(ctx, &req) {
		return
	}
	reminder, err := c.ReminderService.SetReminderActive(ctx.Request.Context(), reminderID, *req.IsActive)
	if err != nil {
		respondError(ctx, err, "Failed to update reminder")
		return
	}
	util.Success(ctx, reminder)
}

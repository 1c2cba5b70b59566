package controller

import (
	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/service"
	"study_buddy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.CreateUserRequest true "User"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req model.CreateUserRequest
	if !bindJSON(ctx, &req) {
		return
	}
	user, err := c.UserService.CreateUser(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err, "Failed to create user")
		return
	}
	util.Created(ctx, user)
}

// @Summary Get a user
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /users/{userId} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	user, err := c.UserService.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err, "Failed to fetch user")
		return
	}
	util.Success(ctx, user)
}

// @Summary Export everything stored for a user
// @Description When object storage is configured the document is also archived and archiveUrl is set
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} util.Response{data=model.ExportDocument}
// @Failure 404 {object} util.Response
// @Router /users/{userId}/export [get]
func (c *UserController) Export(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	doc, err := c.UserService.Export(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err, "Failed to export data")
		return
	}
	util.Success(ctx, doc)
}

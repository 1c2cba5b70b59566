package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"study_buddy_backend/internal/service"
	"study_buddy_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var notFoundMessages = map[error]string{
	util.ErrUserNotFound:       "User not found",
	util.ErrGoalNotFound:       "Goal not found",
	util.ErrTaskNotFound:       "Task not found",
	util.ErrReminderNotFound:   "Reminder not found",
	util.ErrActiveGoalNotFound: "User or active goal not found",
}

// respondError maps service errors onto the response envelope. failMessage
// is shown for anything unexpected.
func respondError(ctx *gin.Context, err error, failMessage string) {
	var invalid *service.InvalidRequestError
	if errors.As(err, &invalid) {
		fields := make([]util.FieldError, len(invalid.Fields))
		for i, f := range invalid.Fields {
			fields[i] = util.FieldError{Field: f.Field, Message: f.Message}
		}
		util.ValidationError(ctx, "Invalid request data", fields)
		return
	}
	for sentinel, msg := range notFoundMessages {
		if errors.Is(err, sentinel) {
			util.NotFound(ctx, msg)
			return
		}
	}
	if errors.Is(err, util.ErrUsernameTaken) {
		util.Conflict(ctx, "Username already taken")
		return
	}
	util.LogInternalError(ctx, err, failMessage)
}

// pathID reads a numeric path parameter and answers 400 when it is not one.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, ok := util.ParseID(ctx.Param(name))
	if !ok {
		util.BadRequest(ctx, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body into dst. Type mismatches and missing required
// fields are reported per field; anything else is a bare 400.
func bindJSON(ctx *gin.Context, dst interface{}) bool {
	err := ctx.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	if fields := bindingFieldErrors(err); len(fields) > 0 {
		util.ValidationError(ctx, "Invalid request data", fields)
		return false
	}
	util.Error(ctx, http.StatusBadRequest, "Invalid request body")
	return false
}

func bindingFieldErrors(err error) []util.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []util.FieldError{{
			Field:   typeErr.Field,
			Message: "must be a " + typeErr.Type.String(),
		}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]util.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, util.FieldError{
				Field:   lowerFirst(fe.Field()),
				Message: "is required",
			})
		}
		return fields
	}
	return nil
}

// lowerFirst turns a Go field name into its camelCase JSON key.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

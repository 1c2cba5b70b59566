package util

import "errors"

var (
	ErrUserNotFound                = errors.New("user not found")
	ErrUsernameTaken               = errors.New("username already taken")
	ErrGoalNotFound                = errors.New("goal not found")
	ErrActiveGoalNotFound          = errors.New("active goal not found")
	ErrTaskNotFound                = errors.New("task not found")
	ErrReminderNotFound            = errors.New("reminder not found")
	ErrMalformedGenerationResponse = errors.New("malformed generation response")
)

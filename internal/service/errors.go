package service

import (
	"fmt"
	"strings"
)

// FieldViolation names one rejected input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InvalidRequestError is returned before anything is written when input fails validation.
type InvalidRequestError struct {
	Fields []FieldViolation
}

func (e *InvalidRequestError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func invalidField(field, message string) *InvalidRequestError {
	return &InvalidRequestError{Fields: []FieldViolation{{Field: field, Message: message}}}
}

// GenerationError wraps any failure to obtain a usable plan from the model.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("plan generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

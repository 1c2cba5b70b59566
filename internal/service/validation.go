package service

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"study_buddy_backend/internal/model"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func optionRule(options []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return model.Contains(options, fl.Field().String())
	}
}

// requestValidator reports JSON field names and knows the goal form option sets.
func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		v.RegisterValidation("timeline", optionRule(model.Timelines))
		v.RegisterValidation("dailystudytime", optionRule(model.DailyStudyTimes))
		v.RegisterValidation("pace", optionRule(model.Paces))
		v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate = v
	})
	return validate
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "timeline":
		return "must be one of: " + strings.Join(model.Timelines, ", ")
	case "dailystudytime":
		return "must be one of: " + strings.Join(model.DailyStudyTimes, ", ")
	case "pace":
		return "must be one of: " + strings.Join(model.Paces, ", ")
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "datetime":
		return "must match " + fe.Param()
	}
	return "is invalid"
}

// validateStruct converts validator output into an InvalidRequestError.
func validateStruct(s interface{}) error {
	err := requestValidator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &InvalidRequestError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldViolation{Field: fe.Field(), Message: violationMessage(fe)})
	}
	return out
}

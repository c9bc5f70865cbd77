package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"macromatch-go-api/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	return v
}

// bindBody parses the JSON body into req, applies defaults and validates.
func bindBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return BadRequestError("invalid request body").WithError(err)
	}
	return finish(req)
}

// bindQuery does the same for query parameters.
func bindQuery(c *fiber.Ctx, req interface{}) error {
	if err := c.QueryParser(req); err != nil {
		return BadRequestError("invalid query").WithError(err)
	}
	return finish(req)
}

func finish(req interface{}) error {
	if err := defaults.Set(req); err != nil {
		return InternalError("apply defaults").WithError(err)
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(err)
	}
	return nil
}

func validationFailed(err error) *AppError {
	appErr := NewAppError("ERR_VALIDATION", "validation failed", fiber.StatusBadRequest)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		appErr.Details = []models.ValidationError{{Code: "ERR_UNKNOWN", Message: err.Error()}}
		return appErr
	}

	appErr.Details = make([]models.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		appErr.Details = append(appErr.Details, models.ValidationError{
			Code:    "ERR_" + strings.ToUpper(fe.Tag()),
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	return appErr
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as %s", field, fe.Param())
	case "category":
		return fmt.Sprintf("%s is not a known indicator category", field)
	}
	return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
}

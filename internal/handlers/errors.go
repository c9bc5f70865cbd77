package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"macromatch-go-api/internal/models"
	"macromatch-go-api/internal/services"
	"macromatch-go-api/pkg/logger"
)

// AppError is an error with the HTTP status and code it renders as.
type AppError struct {
	Code    string
	Message string
	Status  int
	Details []models.ValidationError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func NotFoundError(message string) *AppError {
	return NewAppError("ERR_NOT_FOUND", message, fiber.StatusNotFound)
}

func BadRequestError(message string) *AppError {
	return NewAppError("ERR_BAD_REQUEST", message, fiber.StatusBadRequest)
}

func BadRequestErrorf(format string, a ...interface{}) *AppError {
	return BadRequestError(fmt.Sprintf(format, a...))
}

func InternalError(message string) *AppError {
	return NewAppError("ERR_INTERNAL", message, fiber.StatusInternalServerError)
}

// fromServiceError maps service sentinels to API errors.
func fromServiceError(err error) *AppError {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, services.ErrUnknownSymbol):
		return NotFoundError("ETF not found").WithError(err)
	case errors.Is(err, services.ErrNoETFSelected):
		return NewAppError("ERR_NO_ETF_SELECTED", "select at least one ETF", fiber.StatusBadRequest).WithError(err)
	case errors.Is(err, services.ErrInvalidAllocation):
		return NewAppError("ERR_INVALID_ALLOCATION", "allocation must total 100%", fiber.StatusBadRequest).WithError(err)
	case errors.Is(err, services.ErrInvalidPeriod):
		return NewAppError("ERR_INVALID_PERIOD", "invalid simulation period", fiber.StatusBadRequest).WithError(err)
	case errors.Is(err, services.ErrAllSourcesFailed):
		return NewAppError("ERR_UPSTREAM", "market data unavailable", fiber.StatusBadGateway).WithError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return NewAppError("ERR_TIMEOUT", "upstream timed out", fiber.StatusGatewayTimeout).WithError(err)
	}
	return InternalError("request failed").WithError(err)
}

// NewErrorHandler renders every error returned from a route as an
// ErrorResponse. Clients only see the public message; the wrapped cause is
// logged.
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *AppError
		var fe *fiber.Error
		if !errors.As(err, &appErr) && errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(models.ErrorResponse{
				Error:   "Request failed",
				Message: fe.Message,
				Code:    fe.Code,
			})
		}

		appErr = fromServiceError(err)
		if appErr.Err != nil {
			fields := []logger.Field{
				logger.String("method", c.Method()),
				logger.String("path", c.Path()),
				logger.Int("status", appErr.Status),
				logger.String("code", appErr.Code),
				logger.Error(appErr.Err),
			}
			if appErr.Status >= fiber.StatusInternalServerError {
				log.Error("request failed", fields...)
			} else {
				log.Debug("request rejected", fields...)
			}
		}

		return c.Status(appErr.Status).JSON(models.ErrorResponse{
			Error:   appErr.Code,
			Message: appErr.Message,
			Code:    appErr.Status,
			Details: appErr.Details,
		})
	}
}

package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/tsfunc/internal/logging"
	"github.com/soltixdb/tsfunc/internal/models"
	"github.com/soltixdb/tsfunc/internal/services"
)

// serviceStatus maps service error codes to HTTP status codes
var serviceStatus = map[string]int{
	services.CodeInvalidRequest:  fiber.StatusBadRequest,
	services.CodeInvalidPipeline: fiber.StatusBadRequest,
	services.CodeLimitExceeded:   fiber.StatusRequestEntityTooLarge,
	services.CodeCancelled:       fiber.StatusRequestTimeout,
}

// ErrorHandler returns a custom error handler middleware.
// *services.ServiceError keeps its code and details; *fiber.Error keeps its
// status; anything else is a 500 whose message is not exposed.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		detail := models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "Internal Server Error",
			Path:    c.Path(),
		}

		var svcErr *services.ServiceError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &svcErr):
			status = fiber.StatusBadRequest
			if s, ok := serviceStatus[svcErr.Code]; ok {
				status = s
			}
			detail.Code = svcErr.Code
			detail.Message = svcErr.Message
			detail.Details = svcErr.Details
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			detail.Code = codeForStatus(status)
			detail.Message = fiberErr.Message
		}

		log := logger.WithContext(c.UserContext())
		fields := []interface{}{
			"path", c.Path(),
			"method", c.Method(),
			"status", status,
			"error", err,
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("Request error", fields...)
		} else {
			log.Warn("Request rejected", fields...)
		}

		return c.Status(status).JSON(models.ErrorResponse{Error: detail})
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL_ERROR"
	}
	return "ERROR"
}

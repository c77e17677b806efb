package handlerUtil

import (
	"ShopAssist/internal/api/chat"
	"ShopAssist/pkg/log"
	"ShopAssist/pkg/nlp"
	"ShopAssist/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error          string `json:"error"`
	Code           string `json:"code,omitempty"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
	TraceID        string `json:"trace_id,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	// Classification client errors
	var svcErr *nlp.ServiceError
	var unavailable *nlp.ServiceUnavailableError

	switch {
	case errors.Is(err, nlp.ErrInvalidInput):
		h.logger.WithFields(fields).Warn("Empty text sent for classification")
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: chat.ErrInvalidText.Error(),
			Code:  "INVALID_TEXT",
		})

	case errors.As(err, &svcErr):
		fields["upstream_status"] = svcErr.StatusCode
		h.logger.WithFields(fields).Warn("Classification service rejected request")
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:          response.Wrap(chat.ErrClassificationRejected, err).Error(),
			Code:           "CLASSIFICATION_REJECTED",
			UpstreamStatus: svcErr.StatusCode,
		})

	case errors.As(err, &unavailable):
		h.logger.WithFields(fields).Warn("Classification service unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: chat.ErrClassificationUnavailable.Error(),
			Code:  "CLASSIFICATION_UNAVAILABLE",
		})
	}

	if status := response.StatusOf(err, 0); status != 0 {
		fields["code"] = status
		h.logger.WithFields(fields).Warn("Operation failed with error response")
		return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
	}

	traceID := log.ErrorWithTraceID(fields, "Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "An unexpected error occurred",
		TraceID: traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Validation failed: " + err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: message,
		Code:  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}

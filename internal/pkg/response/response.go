package response

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessBody is the success envelope every endpoint returns.
type SuccessBody struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// ErrorBody is the error envelope; Details carries per-field validation messages.
type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

const statusSuccess = "success"
const statusError = "error"

// Success sends 200 with the success envelope.
func Success(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return send(c, fiber.StatusOK, message, data, metadata)
}

// SuccessCreated sends 201 with the success envelope.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return send(c, fiber.StatusCreated, message, data, metadata)
}

func send(c *fiber.Ctx, code int, message string, data interface{}, metadata interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return c.Status(code).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// Error sends statusCode with the error envelope.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	return c.Status(statusCode).JSON(ErrorBody{
		Status: statusError,
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			Details:    details,
		},
	})
}

// Invalid sends 400 with the per-field messages in details.
func Invalid(c *fiber.Ctx, fields map[string]string) error {
	return Error(c, "Validation failed", fiber.StatusBadRequest, fields)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusBadRequest, nil)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusNotFound, nil)
}

// Internal sends 500 with message, or the generic text when message is empty.
func Internal(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Internal Server Error"
	}
	return Error(c, message, fiber.StatusInternalServerError, nil)
}

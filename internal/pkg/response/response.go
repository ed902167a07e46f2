// Package response writes the {status, message, data} envelope shared by
// every API endpoint.
package response

import "github.com/gofiber/fiber/v3"

type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageNotFound            = "not found"
	MessageServiceUnavailable  = "service unavailable"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

// Message returns the default message for status.
func Message(status int) string {
	switch {
	case status >= 200 && status < 300:
		return MessageOK
	case status == fiber.StatusBadRequest:
		return MessageBadRequest
	case status == fiber.StatusUnauthorized:
		return MessageUnauthorized
	case status == fiber.StatusNotFound:
		return MessageNotFound
	case status == fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	case status >= 500:
		return MessageInternalServerError
	default:
		return MessageError
	}
}

// JSON writes the envelope with status. A status outside 100..599 becomes
// 500 and an empty message falls back to Message(status).
func JSON(c fiber.Ctx, status int, message string, data any) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = Message(status)
	}
	return c.Status(status).JSON(Envelope{Status: status, Message: message, Data: data})
}

package handler

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"

	"contentapi/internal/gitstore"
	"contentapi/internal/http/middleware"
	"contentapi/internal/jsmodule"
	"contentapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps the error taxonomy of the publish pipeline onto
// HTTP responses. Every branch is a blocking, human-readable notice; the
// operator re-acts, the service never retries on its own.
func writeServiceError(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", verrs.Error())
	}

	var cerr *gitstore.ConflictError
	if errors.As(err, &cerr) {
		return writeError(c, fiber.StatusConflict, "CONFLICT",
			"your edit was not applied: the content changed since you loaded it; reload and try again")
	}

	if errors.Is(err, gitstore.ErrNotFound) || errors.Is(err, service.ErrRecordNotFound) {
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "content not found")
	}

	var uerr *service.UploadError
	if errors.As(err, &uerr) {
		return writeError(c, fiber.StatusBadGateway, "UPLOAD_ERROR",
			"uploading an attachment failed; nothing was published")
	}

	var perr *jsmodule.ParseError
	if errors.As(err, &perr) || errors.Is(err, jsmodule.ErrLiteralNotFound) {
		return writeError(c, fiber.StatusBadGateway, "PARSE_ERROR",
			"the stored content file is malformed and needs manual repair")
	}

	var terr *gitstore.TransportError
	if errors.As(err, &terr) {
		return writeError(c, fiber.StatusBadGateway, "TRANSPORT_ERROR", terr.Message)
	}

	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "admin credentials required")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

// Package response writes the JSON error envelope shared by handlers and
// middleware: {"error": "..."} plus "details" for validation failures. Rating
// routes and authentication failures carry the text under "message" instead.
package response

import (
	"log/slog"
	"net/http"

	"mimo/internal/http-api/dto"
	"mimo/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	MsgInternal         = "Internal Server Error"
	MsgNotFound         = "Not Found"
	MsgNotAcceptable    = "Not Acceptable"
	MsgTooManyRequests  = "Too Many Requests"
	MsgValidationFailed = "Validation failed"
	MsgMalformedJSON    = "Malformed JSON body"
)

// Key names the JSON field holding an error's text.
type Key int

const (
	KeyError Key = iota
	KeyMessage
)

type ErrorBody struct {
	Error   string           `json:"error,omitempty"`
	Message string           `json:"message,omitempty"`
	Details []dto.FieldError `json:"details,omitempty"`
}

func newBody(key Key, msg string) ErrorBody {
	if key == KeyMessage {
		return ErrorBody{Message: msg}
	}
	return ErrorBody{Error: msg}
}

// StatusFor maps a service failure kind to its HTTP status.
func StatusFor(kind service.Kind) int {
	switch kind {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindConflict:
		return http.StatusConflict
	case service.KindUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error aborts the request with the status matching err under the "error"
// key. Unauthorized failures always use "message".
func Error(c *gin.Context, logger *slog.Logger, err error) {
	ErrorAs(c, logger, KeyError, err)
}

// ErrorAs is Error with the message stored under key. Unexpected errors are
// logged and reported as a generic 500 {"error": ...}. Nothing is written
// once the response has started.
func ErrorAs(c *gin.Context, logger *slog.Logger, key Key, err error) {
	kind := service.KindOf(err)
	status := StatusFor(kind)

	msg := MsgInternal
	switch kind {
	case service.KindUnauthorized:
		key = KeyMessage
		msg = err.Error()
	case service.KindInternal:
		key = KeyError
		logger.Error("request_failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(RequestIDKey),
			"error", err.Error(),
		)
	default:
		msg = err.Error()
	}

	if c.Writer.Written() {
		logger.Warn("response_already_written", "path", c.Request.URL.Path, "status", status)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, newBody(key, msg))
}

// Message aborts with status and a fixed message.
func Message(c *gin.Context, status int, msg string) {
	if c.Writer.Written() {
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg})
}

// Validation aborts with 422 and one detail per failing field.
func Validation(c *gin.Context, details []dto.FieldError) {
	if c.Writer.Written() {
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorBody{
		Error:   MsgValidationFailed,
		Details: details,
	})
}

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

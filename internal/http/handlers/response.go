// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities, including the error
// envelope and the error normalizer. The normalizer is the single place that
// converts a failure — typed domain error or classified persistence error —
// into the wire-level error response; handlers never build error bodies
// themselves.
//
// Example error response:
//
//	HTTP/1.1 403 Forbidden
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "forbidden",
//	  "message": "Пользователь не может удалять чужие карточки"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-cards-backend/internal/http/middleware"
	"github.com/tbourn/go-cards-backend/internal/http/validation"
	"github.com/tbourn/go-cards-backend/internal/repo"
	"github.com/tbourn/go-cards-backend/internal/services"
)

// Messages for failures that carry no domain error of their own. Field-level
// store detail is intentionally not exposed.
const (
	msgIncorrectData = "Incorrect data"
	msgTryAgain      = "Error, try again"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: correlation ID echoed from X-Request-ID.
//   - Code: stable machine-readable string (see errors.go constants).
//   - Message: human-readable description, safe for display.
//   - Errors: itemized field violations; present only on gate rejections.
type ErrorResponse struct {
	RequestID string                  `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string                  `json:"code" example:"not_found"`
	Message   string                  `json:"message" example:"Пользователь не найден"`
	Errors    []validation.FieldError `json:"errors,omitempty"`
}

// fail aborts the request with a structured error body. Server errors (>=500)
// are logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), used by router fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// respondError is the terminal error normalizer. Exactly one error response
// is written per request, always through this function (or the gate's
// pre-handler rejection).
//
// Mapping policy:
//   - domain error → its declared status code and message, verbatim;
//   - persistence shape/type mismatch → 400 with a generic message;
//   - anything else → 500 with a generic retry message. The underlying error
//     is attached to the Gin context so the access logger records it.
func respondError(c *gin.Context, err error) {
	if de, ok := services.AsDomain(err); ok {
		fail(c, de.Status, string(de.Kind), de.Message)
		return
	}

	_ = c.Error(err)

	if repo.Classify(err) == repo.KindShapeMismatch {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, msgIncorrectData)
		return
	}
	fail(c, http.StatusInternalServerError, ErrCodeInternal, msgTryAgain)
}

// ok writes a success JSON response with the given status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// message writes a 200 confirmation body of the fixed {"message": ...} shape.
func message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

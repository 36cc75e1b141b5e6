// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the request validation gate. Each route is mounted
// behind Validate(schema): path parameters are checked first and fail fast on
// the first malformed identifier, so a bad id never reaches a lookup; body
// fields are then evaluated exhaustively and every violation is itemized in
// the 400 response. On success the body is restored untouched for the
// handler, which can trust the shape completely.
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-cards-backend/internal/http/validation"
)

// Validate returns the gate middleware for one route's schema. It never
// invokes the handler on invalid input and performs no persistence access.
func Validate(schema validation.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		if fes := schema.CheckParams(c.Param); len(fes) > 0 {
			reject(c, fes)
			return
		}

		if len(schema.Body) > 0 {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				reject(c, []validation.FieldError{{Field: "body", Message: "body is unreadable"}})
				return
			}
			// Hand the handler back an untouched body.
			c.Request.Body = io.NopCloser(bytes.NewReader(body))

			fields := map[string]any{}
			if len(bytes.TrimSpace(body)) > 0 {
				if err := json.Unmarshal(body, &fields); err != nil {
					reject(c, []validation.FieldError{{Field: "body", Message: "body must be a JSON object"}})
					return
				}
			}
			if fes := schema.CheckBody(fields); len(fes) > 0 {
				reject(c, fes)
				return
			}
		}

		c.Next()
	}
}

// reject short-circuits the request with the itemized violations. The shape
// mirrors the normalizer's envelope plus the errors list.
func reject(c *gin.Context, fes []validation.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "validation_failed",
		"message":    "Validation failed",
		"errors":     fes,
	})
}

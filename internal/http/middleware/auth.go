// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the authentication middleware. It resolves the acting
// user from a session token — Authorization: Bearer header or the HTTP-only
// "jwt" cookie set at sign-in — and stashes the opaque user id in the Gin
// context for handlers. Requests without a verifiable token are rejected with
// 401 before any handler runs.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-cards-backend/internal/auth"
	"github.com/tbourn/go-cards-backend/internal/sysutil"
)

const (
	// ctxKeyUserID is the Gin context key holding the authenticated user id.
	ctxKeyUserID = "userID"
	// SessionCookie is the cookie carrying the session token.
	SessionCookie = "jwt"
)

// msgAuthRequired is the user-facing 401 message.
const msgAuthRequired = "Необходима авторизация"

// UserID returns the authenticated user id placed in the context by Auth.
// It is empty only on routes mounted outside the authorized group.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Auth returns middleware that authenticates the request with issuer.
//
// Token resolution order: "Authorization: Bearer <token>" header, then the
// session cookie. A missing or invalid token aborts with 401; handlers behind
// this middleware can rely on UserID being non-empty.
func Auth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := sysutil.FirstNonEmpty(bearerToken(c), cookieToken(c))
		if tok == "" {
			unauthorized(c)
			return
		}

		uid, err := issuer.UserID(tok)
		if err != nil {
			unauthorized(c)
			return
		}
		c.Set(ctxKeyUserID, uid)
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header, tolerating
// case variation in the scheme.
func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if h == "" {
		return ""
	}
	const scheme = "bearer "
	if len(h) > len(scheme) && strings.EqualFold(h[:len(scheme)], scheme) {
		return strings.TrimSpace(h[len(scheme):])
	}
	return ""
}

// cookieToken reads the session cookie, returning "" when absent.
func cookieToken(c *gin.Context) string {
	v, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return v
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "unauthorized",
		"message":    msgAuthRequired,
	})
}

// Package auth issues and verifies the session tokens that identify acting
// users. Tokens are HS256 JWTs carrying the user id; the signing secret and
// validity window are injected at construction time, never read from the
// environment here.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails signature or claims
// verification, including expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims extends the registered JWT claims with the authenticated user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Issuer signs and parses session tokens with a fixed secret and validity.
// It is safe for concurrent use.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer returns an Issuer signing with secret, producing tokens valid
// for ttl.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Token returns a signed token identifying userID, expiring after the
// configured validity window.
func (i *Issuer) Token(userID string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID: userID,
	})
	return t.SignedString(i.secret)
}

// UserID verifies tok and returns the user id it carries.
// Returns ErrInvalidToken for any failure (bad signature, expired, malformed).
func (i *Issuer) UserID(tok string) (string, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

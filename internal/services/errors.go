// Package services defines the business logic for users, cards, and likes.
// This file defines the closed taxonomy of domain errors returned by service
// methods on business-rule violations.
//
// Each domain error carries its HTTP status code and user-facing message, so
// translation at the handler layer is a mechanical lookup rather than a
// per-call-site mapping. Validation failures are never represented here:
// request shape is enforced before handlers run.
package services

import (
	"errors"
	"net/http"
)

// Kind names a domain failure class. The set is closed; every Error holds
// exactly one of these.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindBadRequest   Kind = "bad_request"
)

// Error is a typed business-rule failure with an intrinsic HTTP status code
// and a message safe to return to clients verbatim.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// NotFound builds a 404 domain error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

// Forbidden builds a 403 domain error.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: msg}
}

// Conflict builds a 409 domain error.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: msg}
}

// Unauthorized builds a 401 domain error.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: msg}
}

// BadRequest builds a 400 domain error for handler-level data rejections that
// the request gate cannot catch.
func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Status: http.StatusBadRequest, Message: msg}
}

// AsDomain unwraps err into a domain *Error when it is one.
func AsDomain(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Predeclared domain errors. Messages match the user-facing contract of the
// API and are returned to clients verbatim.
var (
	// ErrUserNotFound indicates the referenced user id does not resolve to a record.
	ErrUserNotFound = NotFound("Пользователь не найден")

	// ErrCardNotFound indicates the referenced card id does not resolve to a record.
	ErrCardNotFound = NotFound("Карточки с таким ID не существует")

	// ErrNotCardOwner is returned when the acting user tries to delete a card
	// they do not own.
	ErrNotCardOwner = Forbidden("Пользователь не может удалять чужие карточки")

	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = Conflict("Пользователь уже зарегистрирован")

	// ErrBadCredentials is returned when login credentials do not match a
	// record. The same message covers unknown email and wrong password.
	ErrBadCredentials = Unauthorized("Неправильная почта или пароль")
)

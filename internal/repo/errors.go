// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file defines the persistence-error classification
// consumed by the service layer and the HTTP error normalizer.
//
// Callers never inspect raw driver errors: every error leaving this package
// is either one of the sentinels below or classifiable via Classify. This
// replaces the error-name sniffing ("is this a cast error?") that document
// stores encourage with an explicit, closed set of failure kinds.
package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates a unique-constraint violation (e.g. an email that is
// already registered, or an idempotency key that was already recorded).
var ErrDuplicate = errors.New("duplicate record")

// ErrShapeMismatch indicates the store rejected the data itself: a value that
// does not fit the declared column shape or violates a schema-level check.
// The normalizer maps it to a generic 400 without leaking field detail.
var ErrShapeMismatch = errors.New("data does not match schema")

// Kind is the closed classification of persistence failures.
type Kind int

const (
	// KindOther covers connectivity problems and anything unclassified.
	KindOther Kind = iota
	// KindNotFound means the referenced record does not exist.
	KindNotFound
	// KindDuplicate means a uniqueness constraint was violated.
	KindDuplicate
	// KindShapeMismatch means the store rejected the document shape or a value type.
	KindShapeMismatch
)

// Classify maps an error returned by this package to its Kind.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, gorm.ErrDuplicatedKey):
		return KindDuplicate
	case errors.Is(err, ErrShapeMismatch),
		errors.Is(err, gorm.ErrInvalidData),
		errors.Is(err, gorm.ErrInvalidValue),
		errors.Is(err, gorm.ErrInvalidValueOfLength):
		return KindShapeMismatch
	}
	// glebarez/sqlite reports constraint failures as plain-text errors.
	low := strings.ToLower(err.Error())
	switch {
	case strings.Contains(low, "unique constraint"), strings.Contains(low, "duplicate key"):
		return KindDuplicate
	case strings.Contains(low, "check constraint"):
		return KindShapeMismatch
	}
	return KindOther
}

// isDuplicate reports whether err is a unique-constraint violation in a
// driver-agnostic way.
func isDuplicate(err error) bool {
	return Classify(err) == KindDuplicate
}

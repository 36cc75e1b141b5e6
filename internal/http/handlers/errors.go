// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// These symbolic constants supplement human-readable messages with a stable,
// machine-readable taxonomy. Generic codes mirror common HTTP status
// semantics; validation_failed marks gate rejections that carry an itemized
// errors list.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

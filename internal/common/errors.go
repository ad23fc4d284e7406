// Package common defines shared constants and sentinel errors used across
// the scraper and API server. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors. An expired token and a malformed token must stay
	// distinguishable for the API error payloads.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Gate errors.
	ErrQuotaExceeded = errors.New("hourly request quota exceeded")

	// Request validation errors.
	ErrInvalidFileName = errors.New("invalid file name format")

	// Station feed fetch errors, classified by cause. A failed feed fetch
	// aborts the whole catalog build.
	ErrFeedTimeout    = errors.New("station feed timeout")
	ErrFeedConnection = errors.New("station feed connection error")
	ErrFeedProtocol   = errors.New("station feed protocol error")
)

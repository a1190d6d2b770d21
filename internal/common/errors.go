// Package common defines shared constants and sentinel errors used across
// client and server layers of CrickShots. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth flow errors. Messages are shown to the user verbatim.
	ErrUserNotFound       = errors.New("User not found. Please sign up first.")
	ErrInvalidCredentials = errors.New("Invalid password. Please try again.")
	ErrPasswordMismatch   = errors.New("Passwords do not match")
	ErrWeakPassword       = errors.New("Password must be at least 6 characters long")
	ErrDuplicateUser      = errors.New("User with this email already exists")
	ErrMissingField       = errors.New("required field is missing")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Client session errors.
	ErrNoSession = errors.New("not logged in")

	// Checkout errors.
	ErrEmptyCart            = errors.New("no images selected")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrInvalidUPIID         = errors.New("invalid UPI ID")
)

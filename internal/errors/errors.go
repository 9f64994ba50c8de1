package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Aboki business dashboard
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNoSession          = errors.New("no active session")
	ErrSessionExpired     = errors.New("session expired")

	// Remote API errors
	ErrNetwork   = errors.New("network failure")
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")

	// General errors
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Package common provides shared constants, types, and utilities
// used across the ovpn-profile application.
package common

import "errors"

// Sentinel errors for profile operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Profile errors.
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrProfileNotFound = errors.New("profile not found")
	ErrImportFailed    = errors.New("profile import failed")

	// Service errors.
	ErrServiceUnavailable = errors.New("configuration manager service unavailable")
	ErrAccessDenied       = errors.New("access denied by configuration manager")
	ErrTimeout            = errors.New("operation timed out")

	// Credential errors.
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrCredentialStorage   = errors.New("failed to store credentials")
	ErrEncryption          = errors.New("encryption error")
	ErrDecryption          = errors.New("decryption error")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")

	// History errors.
	ErrHistoryStorage = errors.New("import history storage error")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}

// Package common provides shared constants, types, and utilities
// used across the ovpn-profile application.
package common

import "time"

// CredentialStore defines the interface for secret storage.
// Implementations may use system keyring, encrypted files, etc.
type CredentialStore interface {
	// Store saves a secret under id.
	Store(id, secret string) error
	// Get retrieves the secret stored under id.
	Get(id string) (string, error)
	// Delete removes the secret stored under id.
	Delete(id string) error
}

// ImportRecord describes one profile handed to the configuration manager.
type ImportRecord struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	ObjectPath string    `json:"object_path" yaml:"object_path"`
	Source     string    `json:"source,omitempty" yaml:"source,omitempty"`
	SingleUse  bool      `json:"single_use" yaml:"single_use"`
	Persistent bool      `json:"persistent" yaml:"persistent"`
	Overrides  int       `json:"overrides" yaml:"overrides"`
	ImportedAt time.Time `json:"imported_at" yaml:"imported_at"`
}

// Logger defines the interface for structured logging.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...interface{})
	// Info logs an informational message.
	Info(msg string, args ...interface{})
	// Warn logs a warning message.
	Warn(msg string, args ...interface{})
	// Error logs an error message.
	Error(msg string, args ...interface{})
}

// Package common provides shared constants, types, utilities, and interfaces
// used throughout the ovpn-profile application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: Application-wide constants like D-Bus names, timeouts and file names
//   - Errors: Sentinel errors for consistent error handling across packages
//   - Interfaces: Abstractions for credential storage and logging
//   - Logger: Leveled logging to stderr with optional rotated log files
//   - Utils: Common helpers for directories and atomic file writes
//
// # Usage
//
//	// Use the logger
//	common.LogInfo("Importing profile %s", name)
//
//	// Check errors
//	if errors.Is(err, common.ErrInvalidConfig) {
//	    // Handle a rejected configuration
//	}
package common

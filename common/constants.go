// Package common provides shared constants, types, and utilities
// used across the ovpn-profile application.
package common

import "time"

// Application metadata.
const (
	// AppName is the command name of the application.
	AppName = "ovpn-profile"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "ovpn-profile"
)

// File names used by the application.
const (
	ConfigFileName      = "config.yaml"
	CredentialsFileName = ".credentials"
	HistoryFileName     = "history.db"
	LogFileName         = "ovpn-profile.log"
)

// OpenVPN 3 configuration manager D-Bus names.
const (
	ConfigManagerService   = "net.openvpn.v3.configuration"
	ConfigManagerPath      = "/net/openvpn/v3/configuration"
	ConfigManagerInterface = "net.openvpn.v3.configuration"
)

// Default timeouts and limits.
const (
	// ServiceCallTimeout bounds a single D-Bus method call.
	ServiceCallTimeout = 30 * time.Second
	// ServicePingAttempts is how often the configuration manager is
	// pinged before giving up.
	ServicePingAttempts = 10
	// ServicePingDelay is the first delay between ping attempts.
	ServicePingDelay = 500 * time.Millisecond
	// ServicePingBackoff multiplies the delay after each failed ping.
	ServicePingBackoff = 1.33
	// DefaultMaxIncludeDepth bounds nested --config inclusion.
	DefaultMaxIncludeDepth = 16
	// MaxIncludeDepthLimit is the largest accepted include depth setting.
	MaxIncludeDepthLimit = 64
)

// Output formats of the completion-data command.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

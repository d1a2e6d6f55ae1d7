// Package vpn provides the OpenVPN 3 side of ovpn-profile.
// This file contains the ConfigManager type which hands generated
// profiles to the net.openvpn.v3.configuration D-Bus service.
package vpn

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/ovpn-profile/common"
	"github.com/yllada/ovpn-profile/parser"
)

const (
	peerPingMethod  = "org.freedesktop.DBus.Peer.Ping"
	propSetMethod   = "org.freedesktop.DBus.Properties.Set"
	accessDeniedErr = "org.freedesktop.DBus.Error.AccessDenied"
)

// Common errors - re-exported from common package for convenience.
var (
	ErrServiceUnavailable = common.ErrServiceUnavailable
	ErrAccessDenied       = common.ErrAccessDenied
	ErrImportFailed       = common.ErrImportFailed
)

// ConfigManager talks to the OpenVPN 3 configuration manager.
type ConfigManager struct {
	object func(path dbus.ObjectPath) dbus.BusObject

	timeout     time.Duration
	pingRetries int
	pingDelay   time.Duration
	pingBackoff float64
}

// NewConfigManager creates a ConfigManager on an established bus connection.
func NewConfigManager(conn *dbus.Conn) *ConfigManager {
	return newConfigManager(func(path dbus.ObjectPath) dbus.BusObject {
		return conn.Object(common.ConfigManagerService, path)
	})
}

func newConfigManager(object func(dbus.ObjectPath) dbus.BusObject) *ConfigManager {
	return &ConfigManager{
		object:      object,
		timeout:     common.ServiceCallTimeout,
		pingRetries: common.ServicePingAttempts,
		pingDelay:   common.ServicePingDelay,
		pingBackoff: common.ServicePingBackoff,
	}
}

// ConnectConfigManager connects to the system bus. The returned function
// closes the connection.
func ConnectConfigManager() (*ConfigManager, func() error, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: cannot connect to the system bus: %v", ErrServiceUnavailable, err)
	}
	return NewConfigManager(conn), conn.Close, nil
}

func (m *ConfigManager) manager() dbus.BusObject {
	return m.object(common.ConfigManagerPath)
}

// Ping wakes the configuration manager up, retrying with a growing delay
// while the service is starting. Access denied errors fail immediately.
func (m *ConfigManager) Ping(ctx context.Context) error {
	delay := m.pingDelay
	var lastErr error

	for attempt := 1; attempt <= m.pingRetries; attempt++ {
		lastErr = m.ping(ctx)
		if lastErr == nil {
			return nil
		}
		if isAccessDenied(lastErr) {
			return fmt.Errorf("%w: configuration manager (ping)", ErrAccessDenied)
		}
		common.LogDebug("Configuration manager not ready (attempt %d/%d): %v", attempt, m.pingRetries, lastErr)
		if attempt == m.pingRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * m.pingBackoff)
	}

	return fmt.Errorf("%w: could not establish contact with the configuration manager: %v",
		ErrServiceUnavailable, lastErr)
}

func (m *ConfigManager) ping(ctx context.Context) error {
	obj := m.manager()
	if err := obj.CallWithContext(ctx, peerPingMethod, 0).Err; err != nil {
		return err
	}
	_, err := obj.GetProperty(common.ConfigManagerInterface + ".version")
	return err
}

// Import hands profile to the configuration manager under name and returns
// the object path of the new configuration.
func (m *ConfigManager) Import(ctx context.Context, name, profile string, singleUse, persistent bool) (dbus.ObjectPath, error) {
	if err := m.Ping(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var path dbus.ObjectPath
	call := m.manager().CallWithContext(ctx, common.ConfigManagerInterface+".Import", 0,
		name, profile, singleUse, persistent)
	if err := call.Store(&path); err != nil {
		return "", callError(err, "import of "+name)
	}

	common.LogInfo("Imported configuration %q as %s", name, path)
	return path, nil
}

// SetOverride sets one profile override on the configuration at path.
// Boolean overrides are sent as D-Bus booleans, everything else as
// strings.
func (m *ConfigManager) SetOverride(ctx context.Context, path dbus.ObjectPath, key, value string) error {
	var arg interface{} = value
	if parser.IsBooleanOverride(key) {
		arg = value == "true"
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	call := m.object(path).CallWithContext(ctx, common.ConfigManagerInterface+".SetOverride", 0, key, arg)
	if call.Err != nil {
		return callError(call.Err, "override "+key)
	}
	common.LogDebug("Set override %s=%s on %s", key, value, path)
	return nil
}

// SetProperty sets a property of the configuration at path, such as "dco".
func (m *ConfigManager) SetProperty(ctx context.Context, path dbus.ObjectPath, name string, value interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	call := m.object(path).CallWithContext(ctx, propSetMethod, 0,
		common.ConfigManagerInterface, name, dbus.MakeVariant(value))
	if call.Err != nil {
		return callError(call.Err, "property "+name)
	}
	common.LogDebug("Set property %s=%v on %s", name, value, path)
	return nil
}

// ApplyOverrides sets every override in sorted key order.
func (m *ConfigManager) ApplyOverrides(ctx context.Context, path dbus.ObjectPath, overrides parser.OverrideMap) error {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := m.SetOverride(ctx, path, k, overrides[k]); err != nil {
			return err
		}
	}
	return nil
}

// LookupConfigName returns the paths of the configurations named name.
func (m *ConfigManager) LookupConfigName(ctx context.Context, name string) ([]dbus.ObjectPath, error) {
	if err := m.Ping(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var paths []dbus.ObjectPath
	call := m.manager().CallWithContext(ctx, common.ConfigManagerInterface+".LookupConfigName", 0, name)
	if err := call.Store(&paths); err != nil {
		return nil, callError(err, "lookup of "+name)
	}
	return paths, nil
}

// callError maps a failed D-Bus call to the common error sentinels.
func callError(err error, what string) error {
	switch {
	case isAccessDenied(err):
		return fmt.Errorf("%w: %s", ErrAccessDenied, what)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", common.ErrTimeout, what)
	}
	return fmt.Errorf("%w: %s: %v", ErrImportFailed, what, err)
}

func isAccessDenied(err error) bool {
	var valErr dbus.Error
	if errors.As(err, &valErr) {
		return valErr.Name == accessDeniedErr
	}
	var ptrErr *dbus.Error
	if errors.As(err, &ptrErr) {
		return ptrErr.Name == accessDeniedErr
	}
	return false
}

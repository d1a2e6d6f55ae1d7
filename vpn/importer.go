// Package vpn provides the OpenVPN 3 side of ovpn-profile.
// This file contains the Importer which ties a parsed profile, the
// configuration manager and the import history together.
package vpn

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/ovpn-profile/common"
	"github.com/yllada/ovpn-profile/parser"
)

// ConfigService is the part of ConfigManager the Importer needs.
type ConfigService interface {
	Import(ctx context.Context, name, profile string, singleUse, persistent bool) (dbus.ObjectPath, error)
	ApplyOverrides(ctx context.Context, path dbus.ObjectPath, overrides parser.OverrideMap) error
	SetProperty(ctx context.Context, path dbus.ObjectPath, name string, value interface{}) error
	LookupConfigName(ctx context.Context, name string) ([]dbus.ObjectPath, error)
}

// ImportOptions controls how a profile is imported.
type ImportOptions struct {
	// Name of the imported configuration. Defaults to the outermost
	// --config file name.
	Name       string
	SingleUse  bool
	Persistent bool
}

// Importer imports parsed profiles into the configuration manager.
type Importer struct {
	service ConfigService
	history *History
}

// NewImporter creates an Importer. history may be nil to skip recording.
func NewImporter(service ConfigService, history *History) *Importer {
	return &Importer{service: service, history: history}
}

// Import sanity checks res, imports its generated profile and applies its
// profile overrides. A --persist-tun option becomes the persist-tun
// override unless one was given explicitly. --enable-dco and --disable-dco
// set the dco property of the new configuration.
func (i *Importer) Import(ctx context.Context, res *parser.Result, opts ImportOptions) (common.ImportRecord, error) {
	name := opts.Name
	if name == "" {
		name = res.ConfigName()
	}
	if name == "" {
		return common.ImportRecord{}, errors.New("no configuration name given and no --config file read")
	}

	if err := res.SanityCheck(); err != nil {
		return common.ImportRecord{}, err
	}

	existing, err := i.service.LookupConfigName(ctx, name)
	switch {
	case err != nil:
		common.LogDebug("Could not look up configuration %q: %v", name, err)
	case len(existing) > 0:
		common.LogWarn("A configuration named %q already exists (%s), importing another one", name, existing[0])
	}

	path, err := i.service.Import(ctx, name, res.Generate(), opts.SingleUse, opts.Persistent)
	if err != nil {
		return common.ImportRecord{}, err
	}

	overrides := res.Overrides()
	if res.PersistTun() {
		if _, set := overrides["persist-tun"]; !set {
			overrides["persist-tun"] = "true"
		}
	}
	if err := i.service.ApplyOverrides(ctx, path, overrides); err != nil {
		return common.ImportRecord{}, fmt.Errorf("configuration imported as %s but overrides failed: %w", path, err)
	}

	if dco, set := res.DataChannelOffload(); set {
		if err := i.service.SetProperty(ctx, path, "dco", dco); err != nil {
			return common.ImportRecord{}, fmt.Errorf("configuration imported as %s but setting dco failed: %w", path, err)
		}
	}

	rec := common.ImportRecord{
		Name:       name,
		ObjectPath: string(path),
		Source:     res.ConfigName(),
		SingleUse:  opts.SingleUse,
		Persistent: opts.Persistent,
		Overrides:  len(overrides),
	}
	if i.history == nil {
		return rec, nil
	}
	stored, err := i.history.Record(ctx, rec)
	if err != nil {
		// The import itself succeeded.
		common.LogWarn("Could not record import of %s: %v", name, err)
		return rec, nil
	}
	return stored, nil
}

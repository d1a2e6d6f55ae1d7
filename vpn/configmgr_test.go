package vpn

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/ovpn-profile/common"
	"github.com/yllada/ovpn-profile/parser"
)

type fakeCall struct {
	path   dbus.ObjectPath
	method string
	args   []interface{}
}

// fakeBus scripts the configuration manager's replies.
type fakeBus struct {
	pingErrs   []error
	versionErr error
	importPath dbus.ObjectPath
	importErr  error
	lookup     []dbus.ObjectPath
	setErr     error
	calls      []fakeCall
}

func (b *fakeBus) methods(name string) []fakeCall {
	var out []fakeCall
	for _, c := range b.calls {
		if c.method == name {
			out = append(out, c)
		}
	}
	return out
}

type fakeObject struct {
	dbus.BusObject
	bus  *fakeBus
	path dbus.ObjectPath
}

func (o *fakeObject) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	o.bus.calls = append(o.bus.calls, fakeCall{path: o.path, method: method, args: args})

	iface := common.ConfigManagerInterface
	switch method {
	case peerPingMethod:
		if len(o.bus.pingErrs) > 0 {
			err := o.bus.pingErrs[0]
			o.bus.pingErrs = o.bus.pingErrs[1:]
			return &dbus.Call{Err: err}
		}
		return &dbus.Call{}
	case iface + ".Import":
		return &dbus.Call{Err: o.bus.importErr, Body: []interface{}{o.bus.importPath}}
	case iface + ".LookupConfigName":
		return &dbus.Call{Body: []interface{}{o.bus.lookup}}
	case iface + ".SetOverride", propSetMethod:
		return &dbus.Call{Err: o.bus.setErr}
	}
	return &dbus.Call{Err: errors.New("unexpected method " + method)}
}

func (o *fakeObject) GetProperty(p string) (dbus.Variant, error) {
	if p != common.ConfigManagerInterface+".version" {
		return dbus.Variant{}, errors.New("unexpected property " + p)
	}
	return dbus.MakeVariant("v24"), o.bus.versionErr
}

func newFakeManager(bus *fakeBus) *ConfigManager {
	m := newConfigManager(func(path dbus.ObjectPath) dbus.BusObject {
		return &fakeObject{bus: bus, path: path}
	})
	m.pingDelay = time.Millisecond
	return m
}

func TestConfigManager_PingRetries(t *testing.T) {
	bus := &fakeBus{pingErrs: []error{errors.New("starting"), errors.New("starting")}}
	m := newFakeManager(bus)

	if err := m.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if got := len(bus.methods(peerPingMethod)); got != 3 {
		t.Errorf("ping calls = %d, want 3", got)
	}
}

func TestConfigManager_PingGivesUp(t *testing.T) {
	bus := &fakeBus{versionErr: errors.New("no such property")}
	m := newFakeManager(bus)
	m.pingRetries = 3

	err := m.Ping(context.Background())
	if !errors.Is(err, common.ErrServiceUnavailable) {
		t.Errorf("Ping() error = %v, want %v", err, common.ErrServiceUnavailable)
	}
	if got := len(bus.methods(peerPingMethod)); got != 3 {
		t.Errorf("ping calls = %d, want 3", got)
	}
}

func TestConfigManager_PingAccessDenied(t *testing.T) {
	bus := &fakeBus{pingErrs: []error{dbus.Error{Name: accessDeniedErr}}}
	m := newFakeManager(bus)

	err := m.Ping(context.Background())
	if !errors.Is(err, common.ErrAccessDenied) {
		t.Errorf("Ping() error = %v, want %v", err, common.ErrAccessDenied)
	}
	if got := len(bus.methods(peerPingMethod)); got != 1 {
		t.Errorf("ping calls = %d, want 1", got)
	}
}

func TestConfigManager_PingCancelled(t *testing.T) {
	bus := &fakeBus{pingErrs: []error{errors.New("starting")}}
	m := newFakeManager(bus)
	m.pingDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Ping(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Ping() error = %v, want %v", err, context.Canceled)
	}
}

func TestConfigManager_Import(t *testing.T) {
	bus := &fakeBus{importPath: "/net/openvpn/v3/configuration/abc"}
	m := newFakeManager(bus)

	path, err := m.Import(context.Background(), "work", "client\nremote vpn.example.org", false, true)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if path != bus.importPath {
		t.Errorf("Import() = %v, want %v", path, bus.importPath)
	}

	calls := bus.methods(common.ConfigManagerInterface + ".Import")
	if len(calls) != 1 {
		t.Fatalf("Import calls = %d, want 1", len(calls))
	}
	want := []interface{}{"work", "client\nremote vpn.example.org", false, true}
	if !reflect.DeepEqual(calls[0].args, want) {
		t.Errorf("Import args = %v, want %v", calls[0].args, want)
	}
	if calls[0].path != common.ConfigManagerPath {
		t.Errorf("Import called on %v, want %v", calls[0].path, common.ConfigManagerPath)
	}
}

func TestConfigManager_ImportErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"access denied", dbus.Error{Name: accessDeniedErr}, common.ErrAccessDenied},
		{"access denied pointer", dbus.NewError(accessDeniedErr, nil), common.ErrAccessDenied},
		{"timeout", context.DeadlineExceeded, common.ErrTimeout},
		{"other", dbus.Error{Name: "net.openvpn.v3.error.import"}, common.ErrImportFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFakeManager(&fakeBus{importErr: tt.err})
			_, err := m.Import(context.Background(), "work", "client", false, false)
			if !errors.Is(err, tt.want) {
				t.Errorf("Import() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfigManager_ApplyOverrides(t *testing.T) {
	bus := &fakeBus{}
	m := newFakeManager(bus)
	path := dbus.ObjectPath("/net/openvpn/v3/configuration/abc")

	err := m.ApplyOverrides(context.Background(), path, parser.OverrideMap{
		"server-override": "b.example.org",
		"dns-sync-lookup": "true",
		"persist-tun":     "false",
	})
	if err != nil {
		t.Fatalf("ApplyOverrides() error = %v", err)
	}

	calls := bus.methods(common.ConfigManagerInterface + ".SetOverride")
	want := [][]interface{}{
		{"dns-sync-lookup", true},
		{"persist-tun", false},
		{"server-override", "b.example.org"},
	}
	if len(calls) != len(want) {
		t.Fatalf("SetOverride calls = %d, want %d", len(calls), len(want))
	}
	for i, c := range calls {
		if c.path != path {
			t.Errorf("SetOverride called on %v, want %v", c.path, path)
		}
		if !reflect.DeepEqual(c.args, want[i]) {
			t.Errorf("SetOverride args = %v, want %v", c.args, want[i])
		}
	}
}

func TestConfigManager_LookupConfigName(t *testing.T) {
	bus := &fakeBus{lookup: []dbus.ObjectPath{"/a", "/b"}}
	m := newFakeManager(bus)

	paths, err := m.LookupConfigName(context.Background(), "work")
	if err != nil {
		t.Fatalf("LookupConfigName() error = %v", err)
	}
	if !reflect.DeepEqual(paths, bus.lookup) {
		t.Errorf("LookupConfigName() = %v, want %v", paths, bus.lookup)
	}
}

func TestConfigManager_PingNoWaitAfterLastAttempt(t *testing.T) {
	bus := &fakeBus{versionErr: errors.New("no such property")}
	m := newFakeManager(bus)
	m.pingRetries = 1
	m.pingDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := m.Ping(ctx)
	if !errors.Is(err, common.ErrServiceUnavailable) {
		t.Errorf("Ping() error = %v, want %v", err, common.ErrServiceUnavailable)
	}
}

func TestConfigManager_SetProperty(t *testing.T) {
	bus := &fakeBus{}
	m := newFakeManager(bus)
	path := dbus.ObjectPath("/net/openvpn/v3/configuration/abc")

	if err := m.SetProperty(context.Background(), path, "dco", true); err != nil {
		t.Fatalf("SetProperty() error = %v", err)
	}

	calls := bus.methods(propSetMethod)
	if len(calls) != 1 {
		t.Fatalf("Set calls = %d, want 1", len(calls))
	}
	if calls[0].path != path {
		t.Errorf("Set called on %v, want %v", calls[0].path, path)
	}
	want := []interface{}{common.ConfigManagerInterface, "dco", dbus.MakeVariant(true)}
	if !reflect.DeepEqual(calls[0].args, want) {
		t.Errorf("Set args = %v, want %v", calls[0].args, want)
	}

	bus.setErr = dbus.Error{Name: accessDeniedErr}
	if err := m.SetProperty(context.Background(), path, "dco", false); !errors.Is(err, common.ErrAccessDenied) {
		t.Errorf("SetProperty() error = %v, want %v", err, common.ErrAccessDenied)
	}
}

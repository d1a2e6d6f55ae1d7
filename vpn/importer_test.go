package vpn

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/ovpn-profile/common"
	"github.com/yllada/ovpn-profile/parser"
)

const testProfile = `client
remote vpn.example.org 1194 udp
<ca>
TESTCERT
</ca>
`

type fakeService struct {
	name       string
	profile    string
	overrides  parser.OverrideMap
	properties map[string]interface{}
	existing   []dbus.ObjectPath
	lookupErr  error
	importErr  error
	propErr    error
}

func (s *fakeService) Import(_ context.Context, name, profile string, _, _ bool) (dbus.ObjectPath, error) {
	s.name = name
	s.profile = profile
	if s.importErr != nil {
		return "", s.importErr
	}
	return "/net/openvpn/v3/configuration/abc", nil
}

func (s *fakeService) ApplyOverrides(_ context.Context, _ dbus.ObjectPath, overrides parser.OverrideMap) error {
	s.overrides = overrides
	return nil
}

func (s *fakeService) SetProperty(_ context.Context, _ dbus.ObjectPath, name string, value interface{}) error {
	if s.propErr != nil {
		return s.propErr
	}
	if s.properties == nil {
		s.properties = make(map[string]interface{})
	}
	s.properties[name] = value
	return nil
}

func (s *fakeService) LookupConfigName(context.Context, string) ([]dbus.ObjectPath, error) {
	return s.existing, s.lookupErr
}

func parseProfile(t *testing.T, content string, args ...string) *parser.Result {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "work.ovpn"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	p := parser.New(parser.WithWorkDir(dir), parser.WithLogger(common.GetLogger()))
	res, err := p.Parse(append([]string{"--config", "work.ovpn"}, args...))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return res
}

func TestImporter_Import(t *testing.T) {
	res := parseProfile(t, testProfile)
	svc := &fakeService{}

	rec, err := NewImporter(svc, nil).Import(context.Background(), res, ImportOptions{Persistent: true})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if svc.name != "work.ovpn" {
		t.Errorf("imported as %q, want the config file name", svc.name)
	}
	if svc.profile != res.Generate() {
		t.Errorf("imported profile = %q, want %q", svc.profile, res.Generate())
	}
	if rec.Name != "work.ovpn" || rec.Source != "work.ovpn" || !rec.Persistent {
		t.Errorf("Import() record = %+v", rec)
	}
	if rec.ID != "" {
		t.Errorf("record without history has ID %q", rec.ID)
	}
}

func TestImporter_Overrides(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want parser.OverrideMap
	}{
		{
			name: "none",
			want: parser.OverrideMap{},
		},
		{
			name: "persist-tun option",
			args: []string{"--persist-tun"},
			want: parser.OverrideMap{"persist-tun": "true"},
		},
		{
			name: "explicit override wins",
			args: []string{"--persist-tun", "--profile-override", "persist-tun", "no"},
			want: parser.OverrideMap{"persist-tun": "false"},
		},
		{
			name: "profile overrides",
			args: []string{"--profile-override", "server-override", "b.example.org"},
			want: parser.OverrideMap{"server-override": "b.example.org"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseProfile(t, testProfile, tt.args...)
			svc := &fakeService{}

			rec, err := NewImporter(svc, nil).Import(context.Background(), res, ImportOptions{Name: "named"})
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if svc.name != "named" {
				t.Errorf("imported as %q, want %q", svc.name, "named")
			}
			if len(svc.overrides) != len(tt.want) {
				t.Fatalf("overrides = %v, want %v", svc.overrides, tt.want)
			}
			for k, v := range tt.want {
				if svc.overrides[k] != v {
					t.Errorf("override %s = %q, want %q", k, svc.overrides[k], v)
				}
			}
			if rec.Overrides != len(tt.want) {
				t.Errorf("record overrides = %d, want %d", rec.Overrides, len(tt.want))
			}
		})
	}
}

func TestImporter_SanityFailure(t *testing.T) {
	res := parseProfile(t, "client\n")
	svc := &fakeService{}

	_, err := NewImporter(svc, nil).Import(context.Background(), res, ImportOptions{})
	var missing *parser.MissingMandatoryOptionsError
	if !errors.As(err, &missing) {
		t.Fatalf("Import() error = %v, want MissingMandatoryOptionsError", err)
	}
	if svc.name != "" {
		t.Error("profile failing the sanity check was imported")
	}
}

func TestImporter_ServiceError(t *testing.T) {
	res := parseProfile(t, testProfile)
	svc := &fakeService{importErr: common.ErrAccessDenied}

	_, err := NewImporter(svc, nil).Import(context.Background(), res, ImportOptions{})
	if !errors.Is(err, common.ErrAccessDenied) {
		t.Errorf("Import() error = %v, want %v", err, common.ErrAccessDenied)
	}
	if svc.overrides != nil {
		t.Error("overrides applied after a failed import")
	}
}

func TestImporter_RecordsHistory(t *testing.T) {
	h := openTestHistory(t)
	res := parseProfile(t, testProfile)

	rec, err := NewImporter(&fakeService{}, h).Import(context.Background(), res, ImportOptions{SingleUse: true})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	stored, err := h.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Name != "work.ovpn" || !stored.SingleUse {
		t.Errorf("stored record = %+v", stored)
	}
}

func TestImporter_NoName(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ca.pem"), []byte("TESTCERT\n"), 0600); err != nil {
		t.Fatal(err)
	}
	p := parser.New(parser.WithWorkDir(dir), parser.WithLogger(common.GetLogger()))
	res, err := p.Parse([]string{"--client", "--remote", "vpn.example.org", "--ca", "ca.pem"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if _, err := NewImporter(&fakeService{}, nil).Import(context.Background(), res, ImportOptions{}); err == nil {
		t.Error("Import() without a name succeeded")
	}
}

func TestImporter_DataChannelOffload(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want interface{}
	}{
		{"not given", nil, nil},
		{"enabled", []string{"--enable-dco"}, true},
		{"disabled", []string{"--disable-dco"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseProfile(t, testProfile, tt.args...)
			svc := &fakeService{}

			if _, err := NewImporter(svc, nil).Import(context.Background(), res, ImportOptions{}); err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			got, ok := svc.properties["dco"]
			if tt.want == nil {
				if ok {
					t.Errorf("dco property set to %v, want unset", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("dco property = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImporter_DataChannelOffloadError(t *testing.T) {
	res := parseProfile(t, testProfile, "--enable-dco")
	svc := &fakeService{propErr: common.ErrAccessDenied}

	_, err := NewImporter(svc, nil).Import(context.Background(), res, ImportOptions{})
	if !errors.Is(err, common.ErrAccessDenied) {
		t.Errorf("Import() error = %v, want %v", err, common.ErrAccessDenied)
	}
}

func TestImporter_ExistingName(t *testing.T) {
	tests := []struct {
		name string
		svc  *fakeService
	}{
		{"name in use", &fakeService{existing: []dbus.ObjectPath{"/net/openvpn/v3/configuration/old"}}},
		{"lookup fails", &fakeService{lookupErr: common.ErrServiceUnavailable}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseProfile(t, testProfile)
			if _, err := NewImporter(tt.svc, nil).Import(context.Background(), res, ImportOptions{}); err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if tt.svc.name != "work.ovpn" {
				t.Errorf("imported as %q, want %q", tt.svc.name, "work.ovpn")
			}
		})
	}
}

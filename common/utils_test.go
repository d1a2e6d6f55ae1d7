package common

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUserDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"config", GetConfigDir, filepath.Join(home, ".config", ConfigDirName)},
		{"data", GetDataDir, filepath.Join(home, ".local", "share", ConfigDirName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := tt.fn()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if dir != tt.want {
				t.Errorf("got %q, want %q", dir, tt.want)
			}
			info, err := os.Stat(dir)
			if err != nil {
				t.Fatalf("%s was not created: %v", dir, err)
			}
			if info.Mode().Perm() != 0700 {
				t.Errorf("mode = %v, want 0700", info.Mode().Perm())
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(path) {
		t.Error("FileExists() should return true for existing file")
	}

	if FileExists(filepath.Join(t.TempDir(), "missing")) {
		t.Error("FileExists() should return false for non-existing file")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.ovpn")

	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("client\n"), 0600); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "client\n" {
		t.Errorf("content = %q, want %q", data, "client\n")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries in %s", len(entries), dir)
	}
}

func TestWrapError(t *testing.T) {
	originalErr := ErrImportFailed
	wrapped := WrapError(originalErr, "additional context")

	if wrapped == nil {
		t.Fatal("WrapError should return non-nil error")
	}

	if !strings.Contains(wrapped.Error(), "additional context") {
		t.Error("WrapError should include additional context")
	}

	if !errors.Is(wrapped, ErrImportFailed) {
		t.Error("WrapError should keep the original error in the chain")
	}

	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
}

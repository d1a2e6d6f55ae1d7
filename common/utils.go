// Package common provides shared constants, types, and utilities
// used across the ovpn-profile application.
package common

import (
	"os"
	"path/filepath"
)

// GetConfigDir returns ~/.config/ovpn-profile, creating it if needed.
func GetConfigDir() (string, error) {
	return userDir(".config")
}

// GetDataDir returns ~/.local/share/ovpn-profile, where the import
// history lives. It is created if needed.
func GetDataDir() (string, error) {
	return userDir(".local", "share")
}

func userDir(base ...string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", WrapError(err, "failed to get home directory")
	}
	dir := filepath.Join(append(append([]string{homeDir}, base...), ConfigDirName)...)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", WrapError(err, "failed to create "+dir)
	}
	return dir, nil
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never see a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return WrapError(err, "failed to create temporary file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return WrapError(err, "failed to write temporary file")
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return WrapError(err, "failed to set file mode")
	}
	if err := tmp.Close(); err != nil {
		return WrapError(err, "failed to close temporary file")
	}
	return os.Rename(tmpName, path)
}

package common

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// rotatingFile is an append-only log file that is gzip compressed and
// replaced once a write would grow it past maxSize. At most maxBackups
// compressed files are kept.
type rotatingFile struct {
	path       string
	maxSize    int64
	maxBackups int

	f    *os.File
	size int64
}

// isSymlink reports whether path is a symbolic link. A missing path is not.
func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

func openRotatingFile(path string, maxSize int64, maxBackups int) (*rotatingFile, error) {
	dir := filepath.Dir(path)
	// Refuse symlinks so the log cannot be redirected onto another file.
	if isSymlink(dir) {
		return nil, fmt.Errorf("log directory %s is a symlink", dir)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	if isSymlink(path) {
		return nil, fmt.Errorf("log file %s is a symlink", path)
	}

	r := &rotatingFile{path: path, maxSize: maxSize, maxBackups: maxBackups}
	if err := r.open(); err != nil {
		return nil, err
	}
	if r.size >= r.maxSize {
		if err := r.rotate(); err != nil {
			r.Close()
			return nil, err
		}
	}
	return r, nil
}

func (r *rotatingFile) open() error {
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	r.f, r.size = f, info.Size()
	return nil
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	if r.f == nil {
		return 0, os.ErrClosed
	}
	if r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.f.Write(p)
	r.size += int64(n)
	return n, err
}

// rotate compresses the current file into a timestamped backup, prunes old
// backups and starts a new file.
func (r *rotatingFile) rotate() error {
	if err := r.f.Close(); err != nil {
		return err
	}
	r.f = nil

	backup := r.path + "." + time.Now().Format("20060102-150405.000000")
	if err := gzipFile(r.path, backup+".gz"); err != nil {
		// Keep the log uncompressed rather than lose it.
		os.Rename(r.path, backup)
	} else {
		os.Remove(r.path)
	}
	r.prune()
	return r.open()
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		out.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// prune removes the oldest backups beyond maxBackups. Backup names sort
// chronologically.
func (r *rotatingFile) prune() {
	backups, err := filepath.Glob(r.path + ".*")
	if err != nil || len(backups) <= r.maxBackups {
		return
	}
	slices.Sort(backups)
	for _, old := range backups[:len(backups)-r.maxBackups] {
		os.Remove(old)
	}
}

func (r *rotatingFile) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

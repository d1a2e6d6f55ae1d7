// Package vpn provides the OpenVPN 3 side of ovpn-profile.
// This file contains the History type which records imported profiles
// in a local SQLite database.
package vpn

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/yllada/ovpn-profile/common"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS imports (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	object_path TEXT NOT NULL,
	source      TEXT NOT NULL DEFAULT '',
	single_use  INTEGER NOT NULL DEFAULT 0,
	persistent  INTEGER NOT NULL DEFAULT 0,
	overrides   INTEGER NOT NULL DEFAULT 0,
	imported_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS imports_imported_at ON imports (imported_at);
`

// History stores one record per profile handed to the configuration
// manager. It is safe for concurrent use.
type History struct {
	db *sql.DB
}

// DefaultHistoryPath returns ~/.local/share/ovpn-profile/history.db.
func DefaultHistoryPath() (string, error) {
	dataDir, err := common.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, common.HistoryFileName), nil
}

// OpenHistory opens, creating if needed, the history database at path.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrHistoryStorage, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrHistoryStorage, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", common.ErrHistoryStorage, err)
	}
	return &History{db: db}, nil
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores rec, assigning an ID and timestamp when missing, and
// returns the stored record.
func (h *History) Record(ctx context.Context, rec common.ImportRecord) (common.ImportRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.ImportedAt.IsZero() {
		rec.ImportedAt = time.Now()
	}
	rec.ImportedAt = rec.ImportedAt.UTC()

	_, err := h.db.ExecContext(ctx,
		`INSERT INTO imports (id, name, object_path, source, single_use, persistent, overrides, imported_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.ObjectPath, rec.Source,
		rec.SingleUse, rec.Persistent, rec.Overrides, rec.ImportedAt.UnixNano())
	if err != nil {
		return common.ImportRecord{}, fmt.Errorf("%w: recording %s: %v", common.ErrHistoryStorage, rec.Name, err)
	}

	common.LogDebug("Recorded import %s (%s)", rec.ID, rec.Name)
	return rec, nil
}

// List returns the most recent records first. A limit of zero or less
// returns every record.
func (h *History) List(ctx context.Context, limit int) ([]common.ImportRecord, error) {
	query := `SELECT id, name, object_path, source, single_use, persistent, overrides, imported_at
		FROM imports ORDER BY imported_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrHistoryStorage, err)
	}
	defer rows.Close()

	records := make([]common.ImportRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrHistoryStorage, err)
	}
	return records, nil
}

// Get retrieves a record by ID.
func (h *History) Get(ctx context.Context, id string) (common.ImportRecord, error) {
	row := h.db.QueryRowContext(ctx,
		`SELECT id, name, object_path, source, single_use, persistent, overrides, imported_at
		 FROM imports WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return common.ImportRecord{}, fmt.Errorf("%w: %s", common.ErrProfileNotFound, id)
	}
	return rec, err
}

// Delete removes a record by ID.
func (h *History) Delete(ctx context.Context, id string) error {
	res, err := h.db.ExecContext(ctx, `DELETE FROM imports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrHistoryStorage, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", common.ErrProfileNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (common.ImportRecord, error) {
	var (
		rec        common.ImportRecord
		importedAt int64
	)
	err := row.Scan(&rec.ID, &rec.Name, &rec.ObjectPath, &rec.Source,
		&rec.SingleUse, &rec.Persistent, &rec.Overrides, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("%w: %v", common.ErrHistoryStorage, err)
	}
	rec.ImportedAt = time.Unix(0, importedAt).UTC()
	return rec, nil
}

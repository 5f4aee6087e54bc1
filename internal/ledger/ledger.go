// Package ledger records which source documents a run has already
// processed, keyed by a content hash so a renamed or copied file is still
// recognized. The store is a single SQLite file next to the working
// directory; the default build uses the pure Go driver, the cgo_sqlite
// build tag switches to mattn/go-sqlite3.
package ledger

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

const schema = `
CREATE TABLE IF NOT EXISTS processed (
	id          TEXT PRIMARY KEY,
	source_hash TEXT NOT NULL UNIQUE,
	case_num    TEXT NOT NULL,
	folder      TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_processed_case_num ON processed(case_num);
`

// Entry is one processed document.
type Entry struct {
	ID         string
	SourceHash string
	CaseNum    string
	Folder     string
	CreatedAt  time.Time
}

// Ledger is the processed-documents store. Safe for concurrent use; all
// access goes through the embedded *sql.DB.
type Ledger struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger database at path.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// Seen reports whether a document with the given content hash has already
// been processed.
func (l *Ledger) Seen(ctx context.Context, sourceHash string) (bool, error) {
	var one int
	err := l.db.QueryRowContext(ctx,
		`SELECT 1 FROM processed WHERE source_hash = ?`, sourceHash).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("query ledger: %w", err)
	}
	return true, nil
}

// Record stores one processed document. The entry's ID and CreatedAt are
// assigned here; recording the same source hash twice is an error (check
// Seen first).
func (l *Ledger) Record(ctx context.Context, e Entry) error {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO processed (id, source_hash, case_num, folder, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.SourceHash, e.CaseNum, e.Folder, e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record %s: %w", e.SourceHash, err)
	}
	return nil
}

// Entries returns all processed documents, newest first.
func (l *Ledger) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, source_hash, case_num, folder, created_at FROM processed ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.SourceHash, &e.CaseNum, &e.Folder, &created); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// HashFile returns the hex BLAKE3 hash of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes returns the hex BLAKE3 hash of data.
func HashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides access to the recent-datasets database.
type Store struct {
	db *sql.DB
}

const schema = `
	CREATE TABLE IF NOT EXISTS datasets (
		dir TEXT PRIMARY KEY,
		format TEXT NOT NULL,
		entries INTEGER NOT NULL DEFAULT 0,
		pendingReview INTEGER NOT NULL DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0,
		openedAt REAL NOT NULL,
		savedAt REAL
	);
`

// Open opens or creates the database at path with WAL.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordOpen upserts a dataset with its current counts and open time.
func (s *Store) RecordOpen(d Dataset) error {
	_, err := s.db.Exec(`
		INSERT INTO datasets (dir, format, entries, pendingReview, deleted, openedAt)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(dir) DO UPDATE SET
			format = excluded.format,
			entries = excluded.entries,
			pendingReview = excluded.pendingReview,
			deleted = excluded.deleted,
			openedAt = excluded.openedAt
	`, d.Dir, d.Format, d.Entries, d.PendingReview, d.Deleted, unixFromTime(d.OpenedAt))
	if err != nil {
		return fmt.Errorf("record open: %w", err)
	}
	return nil
}

// RecordSave updates a known dataset's counts and save time.
func (s *Store) RecordSave(d Dataset, savedAt time.Time) error {
	_, err := s.db.Exec(`
		UPDATE datasets
		SET entries = ?, pendingReview = ?, deleted = ?, savedAt = ?
		WHERE dir = ?
	`, d.Entries, d.PendingReview, d.Deleted, unixFromTime(savedAt), d.Dir)
	if err != nil {
		return fmt.Errorf("record save: %w", err)
	}
	return nil
}

// Recent returns up to limit datasets, most recently opened first.
func (s *Store) Recent(limit int) ([]Dataset, error) {
	rows, err := s.db.Query(`
		SELECT dir, format, entries, pendingReview, deleted, openedAt, savedAt
		FROM datasets
		ORDER BY openedAt DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	defer rows.Close()

	var out []Dataset
	for rows.Next() {
		var d Dataset
		var openedAt float64
		var savedAt sql.NullFloat64
		if err := rows.Scan(&d.Dir, &d.Format, &d.Entries, &d.PendingReview,
			&d.Deleted, &openedAt, &savedAt); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		d.OpenedAt = timeFromUnix(openedAt)
		if savedAt.Valid {
			t := timeFromUnix(savedAt.Float64)
			d.SavedAt = &t
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Forget removes a dataset from the list.
func (s *Store) Forget(dir string) error {
	if _, err := s.db.Exec(`DELETE FROM datasets WHERE dir = ?`, dir); err != nil {
		return fmt.Errorf("forget dataset: %w", err)
	}
	return nil
}

func unixFromTime(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

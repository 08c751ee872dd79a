// Package history records removed exchange directories in a SQLite database
// so that destructive runs can be audited afterwards.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/exchange/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Removal is one recorded directory deletion
type Removal struct {
	ID           int64
	RunID        string
	Direction    models.Direction
	CourseID     string
	StudentID    string
	AssignmentID string
	Timestamp    string // Submission timestamp, inbound only
	Path         string
	RemovedAt    time.Time
}

// Entry converts the removal back into the exchange entry it was recorded from.
func (r Removal) Entry() models.Entry {
	return models.Entry{
		Direction:    r.Direction,
		CourseID:     r.CourseID,
		StudentID:    r.StudentID,
		AssignmentID: r.AssignmentID,
		Timestamp:    r.Timestamp,
		Path:         r.Path,
	}
}

// Query narrows ListRemovals. Zero values mean no restriction.
type Query struct {
	CourseID string
	RunID    string
	Limit    int
}

// Store manages the SQLite removal history database
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the history database at dbPath.
// ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every new connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{db: db}
	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// execWithRetry executes a statement with exponential backoff on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRemoval stores one deleted entry under runID.
func (s *Store) RecordRemoval(ctx context.Context, runID string, entry models.Entry) error {
	query := `INSERT INTO removals
		(run_id, direction, course_id, student_id, assignment_id, submitted_at, path, removed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		runID,
		entry.Direction.String(),
		entry.CourseID,
		entry.StudentID,
		entry.AssignmentID,
		entry.Timestamp,
		entry.Path,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert removal: %w", err)
	}
	return nil
}

// ListRemovals returns recorded removals, newest first.
func (s *Store) ListRemovals(ctx context.Context, q Query) ([]*Removal, error) {
	var (
		where []string
		args  []interface{}
	)
	if q.CourseID != "" {
		where = append(where, "course_id = ?")
		args = append(args, q.CourseID)
	}
	if q.RunID != "" {
		where = append(where, "run_id = ?")
		args = append(args, q.RunID)
	}

	query := `SELECT id, run_id, direction, course_id, student_id, assignment_id, submitted_at, path, removed_at
		FROM removals`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY removed_at DESC, id DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query removals: %w", err)
	}
	defer rows.Close()

	var removals []*Removal
	for rows.Next() {
		r := &Removal{}
		var direction string
		if err := rows.Scan(&r.ID, &r.RunID, &direction, &r.CourseID, &r.StudentID,
			&r.AssignmentID, &r.Timestamp, &r.Path, &r.RemovedAt); err != nil {
			return nil, fmt.Errorf("scan removal: %w", err)
		}
		if err := r.Direction.UnmarshalText([]byte(direction)); err != nil {
			return nil, fmt.Errorf("removal %d: %w", r.ID, err)
		}
		removals = append(removals, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate removals: %w", err)
	}

	return removals, nil
}

// CountRemovals returns the total number of recorded removals.
func (s *Store) CountRemovals(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM removals`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count removals: %w", err)
	}
	return count, nil
}

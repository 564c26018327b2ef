package journal

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
	"github.com/msto63/vmel/foundation/vmel/diag"
)

// Origin names where a run came from
type Origin string

const (
	OriginCLI  Origin = "cli"
	OriginHTTP Origin = "http"
	OriginWS   Origin = "ws"
	OriginGRPC Origin = "grpc"
)

// Entry is one recorded run
type Entry struct {
	ID          string            `json:"id"`
	Timestamp   time.Time         `json:"timestamp"`
	Origin      Origin            `json:"origin"`
	SourceHash  string            `json:"source_hash"`
	Source      string            `json:"source"`
	Output      string            `json:"output"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty"`
	ErrorCount  int               `json:"error_count"`
	Dropped     int               `json:"dropped"`
	Duration    time.Duration     `json:"duration"`
}

// Filter selects entries for List
type Filter struct {
	Origin     Origin
	Since      time.Time
	OnlyErrors bool
	Limit      int
	Offset     int
}

// Store persists run entries
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, error)
	Get(ctx context.Context, id string) (*Entry, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// HashSource returns the hex SHA-256 of src
func HashSource(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// prepare fills generated fields of a new entry
func prepare(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	// stored as text, so a single zone keeps the ordering
	entry.Timestamp = entry.Timestamp.UTC()
	if entry.SourceHash == "" {
		entry.SourceHash = HashSource(entry.Source)
	}
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens the journal database at path
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, mdwerror.Wrap(err, "failed to create journal directory").
				WithCode(mdwerror.CodeDatabaseError).
				WithOperation("journal.Open").
				WithDetail("path", path)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to open journal").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("journal.Open").
			WithDetail("path", path)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, mdwerror.Wrap(err, "failed to initialize journal schema").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("journal.Open")
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		origin TEXT NOT NULL,
		source_hash TEXT NOT NULL,
		source TEXT NOT NULL,
		output TEXT NOT NULL,
		diagnostics TEXT,
		error_count INTEGER NOT NULL DEFAULT 0,
		dropped INTEGER NOT NULL DEFAULT 0,
		duration_ns INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_origin ON runs(origin);
	CREATE INDEX IF NOT EXISTS idx_runs_source_hash ON runs(source_hash);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record inserts a run entry, filling ID, Timestamp and SourceHash when
// they are empty
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)

	var diagJSON []byte
	if len(entry.Diagnostics) > 0 {
		diagJSON, _ = json.Marshal(entry.Diagnostics)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, timestamp, origin, source_hash, source, output, diagnostics, error_count, dropped, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp, string(entry.Origin), entry.SourceHash, entry.Source, entry.Output,
		string(diagJSON), entry.ErrorCount, entry.Dropped, int64(entry.Duration))
	if err != nil {
		code := mdwerror.CodeDatabaseError
		if isConstraintError(err) {
			code = mdwerror.CodeDuplicateEntry
		}
		return mdwerror.Wrap(err, "failed to record run").
			WithCode(code).
			WithOperation("journal.Record").
			WithDetail("id", entry.ID)
	}
	return nil
}

// List returns entries newest first
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, origin, source_hash, source, output, diagnostics, error_count, dropped, duration_ns FROM runs WHERE 1=1`
	var args []interface{}

	if filter.Origin != "" {
		query += " AND origin = ?"
		args = append(args, string(filter.Origin))
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}
	if filter.OnlyErrors {
		query += " AND error_count > 0"
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to list runs").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("journal.List")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mdwerror.Wrap(err, "failed to read runs").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("journal.List")
	}
	return entries, nil
}

// Get returns the entry with the given id
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, origin, source_hash, source, output, diagnostics, error_count, dropped, duration_ns
		FROM runs WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, mdwerror.New("run not found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("journal.Get").
			WithDetail("id", id)
	}
	return entry, err
}

// Prune deletes entries older than the given age
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, mdwerror.Wrap(err, "failed to prune runs").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("journal.Prune")
	}
	return result.RowsAffected()
}

// Ping checks that the database is reachable
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return mdwerror.Wrap(err, "journal unreachable").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("journal.Ping")
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var entry Entry
	var origin string
	var diagJSON sql.NullString
	var durationNS int64

	err := row.Scan(&entry.ID, &entry.Timestamp, &origin, &entry.SourceHash, &entry.Source,
		&entry.Output, &diagJSON, &entry.ErrorCount, &entry.Dropped, &durationNS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to scan run").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("journal.scan")
	}

	entry.Origin = Origin(origin)
	entry.Duration = time.Duration(durationNS)
	if diagJSON.Valid && diagJSON.String != "" {
		_ = json.Unmarshal([]byte(diagJSON.String), &entry.Diagnostics)
	}
	return &entry, nil
}

func isConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

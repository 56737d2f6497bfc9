package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/doeshing/trendpost/internal/domain"
	"github.com/doeshing/trendpost/internal/ports"
)

// SQLiteStore persists history in a SQLite database, one row per record.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init %s: %w", path, err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS generations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject TEXT NOT NULL,
		prompt TEXT NOT NULL,
		result TEXT NOT NULL,
		model_version TEXT,
		response_id TEXT,
		usage_metadata TEXT,
		timestamp TEXT NOT NULL
	);`)
	return err
}

// Append inserts a new record.
func (s *SQLiteStore) Append(ctx context.Context, record domain.GenerationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var usage sql.NullString
	if len(record.UsageMetadata) > 0 {
		usage = sql.NullString{String: string(record.UsageMetadata), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO generations
		(subject, prompt, result, model_version, response_id, usage_metadata, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Subject,
		record.Prompt,
		record.Result,
		nullString(record.ModelVersion),
		nullString(record.ResponseID),
		usage,
		record.Timestamp,
	)
	return err
}

// Records returns all rows in insertion order.
func (s *SQLiteStore) Records(ctx context.Context) ([]domain.GenerationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT subject, prompt, result, model_version, response_id, usage_metadata, timestamp
		FROM generations ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.GenerationRecord
	for rows.Next() {
		var rec domain.GenerationRecord
		var modelVersion, responseID, usage sql.NullString
		if err := rows.Scan(&rec.Subject, &rec.Prompt, &rec.Result, &modelVersion, &responseID, &usage, &rec.Timestamp); err != nil {
			return nil, err
		}
		rec.ModelVersion = stringPtr(modelVersion)
		rec.ResponseID = stringPtr(responseID)
		if usage.Valid {
			rec.UsageMetadata = json.RawMessage(usage.String)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all rows.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, "DELETE FROM generations")
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

var _ ports.HistoryStore = (*SQLiteStore)(nil)

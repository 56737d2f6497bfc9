package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/doeshing/trendpost/internal/domain"
	"github.com/doeshing/trendpost/internal/pkg/logger"
	"github.com/doeshing/trendpost/internal/ports"
)

// FileStore keeps the history as a single pretty-printed JSON array.
//
// Every Append reads the whole file, adds one element and rewrites the file.
// Content that does not parse as a JSON array is discarded with a warning.
// Elements already in the array are kept byte-for-byte, whatever their shape.
// The store assumes it is the only writer of path; mu only orders calls made
// from within this process.
type FileStore struct {
	path    string
	backend Backend
	logger  ports.Logger
	mu      sync.Mutex
}

// NewFileStore creates a store for path. A nil backend means local disk and a
// nil log discards warnings.
func NewFileStore(path string, backend Backend, log ports.Logger) *FileStore {
	if backend == nil {
		backend = OSBackend{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &FileStore{path: path, backend: backend, logger: log}
}

// Append implements ports.HistoryStore.
func (f *FileStore) Append(ctx context.Context, record domain.GenerationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	entries = append(entries, raw)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := f.backend.WriteFile(f.path, data); err != nil {
		return fmt.Errorf("write history %s: %w", f.path, err)
	}
	f.logger.Debug("history updated", map[string]interface{}{
		"path":    f.path,
		"records": len(entries),
	})
	return nil
}

// Records returns the entries that decode as generation records, oldest first.
func (f *FileStore) Records(ctx context.Context) ([]domain.GenerationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	entries, err := f.load()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	records := make([]domain.GenerationRecord, 0, len(entries))
	for _, raw := range entries {
		var rec domain.GenerationRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		rec.UsageMetadata = compact(rec.UsageMetadata)
		records = append(records, rec)
	}
	return records, nil
}

// Clear removes the history file.
func (f *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.backend.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// load reads the current array. A missing file is an empty log; unparseable
// content is reported and treated as empty. Only read failures are errors.
func (f *FileStore) load() ([]json.RawMessage, error) {
	data, err := f.backend.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history %s: %w", f.path, err)
	}

	var entries []json.RawMessage
	err = json.Unmarshal(data, &entries)
	if err == nil && entries == nil {
		err = errors.New("history is null, not an array")
	}
	if err != nil {
		f.logger.Warn("history file corrupted, starting a new one", map[string]interface{}{
			"path":  f.path,
			"error": err.Error(),
		})
		return nil, nil
	}
	return entries, nil
}

// compact undoes the indentation MarshalIndent applied to nested raw values.
func compact(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return json.RawMessage(buf.Bytes())
}

var _ ports.HistoryStore = (*FileStore)(nil)

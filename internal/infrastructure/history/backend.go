package history

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/trendpost/internal/domain"
)

// Backend is the byte-level storage under a FileStore.
type Backend interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	Remove(name string) error
}

// OSBackend stores files on local disk.
type OSBackend struct{}

func (OSBackend) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile truncates name and writes data, returning only after fsync.
func (OSBackend) WriteFile(name string, data []byte) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return err
		}
	}
	file, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (OSBackend) Remove(name string) error {
	return os.Remove(name)
}

// MemoryBackend keeps files in a map. It is safe for concurrent use and
// its zero value is an empty backend.
type MemoryBackend struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{files: make(map[string][]byte)}
}

func (m *MemoryBackend) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryBackend) WriteFile(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBackend) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[name]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.files, name)
	return nil
}

var (
	_ Backend = OSBackend{}
	_ Backend = (*MemoryBackend)(nil)
)

package mocks

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"shopify-sync/core/storage"
)

// FileStore is an in-memory storage.FileStore. Errors can be injected per
// path and operation to simulate a failing transport.
type FileStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// PutErr, GetErr and DeleteErr fail the matching operation for every
	// path starting with the map key.
	PutErr    map[string]error
	GetErr    map[string]error
	DeleteErr map[string]error
	// ListErr fails every List call when set.
	ListErr error

	// Deleted records successfully deleted paths in call order.
	Deleted []string
}

// NewFileStore creates an empty in-memory store.
func NewFileStore() *FileStore {
	return &FileStore{
		objects:   make(map[string][]byte),
		PutErr:    make(map[string]error),
		GetErr:    make(map[string]error),
		DeleteErr: make(map[string]error),
	}
}

// Seed stores an object without going through Put error injection.
func (m *FileStore) Seed(p string, data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[p] = []byte(data)
}

// Object returns the stored content at p.
func (m *FileStore) Object(p string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[p]
	return string(data), ok
}

// Paths returns every stored path, sorted.
func (m *FileStore) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects))
	for p := range m.objects {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (m *FileStore) List(ctx context.Context, dir string) ([]storage.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	prefix := strings.Trim(dir, "/")
	if prefix != "" {
		prefix += "/"
	}

	seen := make(map[string]bool)
	var entries []storage.Entry
	for p, data := range m.objects {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		if i := strings.Index(rest, "/"); i >= 0 {
			sub := prefix + rest[:i+1]
			if !seen[sub] {
				seen[sub] = true
				entries = append(entries, storage.Entry{Name: rest[:i], Path: sub, Type: storage.TypeDir})
			}
			continue
		}
		entries = append(entries, storage.Entry{Name: path.Base(p), Path: p, Type: storage.TypeFile, Size: int64(len(data))})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (m *FileStore) Get(ctx context.Context, p string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := match(m.GetErr, p); err != nil {
		return nil, err
	}
	data, ok := m.objects[p]
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, storage.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (m *FileStore) Put(ctx context.Context, p string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := match(m.PutErr, p); err != nil {
		return err
	}
	m.objects[p] = append([]byte(nil), data...)
	return nil
}

func (m *FileStore) Delete(ctx context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := match(m.DeleteErr, p); err != nil {
		return err
	}
	delete(m.objects, p)
	m.Deleted = append(m.Deleted, p)
	return nil
}

func match(errs map[string]error, p string) error {
	for prefix, err := range errs {
		if strings.HasPrefix(p, prefix) {
			return err
		}
	}
	return nil
}

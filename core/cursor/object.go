package cursor

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"shopify-sync/core/reconcile"
	"shopify-sync/core/storage"
)

// ObjectStore keeps one artifact per key at <prefix>/<key>.cursor. The first
// line holds an RFC 3339 timestamp, an optional second line the seen IDs.
type ObjectStore struct {
	files  storage.FileStore
	prefix string
}

// NewObjectStore creates a cursor store over the file store.
func NewObjectStore(files storage.FileStore, prefix string) *ObjectStore {
	return &ObjectStore{files: files, prefix: strings.Trim(prefix, "/")}
}

// Path returns the artifact location for key.
func (s *ObjectStore) Path(key string) string {
	return path.Join(s.prefix, key+".cursor")
}

// Read implements Store.
func (s *ObjectStore) Read(ctx context.Context, key string) (Mark, bool, error) {
	p := s.Path(key)
	data, err := s.files.Get(ctx, p)
	if storage.IsNotFound(err) {
		return Mark{}, false, nil
	}
	if err != nil {
		return Mark{}, false, reconcile.NewRemoteServiceError("read cursor "+p, err)
	}

	m, err := parseMark(string(data))
	if err != nil {
		return Mark{}, false, fmt.Errorf("corrupt cursor %s: %w", p, err)
	}
	return m, true, nil
}

// Write implements Store.
func (s *ObjectStore) Write(ctx context.Context, key string, m Mark) error {
	p := s.Path(key)
	body := m.Position.UTC().Format(time.RFC3339Nano)
	if len(m.Seen) > 0 {
		body += "\n" + formatIDs(m.Seen)
	}
	if err := s.files.Put(ctx, p, []byte(body)); err != nil {
		return &reconcile.PersistenceError{Path: p, Err: err}
	}
	return nil
}

// Reset implements Store.
func (s *ObjectStore) Reset(ctx context.Context, key string) error {
	p := s.Path(key)
	if err := s.files.Delete(ctx, p); err != nil && !storage.IsNotFound(err) {
		return &reconcile.PersistenceError{Path: p, Err: err}
	}
	return nil
}

func parseMark(data string) (Mark, error) {
	stamp, ids, _ := strings.Cut(strings.TrimSpace(data), "\n")
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(stamp))
	if err != nil {
		return Mark{}, err
	}
	seen, err := parseIDs(ids)
	if err != nil {
		return Mark{}, err
	}
	return Mark{Position: t, Seen: seen}, nil
}

func formatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func parseIDs(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seen id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

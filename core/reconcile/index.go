package reconcile

import (
	"fmt"
	"sort"
)

// Index maps normalized business keys to projections of remote entities.
// It is built fresh for each task invocation and never persisted.
type Index[V any] struct {
	entries   map[string]V
	dups      map[string]int
	normalize func(string) string
}

// NewIndex creates an empty index. normalize is applied to every key on
// insert and lookup; nil means keys are used as given.
func NewIndex[V any](normalize func(string) string) *Index[V] {
	if normalize == nil {
		normalize = func(s string) string { return s }
	}
	return &Index[V]{
		entries:   make(map[string]V),
		dups:      make(map[string]int),
		normalize: normalize,
	}
}

// Put inserts a projection. Empty keys are ignored. On duplicate keys the
// last writer wins and the collision is recorded.
func (ix *Index[V]) Put(key string, v V) {
	k := ix.normalize(key)
	if k == "" {
		return
	}
	if _, exists := ix.entries[k]; exists {
		ix.dups[k]++
	}
	ix.entries[k] = v
}

// Lookup returns the projection for key.
func (ix *Index[V]) Lookup(key string) (V, bool) {
	v, ok := ix.entries[ix.normalize(key)]
	return v, ok
}

// Strict returns the projection for key, failing with ErrLookupMiss when the
// key is absent and ErrDuplicateKey when several entities shared it.
func (ix *Index[V]) Strict(key string) (V, error) {
	k := ix.normalize(key)
	if n, dup := ix.dups[k]; dup {
		var zero V
		return zero, fmt.Errorf("%w: %q matched %d entities", ErrDuplicateKey, k, n+1)
	}
	v, ok := ix.entries[k]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %q", ErrLookupMiss, k)
	}
	return v, nil
}

// Len returns the number of distinct keys.
func (ix *Index[V]) Len() int {
	return len(ix.entries)
}

// Duplicates returns the keys that were inserted more than once, sorted.
func (ix *Index[V]) Duplicates() []string {
	keys := make([]string, 0, len(ix.dups))
	for k := range ix.dups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Projection describes how to turn enumerated entities into index entries.
type Projection[E, C, V any] struct {
	// Children returns the line-item-like children of an entity (variants of
	// a product). Nil means the entity itself is the only child.
	Children func(E) []C

	// Key returns the business key of a child.
	Key func(C) string

	// Value builds the projection stored under the key.
	Value func(E, C) V

	// Normalize canonicalizes keys on insert and lookup.
	Normalize func(string) string
}

// BuildIndex projects an enumerated collection into an Index. It performs no
// network activity.
func BuildIndex[E, C, V any](entities []E, p Projection[E, C, V]) *Index[V] {
	ix := NewIndex[V](p.Normalize)
	for _, e := range entities {
		for _, c := range p.children(e) {
			ix.Put(p.Key(c), p.Value(e, c))
		}
	}
	return ix
}

func (p Projection[E, C, V]) children(e E) []C {
	if p.Children != nil {
		return p.Children(e)
	}
	if c, ok := any(e).(C); ok {
		return []C{c}
	}
	return nil
}

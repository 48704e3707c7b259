package cursor

import (
	"context"
	"fmt"
	"slices"
	"time"

	"shopify-sync/core/storage"

	"gorm.io/gorm"
)

// Mark is a persisted watermark. Source timestamps are second-granular, so
// records sharing the Position second may still appear after the mark was
// written; Seen lists the IDs already handled at exactly Position.
type Mark struct {
	Position time.Time
	Seen     []int64
}

// Handled reports whether a record created at createdAt with the given ID is
// already covered by the mark.
func (m Mark) Handled(createdAt time.Time, id int64) bool {
	if createdAt.Before(m.Position) {
		return true
	}
	return createdAt.Equal(m.Position) && slices.Contains(m.Seen, id)
}

// Store persists named watermarks.
type Store interface {
	// Read returns the cursor for key. ok is false when no cursor has been
	// written yet, which callers treat as "export everything".
	Read(ctx context.Context, key string) (m Mark, ok bool, err error)

	// Write replaces the cursor for key.
	Write(ctx context.Context, key string, m Mark) error

	// Reset removes the cursor for key. The next Read reports a first run.
	Reset(ctx context.Context, key string) error
}

// New builds the store selected by cfg. db is only required for the
// database driver.
func New(cfg Config, files storage.FileStore, db *gorm.DB) (Store, error) {
	switch cfg.Driver {
	case DriverObject, "":
		return NewObjectStore(files, cfg.Prefix), nil
	case DriverDatabase:
		if db == nil {
			return nil, fmt.Errorf("cursor driver %q requires a database connection", cfg.Driver)
		}
		return NewGormStore(db)
	default:
		return nil, fmt.Errorf("unknown cursor driver %q", cfg.Driver)
	}
}

// Advance moves the cursor for key forward to m. A position before the
// stored one leaves the cursor unchanged, so the watermark never moves back.
// At the same position the seen IDs are merged. It returns the mark in
// effect afterwards.
func Advance(ctx context.Context, s Store, key string, m Mark) (Mark, error) {
	prev, ok, err := s.Read(ctx, key)
	if err != nil {
		return Mark{}, err
	}
	next := Mark{Position: m.Position, Seen: normalize(m.Seen)}
	if ok {
		switch {
		case m.Position.Before(prev.Position):
			return prev, nil
		case m.Position.Equal(prev.Position):
			next.Seen = normalize(append(slices.Clone(prev.Seen), m.Seen...))
			if slices.Equal(next.Seen, normalize(prev.Seen)) {
				return prev, nil
			}
		}
	}
	if err := s.Write(ctx, key, next); err != nil {
		return prev, err
	}
	return next, nil
}

func normalize(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

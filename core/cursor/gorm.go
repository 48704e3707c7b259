package cursor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopify-sync/core/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Cursor is a persisted watermark row.
type Cursor struct {
	Name      string    `gorm:"column:name;size:64;primaryKey"`
	Position  time.Time `gorm:"column:position;precision:6;not null"`
	Seen      string    `gorm:"column:seen;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at;precision:6"`
}

// TableName overrides the table name.
func (Cursor) TableName() string {
	return "sync_cursors"
}

// GormStore keeps cursors in the sync_cursors table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the cursor table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Cursor{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// Read implements Store.
func (s *GormStore) Read(ctx context.Context, key string) (Mark, bool, error) {
	var c Cursor
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Mark{}, false, nil
	}
	if err != nil {
		return Mark{}, false, reconcile.NewRemoteServiceError("read cursor "+key, err)
	}
	seen, err := parseIDs(c.Seen)
	if err != nil {
		return Mark{}, false, fmt.Errorf("corrupt cursor %s: %w", key, err)
	}
	return Mark{Position: c.Position.UTC(), Seen: seen}, true, nil
}

// Write implements Store.
func (s *GormStore) Write(ctx context.Context, key string, m Mark) error {
	c := Cursor{Name: key, Position: m.Position.UTC(), Seen: formatIDs(m.Seen), UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"position", "seen", "updated_at"}),
	}).Create(&c).Error
	if err != nil {
		return &reconcile.PersistenceError{Path: "sync_cursors/" + key, Err: err}
	}
	return nil
}

// Reset implements Store.
func (s *GormStore) Reset(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("name = ?", key).Delete(&Cursor{}).Error; err != nil {
		return &reconcile.PersistenceError{Path: "sync_cursors/" + key, Err: err}
	}
	return nil
}

package cursor

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopify-sync/core/database"
	"shopify-sync/core/reconcile"
	"shopify-sync/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var t0 = time.Date(2024, 3, 1, 12, 30, 0, 123456000, time.UTC)

func TestObjectStore(t *testing.T) {
	ctx := context.Background()
	files := mocks.NewFileStore()
	s := NewObjectStore(files, "/cursors/")

	_, ok, err := s.Read(ctx, "orders")
	require.NoError(t, err, "missing cursor is a first run, not an error")
	assert.False(t, ok)

	require.NoError(t, s.Write(ctx, "orders", Mark{Position: t0}))
	raw, _ := files.Object("cursors/orders.cursor")
	assert.Equal(t, "2024-03-01T12:30:00.123456Z", raw)

	got, ok, err := s.Read(ctx, "orders")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Position.Equal(t0))
}

func TestObjectStore_SeenIDs(t *testing.T) {
	ctx := context.Background()
	files := mocks.NewFileStore()
	s := NewObjectStore(files, "cursors")

	require.NoError(t, s.Write(ctx, "orders", Mark{Position: t0, Seen: []int64{1001, 1004}}))
	raw, _ := files.Object("cursors/orders.cursor")
	assert.Equal(t, "2024-03-01T12:30:00.123456Z\n1001,1004", raw)

	got, ok, err := s.Read(ctx, "orders")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Position.Equal(t0))
	assert.Equal(t, []int64{1001, 1004}, got.Seen)

	files.Seed("cursors/bad.cursor", "2024-03-01T12:30:00Z\n1001,x")
	_, _, err = s.Read(ctx, "bad")
	assert.ErrorContains(t, err, "corrupt cursor")
}

func TestMark_Handled(t *testing.T) {
	m := Mark{Position: t0, Seen: []int64{5}}

	assert.True(t, m.Handled(t0.Add(-time.Second), 1), "older records are covered")
	assert.True(t, m.Handled(t0, 5))
	assert.False(t, m.Handled(t0, 6), "same second, not yet seen")
	assert.False(t, m.Handled(t0.Add(time.Second), 5))
}

func TestObjectStore_Failures(t *testing.T) {
	ctx := context.Background()
	files := mocks.NewFileStore()
	s := NewObjectStore(files, "cursors")

	files.PutErr["cursors/"] = errors.New("disk full")
	err := s.Write(ctx, "orders", Mark{Position: t0})
	assert.True(t, reconcile.IsPersistenceError(err))

	files.GetErr["cursors/"] = errors.New("timeout")
	_, _, err = s.Read(ctx, "orders")
	assert.True(t, reconcile.IsRemoteServiceError(err))

	delete(files.GetErr, "cursors/")
	files.Seed("cursors/bad.cursor", "yesterday")
	_, _, err = s.Read(ctx, "bad")
	assert.ErrorContains(t, err, "corrupt cursor")
}

func TestAdvance_Monotonic(t *testing.T) {
	ctx := context.Background()
	s := NewObjectStore(mocks.NewFileStore(), "cursors")

	got, err := Advance(ctx, s, "orders", Mark{Position: t0})
	require.NoError(t, err)
	assert.True(t, got.Position.Equal(t0))

	got, err = Advance(ctx, s, "orders", Mark{Position: t0.Add(-time.Hour)})
	require.NoError(t, err)
	assert.True(t, got.Position.Equal(t0), "cursor never moves back")

	later := t0.Add(time.Minute)
	got, err = Advance(ctx, s, "orders", Mark{Position: later})
	require.NoError(t, err)
	assert.True(t, got.Position.Equal(later))

	stored, _, _ := s.Read(ctx, "orders")
	assert.True(t, stored.Position.Equal(later))
}

func TestAdvance_SamePositionMergesSeen(t *testing.T) {
	ctx := context.Background()
	files := mocks.NewFileStore()
	s := NewObjectStore(files, "cursors")

	_, err := Advance(ctx, s, "orders", Mark{Position: t0, Seen: []int64{3, 1}})
	require.NoError(t, err)

	got, err := Advance(ctx, s, "orders", Mark{Position: t0, Seen: []int64{2, 3}})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, got.Seen)

	stored, _, _ := s.Read(ctx, "orders")
	assert.Equal(t, []int64{1, 2, 3}, stored.Seen)

	got, err = Advance(ctx, s, "orders", Mark{Position: t0.Add(time.Second), Seen: []int64{9}})
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, got.Seen, "a newer position starts a fresh seen set")
}

func TestAdvance_WriteFailureKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	files := mocks.NewFileStore()
	s := NewObjectStore(files, "cursors")
	require.NoError(t, s.Write(ctx, "orders", Mark{Position: t0}))

	files.PutErr["cursors/orders"] = errors.New("denied")
	got, err := Advance(ctx, s, "orders", Mark{Position: t0.Add(time.Hour)})
	assert.True(t, reconcile.IsPersistenceError(err))
	assert.True(t, got.Position.Equal(t0))

	stored, _, _ := s.Read(ctx, "orders")
	assert.True(t, stored.Position.Equal(t0))
}

func TestGormStore_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	s, err := NewGormStore(db)
	require.NoError(t, err)

	_, ok, err := s.Read(ctx, "orders")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Write(ctx, "orders", Mark{Position: t0}))
	require.NoError(t, s.Write(ctx, "orders", Mark{Position: t0.Add(time.Hour), Seen: []int64{7, 9}}), "second write upserts")

	got, ok, err := s.Read(ctx, "orders")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Position.Equal(t0.Add(time.Hour)))
	assert.Equal(t, []int64{7, 9}, got.Seen)

	var count int64
	db.Model(&Cursor{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGormStore_ReadError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `sync_cursors`").WillReturnError(errors.New("connection lost"))

	s := &GormStore{db: db}
	_, _, err = s.Read(context.Background(), "orders")
	assert.True(t, reconcile.IsRemoteServiceError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew(t *testing.T) {
	files := mocks.NewFileStore()

	s, err := New(Config{Driver: DriverObject, Prefix: "cursors"}, files, nil)
	require.NoError(t, err)
	assert.IsType(t, &ObjectStore{}, s)

	_, err = New(Config{Driver: DriverDatabase}, files, nil)
	assert.ErrorContains(t, err, "requires a database")

	_, err = New(Config{Driver: "redis"}, files, nil)
	assert.ErrorContains(t, err, "unknown cursor driver")
}

func TestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("ObjectStore", func(t *testing.T) {
		files := mocks.NewFileStore()
		s := NewObjectStore(files, "cursors")
		require.NoError(t, s.Write(ctx, "orders", Mark{Position: t0}))

		require.NoError(t, s.Reset(ctx, "orders"))
		_, ok, err := s.Read(ctx, "orders")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"cursors/orders.cursor"}, files.Deleted)
	})

	t.Run("ObjectStoreFailure", func(t *testing.T) {
		files := mocks.NewFileStore()
		files.DeleteErr["cursors/"] = errors.New("denied")
		s := NewObjectStore(files, "cursors")

		err := s.Reset(ctx, "orders")
		assert.True(t, reconcile.IsPersistenceError(err))
	})

	t.Run("GormStore", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		s, err := NewGormStore(db)
		require.NoError(t, err)

		require.NoError(t, s.Write(ctx, "orders", Mark{Position: t0}))
		require.NoError(t, s.Write(ctx, "shipments", Mark{Position: t0}))
		require.NoError(t, s.Reset(ctx, "orders"))

		_, ok, err := s.Read(ctx, "orders")
		require.NoError(t, err)
		assert.False(t, ok)
		_, ok, err = s.Read(ctx, "shipments")
		require.NoError(t, err)
		assert.True(t, ok, "other keys are untouched")
	})
}

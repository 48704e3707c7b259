package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopify-sync/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStorageNotifier(t *testing.T) {
	files := mocks.NewFileStore()
	n := NewStorageNotifier(files, "/reports/")
	n.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	err := n.Notify(context.Background(), Message{RunID: "run-1", Subject: "shopify-sync: ok", Body: "WARN sku missing"})
	require.NoError(t, err)

	body, ok := files.Object("reports/20240506T070809Z-run-1.log")
	require.True(t, ok)
	assert.Equal(t, "shopify-sync: ok\n\nWARN sku missing\n", body)
}

func TestStorageNotifier_PutFailure(t *testing.T) {
	files := mocks.NewFileStore()
	files.PutErr["reports/"] = errors.New("denied")

	err := NewStorageNotifier(files, "reports").Notify(context.Background(), Message{RunID: "x"})
	assert.ErrorContains(t, err, "denied")
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.Notify(context.Background(), Message{RunID: "run-2", Subject: "report", Body: "all good"}))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "report", entry.Message)
	assert.Equal(t, "all good", entry.ContextMap()["report"])
}

func TestNew(t *testing.T) {
	tests := []struct {
		driver  string
		want    any
		wantErr bool
	}{
		{DriverStorage, &StorageNotifier{}, false},
		{DriverLog, &LogNotifier{}, false},
		{DriverNone, Discard{}, false},
		{"email", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			n, err := New(Config{Driver: tt.driver, Prefix: "reports"}, mocks.NewFileStore(), zap.NewNop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, n)
		})
	}
}

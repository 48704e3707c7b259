package shipments

import (
	"context"
	"errors"
	"testing"

	"shopify-sync/core/commerce"
	commercemocks "shopify-sync/core/commerce/mocks"
	"shopify-sync/core/pipeline"
	"shopify-sync/core/reconcile"
	"shopify-sync/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const feedCSV = "PO Number,Tracking Number,Carrier,SKU,Quantity\n" +
	"A,T1,UPS,X,2\n" +
	"A,T1,UPS,Y,1\n" +
	"B,T2,FDX,X,4\n"

func setupTask(t *testing.T) (*Task, *commercemocks.API, *mocks.FileStore) {
	t.Helper()
	api := new(commercemocks.API)
	files := mocks.NewFileStore()
	task, err := NewTask(Config{Dir: "feeds/shipments"}, pipeline.Deps{
		API:      api,
		Files:    files,
		Logger:   zap.NewNop(),
		PageSize: 250,
	})
	require.NoError(t, err)

	files.Seed("feeds/shipments/day1.csv", feedCSV)
	open := openOrders()[:2]
	api.On("Count", mock.Anything, commerce.Orders, commerce.Filter{"status": "open"}).Return(len(open), nil)
	api.On("List", mock.Anything, commerce.Orders, mock.Anything, 1, 250, mock.Anything).Return(open, nil)
	return task, api, files
}

func TestTask_Run(t *testing.T) {
	task, api, files := setupTask(t)
	var created []int64
	api.On("Create", mock.Anything, commerce.Fulfillments, mock.Anything, mock.Anything, nil).
		Run(func(args mock.Arguments) { created = append(created, args.Get(2).(int64)) }).
		Return(nil)

	report, err := task.Run(context.Background(), reconcile.Sequential)
	require.NoError(t, err)
	assert.Equal(t, []int64{501, 502}, created, "issued in feed order")
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, []string{"feeds/shipments/day1.csv"}, files.Deleted)
}

func TestTask_SequentialStopKeepsFeed(t *testing.T) {
	task, api, files := setupTask(t)
	api.On("Create", mock.Anything, commerce.Fulfillments, int64(501), mock.Anything, nil).
		Return(errors.New("422 line items already fulfilled"))

	report, err := task.Run(context.Background(), reconcile.Sequential)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, files.Deleted, "not every fulfillment was attempted")
	api.AssertNotCalled(t, "Create", mock.Anything, commerce.Fulfillments, int64(502), mock.Anything, mock.Anything)
}

func TestTask_DeleteFailureIsReported(t *testing.T) {
	task, api, files := setupTask(t)
	files.DeleteErr["feeds/"] = errors.New("permission denied")
	api.On("Create", mock.Anything, commerce.Fulfillments, mock.Anything, mock.Anything, nil).Return(nil)

	report, err := task.Run(context.Background(), reconcile.Sequential)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.DeleteFailed)
	assert.False(t, pipeline.StageResult{Report: *report}.OK(), "an undeleted feed fails the stage")
	_, kept := files.Object("feeds/shipments/day1.csv")
	assert.True(t, kept)
	api.AssertNumberOfCalls(t, "Create", 2)
}

func TestTask_FailedBatchDefersLaterFeeds(t *testing.T) {
	const header = "PO Number,Tracking Number,Carrier,SKU,Quantity\n"

	tests := []struct {
		name       string
		discipline reconcile.Discipline
		files      int
		calls      int
	}{
		{"Sequential", reconcile.Sequential, 1, 1},
		{"Independent", reconcile.Independent, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, api, files := setupTask(t)
			files.Seed("feeds/shipments/day1.csv", header+"A,T1,UPS,X,2\nA,T1,UPS,Y,1\n")
			files.Seed("feeds/shipments/day2.csv", header+"B,T2,FDX,X,4\n")
			api.On("Create", mock.Anything, commerce.Fulfillments, int64(501), mock.Anything, nil).
				Return(errors.New("422 line items already fulfilled"))
			api.On("Create", mock.Anything, commerce.Fulfillments, int64(502), mock.Anything, nil).Return(nil)

			report, err := task.Run(context.Background(), tt.discipline)
			require.NoError(t, err)
			assert.Equal(t, tt.files, report.Files)
			assert.Equal(t, 1, report.Failed)
			api.AssertNumberOfCalls(t, "Create", tt.calls)

			_, pending := files.Object("feeds/shipments/day2.csv")
			assert.Equal(t, tt.discipline == reconcile.Sequential, pending)
		})
	}
}

package payments

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

func setupTask(t *testing.T, orders []commerce.Order) (*Task, *commercemocks.API, *mocks.FileStore) {
	t.Helper()
	api := new(commercemocks.API)
	files := mocks.NewFileStore()
	task, err := NewTask(Config{Dir: "feeds/payments"}, pipeline.Deps{
		API:      api,
		Files:    files,
		Logger:   zap.NewNop(),
		PageSize: 250,
	})
	require.NoError(t, err)

	api.On("Count", mock.Anything, commerce.Orders, commerce.Filter{"status": "open", "financial_status": "authorized"}).
		Return(len(orders), nil)
	api.On("List", mock.Anything, commerce.Orders, mock.Anything, 1, 250, mock.Anything).Return(orders, nil)
	return task, api, files
}

func TestTask_Run(t *testing.T) {
	orders := authorizedOrders()[:2]
	orders = append(orders, commerce.Order{ID: 799, Name: "#1005", FinancialStatus: commerce.FinancialPaid})
	task, api, files := setupTask(t, orders)
	files.Seed("feeds/payments/captures.csv", "PO Number,Amount\n1001,\n1002,20\n1005,3\n")

	api.On("Create", mock.Anything, commerce.Transactions, int64(701),
		map[string]any{"kind": "capture", "amount": "59.90"}, nil).Return(nil).Once()
	api.On("Create", mock.Anything, commerce.Transactions, int64(702),
		map[string]any{"kind": "capture", "amount": "20.00"}, nil).Return(nil).Once()

	report, err := task.Run(context.Background(), reconcile.Sequential)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Warnings, "paid order is not capturable")
	assert.Equal(t, []string{"feeds/payments/captures.csv"}, files.Deleted)
	api.AssertExpectations(t)
}

func TestTask_CaptureFailureStopsFeed(t *testing.T) {
	task, api, files := setupTask(t, authorizedOrders()[:2])
	files.Seed("feeds/payments/captures.csv", "PO Number,Amount\n1001,10\n1002,5\n")
	api.On("Create", mock.Anything, commerce.Transactions, int64(701), mock.Anything, nil).
		Return(errors.New("authorization expired"))

	report, err := task.Run(context.Background(), reconcile.Sequential)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, files.Deleted)
}

func TestTask_CaptureFailureDefersLaterFeeds(t *testing.T) {
	task, api, files := setupTask(t, authorizedOrders()[:2])
	files.Seed("feeds/payments/a.csv", "PO Number,Amount\n1001,10\n")
	files.Seed("feeds/payments/b.csv", "PO Number,Amount\n1002,5\n")
	api.On("Create", mock.Anything, commerce.Transactions, int64(701), mock.Anything, nil).
		Return(errors.New("authorization expired"))

	report, err := task.Run(context.Background(), reconcile.Sequential)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Files)
	assert.Equal(t, 1, report.Failed)
	api.AssertNotCalled(t, "Create", mock.Anything, commerce.Transactions, int64(702), mock.Anything, mock.Anything)

	_, pending := files.Object("feeds/payments/b.csv")
	assert.True(t, pending, "later feed waits for the next run")
}

func TestTask_DeleteFailureIsReported(t *testing.T) {
	task, api, files := setupTask(t, authorizedOrders()[:2])
	files.Seed("feeds/payments/captures.csv", "PO Number,Amount\n1001,10\n")
	files.DeleteErr["feeds/"] = errors.New("permission denied")
	api.On("Create", mock.Anything, commerce.Transactions, int64(701), mock.Anything, nil).Return(nil)

	report, err := task.Run(context.Background(), reconcile.Sequential)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.DeleteFailed)
	assert.False(t, pipeline.StageResult{Report: *report}.OK())
}

func TestTask_NoFeedsSkipsEnumeration(t *testing.T) {
	api := new(commercemocks.API)
	task, err := NewTask(Config{Dir: "feeds/payments"}, pipeline.Deps{API: api, Files: mocks.NewFileStore()})
	require.NoError(t, err)

	report, err := task.Run(context.Background(), reconcile.Sequential)
	require.NoError(t, err)
	assert.Zero(t, report.Files)
	api.AssertNotCalled(t, "Count", mock.Anything, mock.Anything, mock.Anything)
}

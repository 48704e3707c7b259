package inventory

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

const feedCSV = "(C)upc,(C)qty,(C)price,(C)sale_price\n" +
	"123456789012,5,12.00,10.00\n" +
	"12345,7,3.50,\n" +
	"999,1,1.00,\n"

func setupTask(t *testing.T, strict bool) (*Task, *commercemocks.API, *mocks.FileStore) {
	t.Helper()
	api := new(commercemocks.API)
	files := mocks.NewFileStore()

	task, err := NewTask(Config{Dir: "feeds/inventory", KeyField: KeyFieldSKU, KeyWidth: 12}, strict, pipeline.Deps{
		API:      api,
		Files:    files,
		Logger:   zap.NewNop(),
		PageSize: 250,
		Workers:  2,
	})
	require.NoError(t, err)
	return task, api, files
}

func expectCatalog(api *commercemocks.API) {
	api.On("Count", mock.Anything, commerce.Products, mock.Anything).Return(2, nil)
	api.On("List", mock.Anything, commerce.Products, commerce.Filter{"fields": "id,variants"}, 1, 250, mock.Anything).
		Return(catalog(), nil)
}

func TestTask_Run(t *testing.T) {
	task, api, files := setupTask(t, false)
	files.Seed("feeds/inventory/a.csv", feedCSV)
	expectCatalog(api)
	api.On("Update", mock.Anything, commerce.Variants, int64(11),
		map[string]any{"inventory_quantity": 7, "old_inventory_quantity": 0}, nil).Return(nil)

	report, err := task.Run(context.Background(), reconcile.Independent)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Files)
	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, 1, report.Mutations)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Warnings)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, []string{"feeds/inventory/a.csv"}, files.Deleted)
	api.AssertExpectations(t)
}

func TestTask_StrictKeys(t *testing.T) {
	task, api, files := setupTask(t, true)
	files.Seed("feeds/inventory/a.csv", feedCSV)
	expectCatalog(api)
	api.On("Update", mock.Anything, commerce.Variants, int64(11), mock.Anything, nil).Return(nil)

	report, err := task.Run(context.Background(), reconcile.Independent)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed, "unmapped key is a failure under strict keys")
	assert.Equal(t, 0, report.Warnings)
	assert.Equal(t, 1, report.Succeeded, "the rest of the batch still runs")
}

func TestTask_UpdateFailureStillDeletesFeed(t *testing.T) {
	task, api, files := setupTask(t, false)
	files.Seed("feeds/inventory/a.csv", feedCSV)
	expectCatalog(api)
	api.On("Update", mock.Anything, commerce.Variants, int64(11), mock.Anything, nil).
		Return(reconcile.NewRemoteServiceError("PUT /variants/11.json", errors.New("status 422")))

	report, err := task.Run(context.Background(), reconcile.Independent)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []string{"feeds/inventory/a.csv"}, files.Deleted, "every mutation was attempted")
}

func TestTask_DeleteFailureIsReported(t *testing.T) {
	task, api, files := setupTask(t, false)
	files.Seed("feeds/inventory/a.csv", feedCSV)
	files.DeleteErr["feeds/inventory/"] = errors.New("permission denied")
	expectCatalog(api)
	api.On("Update", mock.Anything, commerce.Variants, int64(11), mock.Anything, nil).Return(nil)

	report, err := task.Run(context.Background(), reconcile.Independent)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.DeleteFailed)
	assert.Empty(t, files.Deleted)
}

func TestTask_EnumerationFailureAborts(t *testing.T) {
	task, api, files := setupTask(t, false)
	files.Seed("feeds/inventory/a.csv", feedCSV)
	api.On("Count", mock.Anything, commerce.Products, mock.Anything).Return(30, nil)
	api.On("List", mock.Anything, commerce.Products, mock.Anything, 1, 250, mock.Anything).
		Return(nil, errors.New("connection reset"))

	_, err := task.Run(context.Background(), reconcile.Independent)
	require.Error(t, err)
	assert.True(t, reconcile.IsRemoteServiceError(err))
	api.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, files.Deleted)
}

func TestTask_RejectedFeedIsKept(t *testing.T) {
	task, api, files := setupTask(t, false)
	files.Seed("feeds/inventory/a.csv", "sku,stock\n1,2\n")
	expectCatalog(api)

	report, err := task.Run(context.Background(), reconcile.Independent)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, files.Deleted)
}

func TestTask_NoFeeds(t *testing.T) {
	task, api, _ := setupTask(t, false)

	report, err := task.Run(context.Background(), reconcile.Independent)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Files)
	api.AssertNotCalled(t, "Count", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewTask_BadColumns(t *testing.T) {
	_, err := NewTask(Config{Columns: "upc"}, false, pipeline.Deps{})
	assert.Error(t, err)
}

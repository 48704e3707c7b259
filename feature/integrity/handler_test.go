package integrity

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"shopify-sync/core/commerce"
	commercemocks "shopify-sync/core/commerce/mocks"
	"shopify-sync/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client, sqlmock.Sqlmock, *commercemocks.API) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	db, sqlMock := setupMockDB(t)
	api := new(commercemocks.API)
	svc := NewService(mockClient, "test-bucket", testFolders, zap.NewNop(), db, api)
	NewHandler(svc).RegisterRoutes(app)
	return app, mockClient, sqlMock, api
}

func decode(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleStructureCheck(t *testing.T) {
	app, mockClient, _, _ := setupTestApp(t)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(nil)

	status, body := decode(t, app, "/integrity/structure")
	assert.Equal(t, 200, status)
	assert.Equal(t, "checked", body["status"])
	assert.Len(t, body["missing"], 2)
}

func TestHandleStructureCheck_Fix(t *testing.T) {
	app, mockClient, _, _ := setupTestApp(t)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(nil)
	mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	status, body := decode(t, app, "/integrity/structure?fix=true")
	assert.Equal(t, 200, status)
	assert.Equal(t, "fixed", body["status"])
}

func TestHandleStructureCheck_Error(t *testing.T) {
	app, mockClient, _, _ := setupTestApp(t)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, errors.New("dial tcp"))

	status, body := decode(t, app, "/integrity/structure")
	assert.Equal(t, 500, status)
	assert.Contains(t, body["error"], "dial tcp")
}

func TestHandleSchemaCheck(t *testing.T) {
	app, _, sqlMock, _ := setupTestApp(t)
	sqlMock.ExpectQuery(".*").WillReturnRows(sqlmock.NewRows([]string{"Field", "Type"}).AddRow("name", "varchar(64)"))
	sqlMock.ExpectQuery(".*").WillReturnRows(sqlmock.NewRows([]string{"Field", "Type"}))
	sqlMock.ExpectQuery(".*").WillReturnRows(sqlmock.NewRows([]string{"Field", "Type"}))

	status, body := decode(t, app, "/integrity/schema")
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["matched"])
}

func TestHandleCommerceCheck(t *testing.T) {
	t.Run("Reachable", func(t *testing.T) {
		app, _, _, api := setupTestApp(t)
		api.On("Count", mock.Anything, commerce.Products, mock.Anything).Return(3, nil)
		api.On("Count", mock.Anything, commerce.Orders, mock.Anything).Return(0, nil)

		status, body := decode(t, app, "/integrity/commerce")
		assert.Equal(t, 200, status)
		assert.Equal(t, true, body["reachable"])
		assert.Equal(t, float64(3), body["products"])
	})

	t.Run("Unreachable", func(t *testing.T) {
		app, _, _, api := setupTestApp(t)
		api.On("Count", mock.Anything, commerce.Products, mock.Anything).Return(0, errors.New("timeout"))

		status, body := decode(t, app, "/integrity/commerce")
		assert.Equal(t, 503, status)
		assert.Equal(t, false, body["reachable"])
	})
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, mockClient, sqlMock, api := setupTestApp(t)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
	sqlMock.ExpectQuery(".*").WillReturnError(errors.New("no table"))
	sqlMock.ExpectQuery(".*").WillReturnError(errors.New("no table"))
	sqlMock.ExpectQuery(".*").WillReturnError(errors.New("no table"))
	api.On("Count", mock.Anything, mock.Anything, mock.Anything).Return(1, nil)

	status, body := decode(t, app, "/integrity")
	assert.Equal(t, 200, status)
	assert.Contains(t, body, "structure")
	assert.Contains(t, body, "schema")
	assert.Contains(t, body, "commerce")
	assert.Equal(t, "error", body["structure"].(map[string]any)["status"])
}

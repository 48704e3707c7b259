package integrity

import (
	"net/http/httptest"
	"testing"

	"shopify-sync/core/loader"
	"shopify-sync/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFeature(t *testing.T) {
	feature := NewFeature(new(mocks.Client), "test-bucket", testFolders, zap.NewNop(), nil, nil)

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
}

func TestFeature_DisabledIsNotMounted(t *testing.T) {
	feature := NewFeature(new(mocks.Client), "test-bucket", testFolders, zap.NewNop(), nil, nil)
	feature.SetEnabled(false)

	mgr := loader.NewManager(zap.NewNop())
	mgr.Register(feature)

	app := fiber.New()
	require.NoError(t, mgr.LoadAll(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/commerce", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

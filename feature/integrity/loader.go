package integrity

import (
	"shopify-sync/core/commerce"
	"shopify-sync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new integrity feature.
func NewFeature(client storage.Client, bucket string, folders []string, logger *zap.Logger, db *gorm.DB, api commerce.API) *Feature {
	svc := NewService(client, bucket, folders, logger, db, api)
	return &Feature{service: svc, handler: NewHandler(svc), enabled: true}
}

// SetEnabled turns the /integrity routes on or off before loading.
func (f *Feature) SetEnabled(enabled bool) {
	f.enabled = enabled
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

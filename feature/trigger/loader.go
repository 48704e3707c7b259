package trigger

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the trigger feature.
func NewFeature(runner Runner, history History, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(runner, history, logger))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "trigger"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

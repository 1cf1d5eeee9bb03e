package files

import (
	"file-gateway/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Files feature.
func NewFeature(client storage.Client, cfg storage.Config, serviceCode string, logger *zap.Logger, db *gorm.DB) *Feature {
	svc := NewService(client, cfg, logger, db)
	h := NewHandler(svc, serviceCode)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "files"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load prepares the audit table and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.service.recorder.Migrate(); err != nil {
		f.service.logger.Warn("File event table migration failed; events will not be recorded", zap.Error(err))
		f.service.recorder.db = nil
	}
	f.handler.RegisterRoutes(app)
	return nil
}

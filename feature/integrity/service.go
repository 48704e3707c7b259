package integrity

import (
	"context"

	"shopify-sync/core/commerce"
	"shopify-sync/core/storage"
	"shopify-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	folders []string
	logger  *zap.Logger
	db      *gorm.DB
	api     commerce.API
}

// NewService creates a new integrity service. db and api may be nil; the
// checks needing them then report an error.
func NewService(client storage.Client, bucket string, folders []string, logger *zap.Logger, db *gorm.DB, api commerce.API) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		folders: folders,
		logger:  logger,
		db:      db,
		api:     api,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.folders)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CreateBucket creates the bucket when it is missing.
func (s *Service) CreateBucket(ctx context.Context, region string) error {
	return checks.CreateBucket(ctx, s.client, s.bucket, region, s.logger)
}

// CheckSchema compares the sync tables with their models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, checks.SyncModels()...)
}

// CheckCommerce probes the commerce platform.
func (s *Service) CheckCommerce(ctx context.Context) (*checks.CommerceReport, error) {
	return checks.CheckCommerce(ctx, s.api)
}

package storage

import (
	"context"
	"fmt"

	invoiceapp "github.com/ecommerce/backend/internal/application/invoice"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Drivers accepted by storage.driver
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// NewFileStorage returns the backend selected by cfg.Driver.
// The S3 backend creates its bucket on first start.
func NewFileStorage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (invoiceapp.FileStorage, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return NewLocalFileStorage(cfg.LocalDir, cfg.PublicPath, logger)
	case DriverS3:
		s, err := NewS3FileStorage(ctx, cfg, WithS3Logger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

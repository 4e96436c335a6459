package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	invoiceapp "github.com/ecommerce/backend/internal/application/invoice"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var _ invoiceapp.FileStorage = (*LocalFileStorage)(nil)

// LocalFileStorage writes invoice documents to a directory on disk
type LocalFileStorage struct {
	dir        string
	publicPath string
	logger     *zap.Logger
}

// NewLocalFileStorage creates dir (mode 0755) if needed
func NewLocalFileStorage(dir, publicPath string, logger *zap.Logger) (*LocalFileStorage, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalFileStorage{
		dir:        dir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
		logger:     logger,
	}, nil
}

// UploadFile writes content to dir/fileName and returns publicPath/fileName
func (s *LocalFileStorage) UploadFile(ctx context.Context, content []byte, fileName string) (string, error) {
	if err := validateFileName(fileName); err != nil {
		return "", err
	}

	_, span := telemetry.StartStorageSpan(ctx, DriverLocal)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(target, content, 0o644); err != nil {
		telemetry.RecordError(span, err)
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}

	s.logger.Debug("invoice file stored",
		zap.String("path", target),
		zap.Int("size", len(content)),
	)
	return s.publicPath + "/" + fileName, nil
}

// validateFileName rejects names that would escape the storage root
func validateFileName(fileName string) error {
	if fileName == "" {
		return errors.New("file name is required")
	}
	if fileName != filepath.Base(fileName) || strings.ContainsAny(fileName, `/\`) || fileName == "." || fileName == ".." {
		return fmt.Errorf("invalid file name %q", fileName)
	}
	return nil
}

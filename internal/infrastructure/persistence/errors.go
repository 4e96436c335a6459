package persistence

import (
	"errors"
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver errors onto domain sentinels.
// Not-found and duplicate-key errors become shared.ErrNotFound and
// shared.ErrAlreadyExists; everything else is returned unchanged.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case isDuplicateKey(err):
		return shared.ErrAlreadyExists
	default:
		return err
	}
}

// isDuplicateKey also matches raw driver messages for connections opened without TranslateError
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

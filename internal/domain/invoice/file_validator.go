package invoice

import (
	"fmt"
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// Validation errors for uploaded invoice documents
var (
	ErrInvalidFileType = shared.NewDomainError("INVALID_FILE_TYPE", "Invalid invoice file type")
	ErrEmptyFile       = shared.NewDomainError("EMPTY_FILE", "Invoice file content cannot be empty")
)

// FileValidator checks uploaded invoice documents.
// Only PDF documents are accepted.
type FileValidator struct {
	allowed map[string]struct{}
}

// NewFileValidator creates the PDF-only validator
func NewFileValidator() *FileValidator {
	return &FileValidator{
		allowed: map[string]struct{}{
			"application/pdf": {},
		},
	}
}

// ValidateContent rejects empty uploads
func (v *FileValidator) ValidateContent(content []byte) error {
	if len(content) == 0 {
		return shared.NewDomainError(ErrEmptyFile.Code, ErrEmptyFile.Message)
	}
	return nil
}

// ValidateMimeType checks mimeType against the allow-list.
// Media type parameters such as "; charset=binary" are ignored.
func (v *FileValidator) ValidateMimeType(mimeType string) error {
	mt := strings.TrimSpace(mimeType)
	if mt == "" {
		return shared.NewDomainError(ErrInvalidFileType.Code, "Invoice file type cannot be empty")
	}
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if _, ok := v.allowed[strings.ToLower(mt)]; !ok {
		return shared.NewDomainError(ErrInvalidFileType.Code, fmt.Sprintf("Invoice files must be PDF. Received: %s", mimeType))
	}
	return nil
}

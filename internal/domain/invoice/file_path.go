package invoice

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// MaxFilePathLength bounds the stored reference length
const MaxFilePathLength = 500

// ErrInvalidFilePath is returned when a file reference fails validation
var ErrInvalidFilePath = shared.NewDomainError("INVALID_FILE_PATH", "Invalid file path")

// FilePath is a validated reference to a stored invoice document
type FilePath struct {
	value string
}

// NewFilePath trims and validates v
func NewFilePath(v string) (FilePath, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return FilePath{}, invalidFilePath("File path cannot be empty")
	}
	if utf8.RuneCountInString(v) > MaxFilePathLength {
		return FilePath{}, invalidFilePath(fmt.Sprintf("File path cannot exceed %d characters", MaxFilePathLength))
	}
	if strings.Contains(v, "..") {
		return FilePath{}, invalidFilePath(`File path cannot contain ".." for security reasons`)
	}
	return FilePath{value: v}, nil
}

// FilePathFromPrimitive rehydrates a stored file path
func FilePathFromPrimitive(v string) FilePath {
	return FilePath{value: v}
}

func invalidFilePath(msg string) error {
	return shared.NewDomainError(ErrInvalidFilePath.Code, msg)
}

// String returns the stored reference
func (p FilePath) String() string {
	return p.value
}

// Extension returns the lower-cased extension without the dot
func (p FilePath) Extension() string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(p.FileName()), "."))
}

// FileName returns the last path element, ignoring any URL query
func (p FilePath) FileName() string {
	v := p.value
	if i := strings.IndexAny(v, "?#"); i >= 0 {
		v = v[:i]
	}
	return path.Base(v)
}

package invoice

import (
	"context"
	"time"
)

// FileStorage stores invoice documents and returns a reference to them
type FileStorage interface {
	// UploadFile stores content under fileName and returns its public URL or path
	UploadFile(ctx context.Context, content []byte, fileName string) (string, error)
}

// DownloadLinker issues expiring links to documents a FileStorage holds.
// Backends that serve files directly do not implement it.
type DownloadLinker interface {
	DownloadURL(ctx context.Context, location string) (string, time.Time, error)
}

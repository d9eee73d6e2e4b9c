package fsx

import (
	"context"
	"io"
	"strings"
	"time"
)

// FileSystem abstracts object storage so services stay storage-agnostic
type FileSystem interface {
	// Join builds a storage path from segments
	Join(segments ...string) string

	// WriteFile uploads data to the given path
	WriteFile(ctx context.Context, path string, data []byte) error

	// ReadFile downloads the full object at path
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// ReadFileStream opens the object at path for streaming reads
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)

	// DeleteFile removes the object at path
	DeleteFile(ctx context.Context, path string) error

	// PresignedURL mints a time-bounded access URL for the object at path
	PresignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

// JoinPath is the shared path-joining rule for implementations
func JoinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

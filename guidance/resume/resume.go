package resume

import (
	"time"

	"github.com/compasshq/compass/pkg/kernel"
)

// MaxFileSize bounds uploaded resume documents (10MB)
const MaxFileSize = 10 * 1024 * 1024

// UploadRequest carries one resume file destined for the user's storage path
type UploadRequest struct {
	UserID      kernel.UserID
	FileName    string
	ContentType string
	Data        []byte
}

// UploadResponse reports the stored object and its signed access URL
type UploadResponse struct {
	URL        kernel.BucketURL `json:"url"`
	FileName   string           `json:"file_name"`
	FileSize   int              `json:"file_size"`
	UploadedAt time.Time        `json:"uploaded_at"`
}

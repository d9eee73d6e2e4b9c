package resumesrv

import (
	"context"
	"strings"
	"time"

	"github.com/compasshq/compass/guidance/profile"
	"github.com/compasshq/compass/guidance/resume"
	"github.com/compasshq/compass/pkg/errx"
	"github.com/compasshq/compass/pkg/fsx"
	"github.com/compasshq/compass/pkg/kernel"
	"github.com/compasshq/compass/pkg/logx"
	"github.com/gen2brain/go-fitz"
)

// signedURLExpiry keeps the resume link on the profile usable long-term
const signedURLExpiry = 365 * 24 * time.Hour

// placeholderName is the zero-byte object used to provision a missing
// per-user storage location
const placeholderName = ".keep"

// Service uploads resumes to a per-user storage path, provisioning the
// location once when it does not yet exist, and records the signed URL on
// the user's profile.
type Service struct {
	fileSystem  fsx.FileSystem
	profileRepo profile.Repository
}

// NewService creates a new resume upload service
func NewService(fileSystem fsx.FileSystem, profileRepo profile.Repository) *Service {
	return &Service{
		fileSystem:  fileSystem,
		profileRepo: profileRepo,
	}
}

// Upload stores the file under resumes/<userID>/<fileName>, retrying exactly
// once after provisioning when the destination location does not exist, then
// mints a 1-year signed URL and writes it back onto the profile.
func (s *Service) Upload(ctx context.Context, req resume.UploadRequest) (*resume.UploadResponse, error) {
	if req.UserID.IsEmpty() {
		return nil, resume.ErrMissingUserID()
	}
	if len(req.Data) == 0 {
		return nil, resume.ErrEmptyFile()
	}
	if len(req.Data) > resume.MaxFileSize {
		return nil, resume.ErrFileTooLarge().
			WithDetail("file_size", len(req.Data)).
			WithDetail("max_size", resume.MaxFileSize)
	}
	if err := s.validateDocument(req); err != nil {
		return nil, err
	}

	storagePath := s.fileSystem.Join("resumes", req.UserID.String(), req.FileName)

	if err := s.writeWithProvisioning(ctx, req.UserID, storagePath, req.Data); err != nil {
		return nil, err
	}

	signedURL, err := s.fileSystem.PresignedURL(ctx, storagePath, signedURLExpiry)
	if err != nil {
		return nil, errx.Wrap(err, "failed to mint signed resume URL", errx.TypeExternal).
			WithDetail("path", storagePath)
	}

	link := kernel.BucketURL(signedURL)
	if err := s.profileRepo.SaveResumeLink(ctx, req.UserID, link); err != nil {
		// The object stays in place; the upload contract is URL minted AND
		// recorded, so a failed write-back is surfaced.
		return nil, errx.Wrap(err, "failed to record resume link on profile", errx.TypeInternal)
	}

	return &resume.UploadResponse{
		URL:        link,
		FileName:   req.FileName,
		FileSize:   len(req.Data),
		UploadedAt: time.Now(),
	}, nil
}

// writeWithProvisioning performs the direct upload with a single bounded
// provision-and-retry on a "location not found" failure. Any other failure,
// or a second failure, surfaces unmodified.
func (s *Service) writeWithProvisioning(ctx context.Context, userID kernel.UserID, path string, data []byte) error {
	err := s.fileSystem.WriteFile(ctx, path, data)
	if err == nil {
		return nil
	}
	if !isLocationNotFound(err) {
		return resume.ErrUploadFailed().WithCause(err).WithDetail("path", path)
	}

	logx.Infof("storage location missing for user %s, provisioning", userID)
	if provErr := s.provisionLocation(ctx, userID); provErr != nil {
		return resume.ErrProvisioningFailed().WithCause(provErr)
	}

	if err := s.fileSystem.WriteFile(ctx, path, data); err != nil {
		return resume.ErrProvisioningFailed().WithCause(err).WithDetail("path", path)
	}
	return nil
}

// provisionLocation bootstraps the per-user location by writing and deleting
// a zero-byte placeholder
func (s *Service) provisionLocation(ctx context.Context, userID kernel.UserID) error {
	placeholder := s.fileSystem.Join("resumes", userID.String(), placeholderName)

	if err := s.fileSystem.WriteFile(ctx, placeholder, []byte{}); err != nil {
		return err
	}
	if err := s.fileSystem.DeleteFile(ctx, placeholder); err != nil {
		// The placeholder existing is harmless; the upload matters.
		logx.Warnf("failed to remove provisioning placeholder for user %s: %v", userID, err)
	}
	return nil
}

// validateDocument rejects PDF payloads that cannot be opened; other
// document types are passed through for the extraction service to judge.
func (s *Service) validateDocument(req resume.UploadRequest) error {
	if !strings.Contains(strings.ToLower(req.ContentType), "pdf") {
		return nil
	}

	doc, err := fitz.NewFromMemory(req.Data)
	if err != nil {
		return resume.ErrInvalidFile().WithCause(err).WithDetail("content_type", req.ContentType)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return resume.ErrInvalidFile().WithDetail("reason", "document has no pages")
	}
	return nil
}

// isLocationNotFound matches the storage error messages that mean the
// destination location does not exist yet. Providers disagree on exact
// wording, so this is a message sniff by necessity.
func isLocationNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") ||
		strings.Contains(msg, "nosuchbucket") ||
		strings.Contains(msg, "no such bucket")
}

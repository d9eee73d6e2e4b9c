package resume

import (
	"net/http"

	"github.com/compasshq/compass/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("RESUME")

// Error codes
var (
	CodeMissingUserID      = ErrRegistry.Register("MISSING_USER_ID", errx.TypeValidation, http.StatusBadRequest, "User identifier is required")
	CodeEmptyFile          = ErrRegistry.Register("EMPTY_FILE", errx.TypeValidation, http.StatusBadRequest, "Uploaded file is empty")
	CodeFileTooLarge       = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "Uploaded file exceeds the size limit")
	CodeInvalidFile        = ErrRegistry.Register("INVALID_FILE", errx.TypeValidation, http.StatusBadRequest, "Uploaded file is not a readable document")
	CodeUploadFailed       = ErrRegistry.Register("UPLOAD_FAILED", errx.TypeExternal, http.StatusBadGateway, "Resume upload failed")
	CodeProvisioningFailed = ErrRegistry.Register("PROVISIONING_FAILED", errx.TypeExternal, http.StatusBadGateway, "Storage location could not be provisioned")
)

// Helper functions
func ErrMissingUserID() *errx.Error {
	return ErrRegistry.New(CodeMissingUserID)
}

func ErrEmptyFile() *errx.Error {
	return ErrRegistry.New(CodeEmptyFile)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrInvalidFile() *errx.Error {
	return ErrRegistry.New(CodeInvalidFile)
}

func ErrUploadFailed() *errx.Error {
	return ErrRegistry.New(CodeUploadFailed)
}

func ErrProvisioningFailed() *errx.Error {
	return ErrRegistry.New(CodeProvisioningFailed)
}

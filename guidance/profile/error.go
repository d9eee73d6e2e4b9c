package profile

import (
	"net/http"

	"github.com/compasshq/compass/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("PROFILE")

// Error codes
var (
	CodeProfileNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Profile not found")
	CodeMissingUserID   = ErrRegistry.Register("MISSING_USER_ID", errx.TypeValidation, http.StatusBadRequest, "User identifier is required")
)

// Helper functions
func ErrProfileNotFound() *errx.Error {
	return ErrRegistry.New(CodeProfileNotFound)
}

func ErrMissingUserID() *errx.Error {
	return ErrRegistry.New(CodeMissingUserID)
}

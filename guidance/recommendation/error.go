package recommendation

import (
	"net/http"

	"github.com/compasshq/compass/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("RECOMMENDATION")

// Error codes
var (
	CodeMissingUserID        = ErrRegistry.Register("MISSING_USER_ID", errx.TypeValidation, http.StatusBadRequest, "User identifier is required")
	CodeMissingRoleTitle     = ErrRegistry.Register("MISSING_ROLE_TITLE", errx.TypeValidation, http.StatusBadRequest, "Role title is required")
	CodeExtractionFailed     = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeExternal, http.StatusBadGateway, "Resume text extraction failed")
	CodeGenerationFailed     = ErrRegistry.Register("GENERATION_FAILED", errx.TypeExternal, http.StatusBadGateway, "Recommendation generation failed")
	CodeUnparseableResponse  = ErrRegistry.Register("UNPARSEABLE_RESPONSE", errx.TypeExternal, http.StatusBadGateway, "Model response could not be parsed")
	CodePersistenceFailed    = ErrRegistry.Register("PERSISTENCE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to persist recommendations")
	CodeRecommendationsEmpty = ErrRegistry.Register("EMPTY_RESULT", errx.TypeBusiness, http.StatusUnprocessableEntity, "No recommendations produced")
)

// Helper functions
func ErrMissingUserID() *errx.Error {
	return ErrRegistry.New(CodeMissingUserID)
}

func ErrMissingRoleTitle() *errx.Error {
	return ErrRegistry.New(CodeMissingRoleTitle)
}

func ErrExtractionFailed() *errx.Error {
	return ErrRegistry.New(CodeExtractionFailed)
}

func ErrGenerationFailed() *errx.Error {
	return ErrRegistry.New(CodeGenerationFailed)
}

// ErrUnparseableResponse carries (a bounded slice of) the raw model output
// so failed parses stay diagnosable.
func ErrUnparseableResponse(raw string) *errx.Error {
	const maxRaw = 2000
	if len(raw) > maxRaw {
		raw = raw[:maxRaw]
	}
	return ErrRegistry.New(CodeUnparseableResponse).WithDetail("raw", raw)
}

func ErrPersistenceFailed() *errx.Error {
	return ErrRegistry.New(CodePersistenceFailed)
}

func ErrRecommendationsEmpty() *errx.Error {
	return ErrRegistry.New(CodeRecommendationsEmpty)
}

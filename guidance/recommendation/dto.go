package recommendation

import "github.com/compasshq/compass/pkg/kernel"

// GenerateRequest is the pipeline entry-point input
type GenerateRequest struct {
	UserID       kernel.UserID `json:"-"`
	ResumeURL    string        `json:"resume_url,omitempty"`
	ForceRefresh bool          `json:"force_refresh,omitempty"`
}

// GenerateResponse carries the resulting record set; never empty, the
// pipeline falls back to defaults instead.
type GenerateResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// SelectRoleRequest records which recommended role the user picked
type SelectRoleRequest struct {
	RoleTitle string `json:"role_title"`
}

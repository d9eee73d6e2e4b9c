package profile

import (
	"strings"
	"time"

	"github.com/compasshq/compass/pkg/kernel"
)

// Category is one discovery section: user-curated tags plus free text.
// Selection order is insertion order; it is preserved for prompt
// readability but carries no semantic weight.
type Category struct {
	Selected       []string `json:"selected"`
	AdditionalInfo string   `json:"additional_info"`
}

// IsEmpty reports whether the category carries no signal
func (c Category) IsEmpty() bool {
	if strings.TrimSpace(c.AdditionalInfo) != "" {
		return false
	}
	for _, tag := range c.Selected {
		if strings.TrimSpace(tag) != "" {
			return false
		}
	}
	return true
}

// Snapshot is the immutable discovery-data input to one pipeline run
type Snapshot struct {
	Skills    Category  `json:"skills"`
	Interests Category  `json:"interests"`
	Values    Category  `json:"values"`
	Timestamp time.Time `json:"timestamp,omitzero"`

	// ResumeText is merged in by the pipeline after extraction; it is not
	// part of the stored discovery JSON.
	ResumeText string `json:"-"`
}

// IsEmpty reports whether the snapshot has no discovery signal at all
// (resume text is judged separately by the pipeline)
func (s Snapshot) IsEmpty() bool {
	return s.Skills.IsEmpty() && s.Interests.IsEmpty() && s.Values.IsEmpty()
}

// Profile is the persisted per-user record the pipeline reads and writes
type Profile struct {
	UserID       kernel.UserID    `db:"user_id" json:"user_id"`
	Discovery    *Snapshot        `db:"discovery_data" json:"discovery_data,omitempty"`
	ResumeLink   kernel.BucketURL `db:"resume_link" json:"resume_link,omitempty"`
	ResumeText   string           `db:"resume_text" json:"resume_text,omitempty"`
	SelectedRole string           `db:"selected_role" json:"selected_role,omitempty"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

package recommendation

import (
	"time"

	"github.com/compasshq/compass/pkg/kernel"
)

// Recommendation is one career-role suggestion. RoleTitle is the stable key
// later profile writes reference when the user selects a role.
type Recommendation struct {
	ID                      kernel.RecommendationID `db:"id" json:"id,omitempty"`
	UserID                  kernel.UserID           `db:"user_id" json:"-"`
	RoleTitle               string                  `db:"role_title" json:"role_title"`
	Description             string                  `db:"description" json:"description"`
	WhyItFitsProfessionally string                  `db:"why_professional" json:"why_it_fits_professionally"`
	WhyItFitsPersonally     string                  `db:"why_personal" json:"why_it_fits_personally"`
	CreatedAt               time.Time               `db:"created_at" json:"created_at,omitzero"`
}

// Defaults is the fallback set returned whenever personalized generation
// cannot be completed. Read-only, process-wide, never persisted by the
// fallback path and never fed back into the model.
var Defaults = []Recommendation{
	{
		RoleTitle:               "Project Manager",
		Description:             "Plans, coordinates and delivers projects across teams, balancing scope, schedule and budget.",
		WhyItFitsProfessionally: "Project management rewards organization, communication and follow-through, strengths that transfer from almost any background.",
		WhyItFitsPersonally:     "Suits people who enjoy bringing structure to ambiguity and helping a group reach a shared goal.",
	},
	{
		RoleTitle:               "Data Analyst",
		Description:             "Turns raw data into reports and insights that guide business decisions.",
		WhyItFitsProfessionally: "Analytical roles are in demand across industries and build on attention to detail and structured thinking.",
		WhyItFitsPersonally:     "A good match for the curious, people who like finding the story behind the numbers.",
	},
	{
		RoleTitle:               "Customer Success Specialist",
		Description:             "Guides customers through a product, resolving issues and making sure they reach their goals with it.",
		WhyItFitsProfessionally: "Builds durable skills in communication, product knowledge and relationship management.",
		WhyItFitsPersonally:     "Fits people who are energized by helping others and seeing their impact directly.",
	},
}

// DefaultSet returns a fresh copy of Defaults so callers can never mutate
// the shared constants.
func DefaultSet() []Recommendation {
	out := make([]Recommendation, len(Defaults))
	copy(out, Defaults)
	return out
}

package recommendationsrv

import (
	"fmt"
	"strings"

	"github.com/compasshq/compass/guidance/profile"
)

// systemPrompt is the fixed instruction segment. It states the exact output
// contract the response parser enforces; keeping it static and separate from
// user content keeps profile text from blurring the format rules.
const systemPrompt = `You are an expert career counselor performing a career-fit analysis.

Analyze the candidate profile you are given (self-reported skills, interests and values, plus resume text when available) and recommend career roles.

Return EXACTLY 3 role recommendations as a bare JSON array. Each element must be a JSON object with exactly these four string fields and no others:

[
  {
    "role_title": "Name of the role",
    "description": "What the role involves, 2-3 sentences",
    "why_it_fits_professionally": "How the candidate's skills and experience map to the role",
    "why_it_fits_personally": "How the candidate's interests and values map to the role"
  }
]

Rules:
- Output ONLY the JSON array. No prose before or after it.
- No markdown code fences.
- Exactly 3 objects, exactly the four fields above, all values strings.
- Base every recommendation only on the provided profile. Do not invent experience.`

// buildUserContent serializes the snapshot into the content segment.
// Field order is fixed so identical input yields an identical request.
func buildUserContent(snapshot profile.Snapshot) string {
	var b strings.Builder

	b.WriteString("Candidate profile:\n")
	writeCategory(&b, "Skills", snapshot.Skills)
	writeCategory(&b, "Interests", snapshot.Interests)
	writeCategory(&b, "Values", snapshot.Values)

	if strings.TrimSpace(snapshot.ResumeText) != "" {
		b.WriteString("\nResume:\n")
		b.WriteString(snapshot.ResumeText)
		b.WriteString("\n")
	}

	return b.String()
}

func writeCategory(b *strings.Builder, name string, c profile.Category) {
	fmt.Fprintf(b, "\n%s:\n", name)
	if len(c.Selected) > 0 {
		fmt.Fprintf(b, "- Selected: %s\n", strings.Join(c.Selected, ", "))
	}
	if strings.TrimSpace(c.AdditionalInfo) != "" {
		fmt.Fprintf(b, "- Additional notes: %s\n", c.AdditionalInfo)
	}
	if len(c.Selected) == 0 && strings.TrimSpace(c.AdditionalInfo) == "" {
		b.WriteString("- (none provided)\n")
	}
}

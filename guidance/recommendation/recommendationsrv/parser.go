package recommendationsrv

import (
	"encoding/json"
	"strings"

	"github.com/compasshq/compass/guidance/recommendation"
)

// parseRecommendations turns a raw, untrusted completion into typed records.
// The model is instructed to return a bare JSON array, but responses arrive
// wrapped in code fences, padded with prose, or occasionally as a single
// object. Each repair step below is a no-op when not applicable; anything
// still unparseable after all of them fails with the raw text attached.
func parseRecommendations(raw string) ([]recommendation.Recommendation, error) {
	text := strings.TrimSpace(raw)
	text = stripCodeFences(text)
	if span, ok := extractArraySpan(text); ok {
		text = span
	}

	records, err := unmarshalRecords(text)
	if err != nil {
		return nil, recommendation.ErrUnparseableResponse(raw).WithCause(err)
	}

	records = rejectUntitled(records)
	if len(records) == 0 {
		return nil, recommendation.ErrUnparseableResponse(raw).WithDetail("reason", "no records with a role_title")
	}
	return records, nil
}

// stripCodeFences removes a leading ``` marker (with or without a language
// tag) and a trailing ``` marker
func stripCodeFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// drop the language tag, if any: everything up to the first newline
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if !strings.ContainsAny(firstLine, "[{") {
			text = text[idx+1:]
		}
	}

	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// extractArraySpan locates the first balanced array-of-objects span: the
// first '[' whose first non-whitespace interior byte is '{', matched to its
// closing ']' with string literals and escapes respected. Everything outside
// the span is discarded.
func extractArraySpan(text string) (string, bool) {
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		rest := strings.TrimLeft(text[i+1:], " \t\r\n")
		if strings.HasPrefix(rest, "{") {
			start = i
			break
		}
	}
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// unmarshalRecords parses the repaired text strictly. A single bare object
// is accepted and wrapped; anything that is neither array nor object fails.
func unmarshalRecords(text string) ([]recommendation.Recommendation, error) {
	var records []recommendation.Recommendation
	arrErr := json.Unmarshal([]byte(text), &records)
	if arrErr == nil {
		return records, nil
	}

	var single recommendation.Recommendation
	if err := json.Unmarshal([]byte(text), &single); err == nil {
		return []recommendation.Recommendation{single}, nil
	}

	return nil, arrErr
}

// rejectUntitled drops records without a role_title; the title is the stable
// key later profile writes reference, so a record without one is unusable.
func rejectUntitled(records []recommendation.Recommendation) []recommendation.Recommendation {
	kept := records[:0]
	for _, rec := range records {
		if strings.TrimSpace(rec.RoleTitle) != "" {
			kept = append(kept, rec)
		}
	}
	return kept
}

package fields

import (
	"regexp"
	"strings"
)

// nameScanLimit bounds how deep into the document the header heuristic looks.
const nameScanLimit = 10

// Section headers that are never a candidate name line.
var headerKeywords = []string{
	"PROFILE", "SKILLS", "EXPERIENCE", "CONTACT", "EDUCATION", "OBJECTIVE", "SUMMARY",
}

var (
	reLettersOnly = regexp.MustCompile(`^[A-Za-z\s]+$`)
	reWhitespace  = regexp.MustCompile(`\s+`)
)

// extractName picks a candidate name line from the top of the document.
//
// NameHeader inspects the first lines in order, skips blanks and section
// headers, and accepts the first line of only letters and spaces with at most
// four tokens. NameFirstLine just takes the first non-empty line verbatim.
// Both collapse internal whitespace runs to a single space.
func extractName(text string, policy NamePolicy) *string {
	lines := strings.Split(text, "\n")

	if policy == NameFirstLine {
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			name := reWhitespace.ReplaceAllString(line, " ")
			return &name
		}
		return nil
	}

	limit := nameScanLimit
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if line == "" || containsHeaderKeyword(line) {
			continue
		}
		if reLettersOnly.MatchString(line) && len(strings.Fields(line)) <= 4 {
			name := reWhitespace.ReplaceAllString(line, " ")
			return &name
		}
	}
	return nil
}

func containsHeaderKeyword(line string) bool {
	upper := strings.ToUpper(line)
	for _, kw := range headerKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

package fields

import (
	"regexp"
	"strings"
)

var (
	reEmail     = regexp.MustCompile(`[\w.-]+@[\w.-]+\.[A-Za-z]{2,3}`)
	reWordToken = regexp.MustCompile(`[\w.-]+`)
	reDomain    = regexp.MustCompile(`[\w.-]+\.[A-Za-z]{2,3}`)
)

// extractEmail runs the two-tier email heuristic. Tier 1 matches over the text
// with newlines removed, so hard-wrapped addresses still match. Tier 2 handles
// text where OCR or layout extraction inserted spaces around the '@': it takes
// the word token on an '@'-bearing line as the local part and a domain-like
// token on the following line as the domain.
func extractEmail(text string) *string {
	if m := reEmail.FindString(strings.ReplaceAll(text, "\n", "")); m != "" {
		email := strings.ReplaceAll(m, " ", "")
		return &email
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, "@") {
			continue
		}
		local := reWordToken.FindString(line)
		if local == "" || i+1 >= len(lines) {
			continue
		}
		domain := reDomain.FindString(lines[i+1])
		if domain == "" {
			continue
		}
		email := strings.ReplaceAll(local+"@"+domain, " ", "")
		return &email
	}
	return nil
}

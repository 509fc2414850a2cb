package fields

import (
	"regexp"
	"strings"
)

var (
	// Optional leading '+', 1-3 digits, then up to two separator-delimited digit
	// groups with a 7-12 digit tail. The wide tail covers both local and
	// international formats seen on resumes.
	rePhone    = regexp.MustCompile(`\+?\d{1,3}[- ]?\d{1,4}[- ]?\d{7,12}`)
	reNonPhone = regexp.MustCompile(`[^+\d]`)
)

// extractPhone scans every phone-shaped substring and returns the first one the
// policy accepts, stripped down to digits and a leading '+'.
//
// PhoneStrict keeps only two canonical shapes: '+' followed by exactly 12
// digits, or a '0'-prefixed number of exactly 11 digits. Candidates in any
// other shape are rejected and scanning continues.
//
// PhoneLenient accepts the first match unconditionally (separators still
// stripped); used for OCR-derived text where format fidelity is low.
func extractPhone(text string, policy PhonePolicy) *string {
	for _, m := range rePhone.FindAllString(text, -1) {
		clean := reNonPhone.ReplaceAllString(m, "")
		if policy == PhoneLenient {
			return &clean
		}
		digits := strings.TrimPrefix(clean, "+")
		switch {
		case strings.HasPrefix(clean, "+") && len(digits) == 12:
			return &clean
		case strings.HasPrefix(clean, "0") && len(clean) == 11:
			return &clean
		}
	}
	return nil
}

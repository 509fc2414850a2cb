package pipeline

import (
	"regexp"
	"strings"
)

var reNonWord = regexp.MustCompile(`\W+`)

// SanitizeFilename makes a filename safe for reports and export keys:
// surrounding whitespace is stripped and every run of non-word characters
// collapses to a single underscore.
func SanitizeFilename(name string) string {
	return reNonWord.ReplaceAllString(strings.TrimSpace(name), "_")
}

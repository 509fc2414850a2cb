package constants

import "strings"

// Format is the canonical document kind handled by the extraction pipeline.
type Format string

const (
	PDF   Format = "PDF"
	DOCX  Format = "DOCX"
	IMAGE Format = "IMAGE"
	TEXT  Format = "TEXT"
)

// AllowedExtensions holds the default allowed file extensions for resume ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"txt":  {},
	"odt":  {},
	"rtf":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether an extension is in the allowed set.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}

// MapExtToFormat maps a file extension to its Format, or "" when unsupported.
func MapExtToFormat(ext string) Format {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	case "png", "jpg", "jpeg":
		return IMAGE
	case "txt", "odt", "rtf":
		return TEXT
	default:
		return ""
	}
}

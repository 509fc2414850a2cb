// Package fields derives contact fields (name, email, phone) from normalized
// resume text using deterministic heuristics. Extraction is pure: no I/O, and
// identical input text always yields identical records.
package fields

import "log/slog"

// ContactRecord is the three-field output unit per document.
// Nil means the corresponding heuristic found no candidate.
type ContactRecord struct {
	Name       *string
	Email      *string
	Phone      *string
	SourceFile string
}

// Absent reports whether no heuristic matched anything.
func (r ContactRecord) Absent() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil
}

// NamePolicy selects the name heuristic.
type NamePolicy string

const (
	// NameHeader scans the first lines, skipping section headers, and accepts
	// only short letters-and-spaces lines. Fewer false positives on OCR noise.
	NameHeader NamePolicy = "header"
	// NameFirstLine takes the first non-empty line verbatim, whitespace-collapsed.
	// Used when the text came from low-confidence OCR with no identifiable header.
	NameFirstLine NamePolicy = "first-line"
)

// PhonePolicy selects the phone validation shape.
type PhonePolicy string

const (
	// PhoneStrict accepts only the two canonical national shapes:
	// '+'-prefixed with 12 digits, or '0'-prefixed with 11 digits.
	PhoneStrict PhonePolicy = "strict"
	// PhoneLenient accepts the first match unconditionally, separators stripped.
	PhoneLenient PhonePolicy = "lenient"
)

// Policy is the per-field strategy set for one extractor instance.
type Policy struct {
	Name  NamePolicy
	Phone PhonePolicy
}

// DefaultPolicy is the strict policy set used for embedded-text documents.
func DefaultPolicy() Policy {
	return Policy{Name: NameHeader, Phone: PhoneStrict}
}

// LenientPolicy is the policy set used when all text came from OCR.
func LenientPolicy() Policy {
	return Policy{Name: NameFirstLine, Phone: PhoneLenient}
}

// Extractor applies the three field heuristics under a fixed policy.
type Extractor struct {
	policy Policy
	logger *slog.Logger
}

func NewExtractor(policy Policy, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if policy.Name == "" {
		policy.Name = NameHeader
	}
	if policy.Phone == "" {
		policy.Phone = PhoneStrict
	}
	return &Extractor{policy: policy, logger: logger}
}

// Extract derives Name, Email and Phone from text. SourceFile is left for the
// caller to fill. Empty text yields an all-absent record.
func (e *Extractor) Extract(text string) ContactRecord {
	rec := ContactRecord{
		Name:  extractName(text, e.policy.Name),
		Email: extractEmail(text),
		Phone: extractPhone(text, e.policy.Phone),
	}
	e.logger.Debug("fields extracted",
		"name_found", rec.Name != nil,
		"email_found", rec.Email != nil,
		"phone_found", rec.Phone != nil,
	)
	return rec
}

package fields

import "testing"

func strVal(t *testing.T, p *string) string {
	t.Helper()
	if p == nil {
		t.Fatalf("expected a value, got nil")
	}
	return *p
}

func TestExtractEmailSingleToken(t *testing.T) {
	text := "John Smith\nSoftware Engineer\nReach me at john.smith@example.com anytime"
	got := extractEmail(text)
	if strVal(t, got) != "john.smith@example.com" {
		t.Fatalf("extractEmail() = %q", *got)
	}
}

func TestExtractEmailHardWrapped(t *testing.T) {
	// OCR and layout extraction often split an address across lines and add
	// spaces around the '@'.
	text := "John Smith\njohn.doe @\ngmail.com\nCairo, Egypt"
	got := extractEmail(text)
	if strVal(t, got) != "john.doe@gmail.com" {
		t.Fatalf("extractEmail() = %q, want john.doe@gmail.com", *got)
	}
}

func TestExtractEmailWrappedWithoutSpaces(t *testing.T) {
	// With no spaces around the '@', stripping newlines reassembles the
	// address for the single-token tier.
	text := "john.doe\n@\ngmail.com"
	got := extractEmail(text)
	if strVal(t, got) != "john.doe@gmail.com" {
		t.Fatalf("extractEmail() = %q, want john.doe@gmail.com", *got)
	}
}

func TestExtractEmailAbsent(t *testing.T) {
	if got := extractEmail("no contact information here"); got != nil {
		t.Fatalf("extractEmail() = %q, want nil", *got)
	}
	// '@' line with no domain-like token on the next line.
	if got := extractEmail("mail me @\nnothing useful"); got != nil {
		t.Fatalf("extractEmail() = %q, want nil", *got)
	}
}

func TestExtractPhoneStrictShapes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string // "" means absent
	}{
		{"plus prefixed twelve digits", "Phone: +20 101 2345678", "+201012345678"},
		{"plus prefixed compact", "+201012345678", "+201012345678"},
		{"zero prefixed eleven digits", "Mobile: 01012345678", "01012345678"},
		{"ten digits rejected", "Call 0101234567 now", ""},
		{"later candidate accepted", "Fax 0101234567 Mobile 01012345678", "01012345678"},
		{"no digits", "no phone here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractPhone(tt.text, PhoneStrict)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("extractPhone(%q) = %q, want absent", tt.text, *got)
				}
				return
			}
			if strVal(t, got) != tt.want {
				t.Fatalf("extractPhone(%q) = %q, want %q", tt.text, *got, tt.want)
			}
		})
	}
}

func TestExtractPhoneLenient(t *testing.T) {
	// Lenient mode keeps the first match even when it fits neither canonical
	// shape, separators stripped.
	got := extractPhone("Tel: 20-1234-5678901", PhoneLenient)
	if strVal(t, got) != "2012345678901" {
		t.Fatalf("extractPhone() = %q, want 2012345678901", *got)
	}
}

func TestExtractNameSkipsHeaders(t *testing.T) {
	text := "SKILLS\nJohn Smith\nSoftware Engineer"
	got := extractName(text, NameHeader)
	if strVal(t, got) != "John Smith" {
		t.Fatalf("extractName() = %q, want John Smith", *got)
	}
}

func TestExtractNameRules(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"whitespace collapsed", "  John   Q   Smith  \nEngineer 2020", "John Q Smith"},
		{"five tokens rejected", "One Two Three Four Five\nJane Doe", "Jane Doe"},
		{"digits rejected", "J0hn Smith\nJane Doe", "Jane Doe"},
		{"all headers", "PROFILE\nEDUCATION\nContact Details", ""},
		{"beyond scan limit", "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\nJane Doe", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractName(tt.text, NameHeader)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("extractName() = %q, want absent", *got)
				}
				return
			}
			if strVal(t, got) != tt.want {
				t.Fatalf("extractName() = %q, want %q", *got, tt.want)
			}
		})
	}
}

func TestExtractNameFirstLinePolicy(t *testing.T) {
	// The cruder heuristic takes the first non-empty line verbatim, digits
	// and all, whitespace-collapsed.
	text := "\n  J0hn   Sm1th  \nEngineer"
	got := extractName(text, NameFirstLine)
	if strVal(t, got) != "J0hn Sm1th" {
		t.Fatalf("extractName() = %q, want J0hn Sm1th", *got)
	}
}

func TestExtractorDeterministic(t *testing.T) {
	text := "John Smith\nCairo\nEmail: john@example.com\n+201012345678"
	ex := NewExtractor(DefaultPolicy(), nil)

	first := ex.Extract(text)
	second := ex.Extract(text)

	if strVal(t, first.Name) != strVal(t, second.Name) ||
		strVal(t, first.Email) != strVal(t, second.Email) ||
		strVal(t, first.Phone) != strVal(t, second.Phone) {
		t.Fatalf("repeated extraction differed: %+v vs %+v", first, second)
	}
	if *first.Name != "John Smith" || *first.Email != "john@example.com" || *first.Phone != "+201012345678" {
		t.Fatalf("unexpected record: %+v", first)
	}
}

func TestExtractEmptyText(t *testing.T) {
	ex := NewExtractor(DefaultPolicy(), nil)
	rec := ex.Extract("")
	if !rec.Absent() {
		t.Fatalf("expected all-absent record, got %+v", rec)
	}
}

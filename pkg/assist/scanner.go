package assist

import "regexp"

// Scanner is a pre-flight detector for sensitive data in raw input text.
// It only flags; redaction of candidate titles is the extraction service's
// job. Running locally means the UI can warn before (and independent of)
// the network round trip.
type Scanner struct {
	patterns []*regexp.Regexp
}

// NewScanner creates a Scanner with the fixed detector set: payment
// card-like digit sequences, employee ids, salary amounts, and SSN mentions.
func NewScanner() *Scanner {
	return &Scanner{
		patterns: []*regexp.Regexp{
			// four groups of four digits, optionally separated by spaces or hyphens
			regexp.MustCompile(`\d{4}[ -]?\d{4}[ -]?\d{4}[ -]?\d{4}`),
			regexp.MustCompile(`(?i)employee\s+id\W*\d+`),
			regexp.MustCompile(`(?i)salary\W*[$€£]?\s*\d+`),
			regexp.MustCompile(`(?i)\bssn\b|\bsocial\s+security\b`),
		},
	}
}

// Scan reports whether any detector matches the text.
func (s *Scanner) Scan(text string) bool {
	for _, p := range s.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

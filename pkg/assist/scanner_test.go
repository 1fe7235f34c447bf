package assist

import "testing"

// TestScanDetectsSensitivePatterns covers the fixed detector set.
func TestScanDetectsSensitivePatterns(t *testing.T) {
	s := NewScanner()
	cases := []struct {
		text string
		want bool
	}{
		{"card 4532 1234 5678 9012", true},
		{"card 4532-1234-5678-9012", true},
		{"card 4532123456789012", true},
		{"employee id 12345", true},
		{"Employee ID: 9987", true},
		{"salary $85000", true},
		{"salary 85000", true},
		{"ssn 123-45-6789", true},
		{"my Social Security number", true},
		{"buy milk", false},
		{"review Q3 roadmap with the team", false},
		{"call 555-0199 about the meeting", false},
	}
	for _, c := range cases {
		if got := s.Scan(c.text); got != c.want {
			t.Errorf("Scan(%q): want %v, got %v", c.text, c.want, got)
		}
	}
}

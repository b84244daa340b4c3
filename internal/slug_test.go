package internal

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Should lowercase and hyphenate words",
			input:    "Customer Feedback",
			expected: "customer-feedback",
		},
		{
			name:     "Should collapse punctuation runs",
			input:    "Q3 -- Survey! (final)",
			expected: "q3-survey-final",
		},
		{
			name:     "Should trim leading and trailing separators",
			input:    "  spaced out  ",
			expected: "spaced-out",
		},
		{
			name:     "Should keep digits",
			input:    "form 2024",
			expected: "form-2024",
		},
		{
			name:     "Should return empty string for symbols only",
			input:    "!!!",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

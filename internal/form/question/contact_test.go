package question

import (
	"testing"

	"github.com/google/uuid"
)

func TestEmailField_Validate(t *testing.T) {
	ef := NewEmailField(Question{ID: uuid.New(), AnswerType: AnswerTypeEmail})

	tests := []struct {
		name        string
		rawValue    string
		shouldError bool
	}{
		{
			name:        "Should accept a plain address",
			rawValue:    "jane@example.com",
			shouldError: false,
		},
		{
			name:        "Should accept an address with subdomain",
			rawValue:    "jane.doe@mail.example.co.uk",
			shouldError: false,
		},
		{
			name:        "Should accept empty string",
			rawValue:    "",
			shouldError: false,
		},
		{
			name:        "Should reject a value without at sign",
			rawValue:    "jane.example.com",
			shouldError: true,
		},
		{
			name:        "Should reject a value without domain",
			rawValue:    "jane@",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ef.Validate(tt.rawValue)

			if tt.shouldError && err == nil {
				t.Errorf("Expected error but got nil")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestPhoneNumberField_Validate(t *testing.T) {
	pf := NewPhoneNumberField(Question{ID: uuid.New(), AnswerType: AnswerTypePhoneNumber})

	tests := []struct {
		name        string
		rawValue    string
		shouldError bool
	}{
		{
			name:        "Should accept a bare nine-digit number",
			rawValue:    "912345678",
			shouldError: false,
		},
		{
			name:        "Should accept a plus-prefixed number",
			rawValue:    "+886912345678",
			shouldError: false,
		},
		{
			name:        "Should accept a fifteen-digit number",
			rawValue:    "123456789012345",
			shouldError: false,
		},
		{
			name:        "Should accept empty string",
			rawValue:    "",
			shouldError: false,
		},
		{
			name:        "Should reject a number below nine digits",
			rawValue:    "12345678",
			shouldError: true,
		},
		{
			name:        "Should reject letters",
			rawValue:    "91234abcd",
			shouldError: true,
		},
		{
			name:        "Should reject separators",
			rawValue:    "0912-345-678",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pf.Validate(tt.rawValue)

			if tt.shouldError && err == nil {
				t.Errorf("Expected error but got nil")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

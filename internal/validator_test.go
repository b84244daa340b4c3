package internal

import "testing"

func TestPhoneNumberValidation(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{
			name:    "Should accept plain digits",
			value:   "0912345678",
			wantErr: false,
		},
		{
			name:    "Should accept plus and country digit",
			value:   "+19999999999",
			wantErr: false,
		},
		{
			name:    "Should reject too few digits",
			value:   "12345",
			wantErr: true,
		},
		{
			name:    "Should reject letters",
			value:   "+1abc5678901",
			wantErr: true,
		},
		{
			name:    "Should allow empty value",
			value:   "",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, "phone_number")
			if (err != nil) != tt.wantErr {
				t.Errorf("phone_number(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{
			name:      "Valid pretty format",
			format:    "pretty",
			expectErr: false,
		},
		{
			name:      "Valid csv format",
			format:    "csv",
			expectErr: false,
		},
		{
			name:      "Valid json format",
			format:    "json",
			expectErr: false,
		},
		{
			name:      "Valid xlsx format",
			format:    "xlsx",
			expectErr: false,
		},
		{
			name:      "Empty format",
			format:    "",
			expectErr: true,
		},
		{
			name:      "Case sensitive - uppercase",
			format:    "PRETTY",
			expectErr: true,
		},
		{
			name:      "Leading/trailing spaces",
			format:    " csv ",
			expectErr: true,
		},
		{
			name:      "XML format not supported",
			format:    "xml",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.expectErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, expectErr %v", tt.format, err, tt.expectErr)
			}
		})
	}
}

func TestValidateDurationUnit(t *testing.T) {
	tests := []struct {
		name      string
		unit      string
		expectErr bool
	}{
		{name: "Years", unit: "years", expectErr: false},
		{name: "Months", unit: "months", expectErr: false},
		{name: "Singular year", unit: "year", expectErr: true},
		{name: "Empty", unit: "", expectErr: true},
		{name: "Weeks", unit: "weeks", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDurationUnit(tt.unit)
			if (err != nil) != tt.expectErr {
				t.Errorf("ValidateDurationUnit(%q) error = %v, expectErr %v", tt.unit, err, tt.expectErr)
			}
		})
	}
}

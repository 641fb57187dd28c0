package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 format",
			input: "+12125551234",
			want:  "+12125551234",
		},
		{
			name:  "with spaces",
			input: "+1 212 555 1234",
			want:  "+12125551234",
		},
		{
			name:  "with dashes",
			input: "212-555-1234",
			want:  "+12125551234",
		},
		{
			name:  "with parentheses",
			input: "(212) 555-1234",
			want:  "+12125551234",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +12125551234  ",
			want:  "+12125551234",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "national format without country code",
			input: "2125551234",
			want:  "+12125551234",
		},
		{
			name:  "mixed special chars",
			input: " +1-212.555 1234 ",
			want:  "+12125551234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	input := "(212) 555-1234"
	once := NormalizePhone(input)
	twice := NormalizePhone(once)
	if once != twice {
		t.Errorf("NormalizePhone is not idempotent: %q != %q", once, twice)
	}
}

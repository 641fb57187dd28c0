package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple",
			input: "Jane Mechanic",
			want:  "Jane Mechanic",
		},
		{
			name:  "extra inner whitespace",
			input: "Jane    Mechanic",
			want:  "Jane Mechanic",
		},
		{
			name:  "tabs and newlines",
			input: "Jane\t\nMechanic",
			want:  "Jane Mechanic",
		},
		{
			name:  "leading and trailing",
			input: "   Jane Mechanic   ",
			want:  "Jane Mechanic",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: " \t\n ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSpecialty(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "hyphenated",
			input: "Brake-Repair",
			want:  "brake_repair",
		},
		{
			name:  "spaced",
			input: "brake repair",
			want:  "brake_repair",
		},
		{
			name:  "mixed case single word",
			input: "Transmission",
			want:  "transmission",
		},
		{
			name:  "digits stripped",
			input: "diagnostics 2",
			want:  "diagnostics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSpecialty(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeSpecialty(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePlate(t *testing.T) {
	if got := NormalizePlate(" abc 1234 "); got != "ABC1234" {
		t.Errorf("NormalizePlate = %q, want ABC1234", got)
	}
}

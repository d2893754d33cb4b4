package leads

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"06 12 34 56 78", "0612345678"},
		{"0612345678", "0612345678"},
		{" 06\t12 34 56 78 ", "0612345678"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ten digits grouped in pairs", "0123456789", "01 23 45 67 89"},
		{"eleventh digit ignored", "01234567891", "01 23 45 67 89"},
		{"non-digits stripped", "01.23-45 67ab89", "01 23 45 67 89"},
		{"partial input", "01234", "01 23 4"},
		{"single digit", "0", "0"},
		{"empty", "", ""},
		{"no digits", "abc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPhone(tt.in); got != tt.want {
				t.Errorf("FormatPhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Display formatting must never leak into the validated value.
func TestFormatThenValidate(t *testing.T) {
	display := FormatPhone("0123456789")
	if display != "01 23 45 67 89" {
		t.Fatalf("unexpected display value %q", display)
	}
	form := validForm()
	form.Phone = display
	if err := CurrentPolicy().Validate(form); err != nil {
		t.Fatalf("formatted phone should validate, got %v", err)
	}
}

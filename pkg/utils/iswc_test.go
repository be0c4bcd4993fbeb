package utils

import "testing"

func TestNormalizeISWC(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"T-034.524.680-1", "T0345246801"},
		{"t0345246801", "T0345246801"},
		{" T 034 524 680 1 ", "T0345246801"},
		{"", ""},
		{"--..", ""},
	}

	for _, tt := range tests {
		if got := NormalizeISWC(tt.in); got != tt.want {
			t.Errorf("NormalizeISWC(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSameISWC(t *testing.T) {
	if !SameISWC("T-123456789-0", "t1234567890") {
		t.Error("Expected differently formatted codes to match")
	}
	if SameISWC("", "") {
		t.Error("Empty codes must never match")
	}
	if SameISWC("T-123456789-0", "T-123456789-1") {
		t.Error("Different check digits must not match")
	}
}

func TestValidISWC(t *testing.T) {
	tests := []struct {
		iswc string
		want bool
	}{
		{"T-034.524.680-1", true},
		{"T-123.456.789-4", true},
		{"T-123456789-0", false}, // wrong check digit
		{"T-000000001-0", true},
		{"X-034.524.680-1", false},
		{"T-034.524.680", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.iswc, func(t *testing.T) {
			if got := ValidISWC(tt.iswc); got != tt.want {
				t.Errorf("ValidISWC(%q) = %v, want %v", tt.iswc, got, tt.want)
			}
		})
	}
}

func TestFormatISWC(t *testing.T) {
	got, err := FormatISWC("t0345246801")
	if err != nil {
		t.Fatalf("FormatISWC failed: %v", err)
	}
	if got != "T-034.524.680-1" {
		t.Errorf("Expected T-034.524.680-1, got %s", got)
	}

	if _, err := FormatISWC("T-12"); err == nil {
		t.Error("Expected error for short code")
	}
}

package domain

import "testing"

func TestParseCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Cents
		wantErr bool
	}{
		{"0", 0, false},
		{"50", 5000, false},
		{"50.5", 5050, false},
		{"3130.00", 313000, false},
		{"0.005", 1, false},
		{"0.004", 0, false},
		{" 12.34 ", 1234, false},
		{"", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
		{"1.x", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCents(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseCents(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestCentsString(t *testing.T) {
	t.Parallel()

	if got := Cents(313000).String(); got != "3130.00" {
		t.Fatalf("expected 3130.00, got %s", got)
	}
	if got := Cents(5).String(); got != "0.05" {
		t.Fatalf("expected 0.05, got %s", got)
	}
	if got := Cents(0).String(); got != "0.00" {
		t.Fatalf("expected 0.00, got %s", got)
	}
}

func TestSupportedCurrency(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"MXN", "USD", "EUR", "CAD"} {
		if !SupportedCurrency(code) {
			t.Fatalf("expected %s to be supported", code)
		}
	}
	if SupportedCurrency("JPY") {
		t.Fatalf("expected JPY to be unsupported")
	}
	if SupportedCurrency("mxn") {
		t.Fatalf("expected lowercase code to be unsupported")
	}
}

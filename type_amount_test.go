package reconcile

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
		err   bool
	}{
		{"-791.99", "-791.99", false},
		{"26.4", "26.40", false},
		{"0", "0.00", false},
		{"1500", "1500.00", false},
		{"1,500.00", "", true},
		{"twelve", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("ParseAmount(%q) error = %v, want error %v", tt.input, err, tt.err)
			}
			if err == nil && got.String() != tt.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestAmountSigns(t *testing.T) {
	a := A(-26.40)
	if !a.IsNegative() || a.IsPositive() || a.IsZero() {
		t.Errorf("A(-26.40): negative=%v positive=%v zero=%v", a.IsNegative(), a.IsPositive(), a.IsZero())
	}
	if got := a.Neg(); !got.Equal(A(26.40)) {
		t.Errorf("Neg() = %s, want 26.40", got)
	}
	if got := a.Abs(); !got.Equal(A(26.40)) {
		t.Errorf("Abs() = %s, want 26.40", got)
	}
	if !A(0).IsZero() {
		t.Error("A(0) is not zero")
	}
}

func TestAmountEqualAcrossRepresentations(t *testing.T) {
	// 26.40 and 26.4 are the same value whatever the construction path.
	if !A(26.40).Equal(MustParseAmount("26.4")) {
		t.Error("A(26.40) != ParseAmount(\"26.4\")")
	}
	if !A(1500).Equal(MustParseAmount("1500.00")) {
		t.Error("A(1500) != ParseAmount(\"1500.00\")")
	}
}

func TestAmountCents(t *testing.T) {
	if got := MustParseAmount("12.345").Cents().String(); got != "12.35" {
		t.Errorf("Cents() = %s, want 12.35", got)
	}
	if got := MustParseAmount("12.344").Cents().String(); got != "12.34" {
		t.Errorf("Cents() = %s, want 12.34", got)
	}
}

func TestAmountDisplay(t *testing.T) {
	tests := []struct {
		amount   Amount
		currency string
		want     string
	}{
		{A(-26.40), "USD", "-$26.40"},
		{A(1500), "USD", "$1,500.00"},
		{A(0.05), "USD", "$0.05"},
		// Sub-cent values round the way Cents() does, not truncate.
		{MustParseAmount("12.345"), "USD", "$12.35"},
		{MustParseAmount("-12.345"), "USD", "-$12.35"},
		{MustParseAmount("12.344"), "USD", "$12.34"},
	}
	for _, tt := range tests {
		if got := tt.amount.Display(tt.currency); got != tt.want {
			t.Errorf("Display(%s, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

package util

import "testing"

func TestCollapseSpaces(t *testing.T) {
	cases := map[string]string{
		"  Linda   Powers ":       "Linda Powers",
		"Middleton Nova\tScotia":  "Middleton Nova Scotia",
		"":                        "",
		"single":                  "single",
		"a\n b":                   "a b",
	}
	for input, want := range cases {
		if got := CollapseSpaces(input); got != want {
			t.Errorf("CollapseSpaces(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"CAD86.17": 86.17,
		"$0.00":    0,
		"":         0,
		"abc":      0,
		"-12.5":    -12.5,
		"1,234.50": 1234.50,
	}
	for input, want := range cases {
		if got := ParseAmount(input); got != want {
			t.Errorf("ParseAmount(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("buyer@TEST@example.com", "test@") {
		t.Error("expected case-insensitive substring match")
	}
	if ContainsFold("customer@example.com", "test@") {
		t.Error("unexpected match")
	}
}

package normalize

import (
	"math"
	"testing"
)

func TestToNumber(t *testing.T) {
	cases := []struct {
		name     string
		in       any
		expected *float64
	}{
		{"float", float64(12.5), ptr(12.5)},
		{"numeric string", "98.7", ptr(98.7)},
		{"padded string", " 42 ", ptr(42.0)},
		{"empty string", "", nil},
		{"garbage string", "abc", nil},
		{"nan", math.NaN(), nil},
		{"inf", math.Inf(1), nil},
		{"nil", nil, nil},
		{"bool", true, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := toNumber(tc.in)
			if (got == nil) != (tc.expected == nil) {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
			if got != nil && *got != *tc.expected {
				t.Fatalf("expected %v, got %v", *tc.expected, *got)
			}
		})
	}
}

func TestToStringValue(t *testing.T) {
	if got := toStringValue("  hello "); got != "hello" {
		t.Fatalf("expected trimmed string, got %q", got)
	}
	if got := toStringValue(float64(7)); got != "7" {
		t.Fatalf("expected formatted number, got %q", got)
	}
	if got := toStringValue(math.NaN()); got != "" {
		t.Fatalf("expected empty for NaN, got %q", got)
	}
	if got := toStringValue(nil); got != "" {
		t.Fatalf("expected empty for nil, got %q", got)
	}
}

func TestToBool(t *testing.T) {
	if !toBool(true, false) {
		t.Fatal("expected true passthrough")
	}
	if toBool("false", true) {
		t.Fatal("expected string false")
	}
	if !toBool(nil, true) {
		t.Fatal("expected default for nil")
	}
	if toBool(float64(0), true) {
		t.Fatal("expected numeric 0 to be false")
	}
}

func TestFieldAliasOrder(t *testing.T) {
	obj, err := ParseObject([]byte(`{"homeTeam":"Legacy","home_team":"Dynasty"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Canonical key wins over the camelCase alias regardless of document order.
	if got := toStringValue(field(obj, "home_team", "homeTeam")); got != "Dynasty" {
		t.Fatalf("expected canonical alias preferred, got %q", got)
	}

	obj, err = ParseObject([]byte(`{"homeTeam":"Legacy","home_team":null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Null canonical values fall through to the next alias.
	if got := toStringValue(field(obj, "home_team", "homeTeam")); got != "Legacy" {
		t.Fatalf("expected null to fall through, got %q", got)
	}
}

func ptr(f float64) *float64 { return &f }

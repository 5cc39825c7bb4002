package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestDurationEnvOrDefault(t *testing.T) {
	t.Setenv("DUR_TEST", "")
	if got := durationEnvOrDefault("DUR_TEST", time.Minute); got != time.Minute {
		t.Fatalf("expected default when unset, got %v", got)
	}

	t.Setenv("DUR_TEST", "250ms")
	if got := durationEnvOrDefault("DUR_TEST", time.Minute); got != 250*time.Millisecond {
		t.Fatalf("expected parsed duration, got %v", got)
	}

	t.Setenv("DUR_TEST", "garbage")
	if got := durationEnvOrDefault("DUR_TEST", time.Minute); got != time.Minute {
		t.Fatalf("expected default on parse failure, got %v", got)
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "7")
	if got := intEnvOrDefault("INT_TEST", 3); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}

	t.Setenv("INT_TEST", "-1")
	if got := intEnvOrDefault("INT_TEST", 3); got != 3 {
		t.Fatalf("expected default for non-positive, got %d", got)
	}
}

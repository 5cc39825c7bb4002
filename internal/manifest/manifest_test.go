package manifest

import "testing"

func TestResolvePath(t *testing.T) {
	cases := []struct {
		name     string
		template string
		params   map[string]string
		expected string
	}{
		{
			name:     "substitutes single placeholder",
			template: "data/{year}.json",
			params:   map[string]string{"year": "2023"},
			expected: "data/2023.json",
		},
		{
			name:     "substitutes multiple placeholders",
			template: "data/{season}/{week}.json",
			params:   map[string]string{"season": "2023", "week": "7"},
			expected: "data/2023/7.json",
		},
		{
			name:     "empty template resolves empty",
			template: "",
			params:   map[string]string{"year": "2023"},
			expected: "",
		},
		{
			name:     "unmatched placeholders survive",
			template: "data/{year}.json",
			params:   nil,
			expected: "data/{year}.json",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolvePath(tc.template, tc.params); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestVersionToken(t *testing.T) {
	m := &Manifest{GeneratedAt: "2024-09-01T00:00:00Z", SchemaVersion: "2"}
	if got := m.VersionToken(); got != "2024-09-01T00:00:00Z" {
		t.Fatalf("expected generatedAt preferred, got %q", got)
	}

	m = &Manifest{SchemaVersion: "2"}
	if got := m.VersionToken(); got != "2" {
		t.Fatalf("expected schemaVersion fallback, got %q", got)
	}

	var nilManifest *Manifest
	if got := nilManifest.VersionToken(); got != "" {
		t.Fatalf("expected empty token for nil manifest, got %q", got)
	}
}

func TestHasYear(t *testing.T) {
	m := &Manifest{Years: []int{2021, 2022, 2023}}
	if !m.HasYear(2022) {
		t.Fatal("expected 2022 present")
	}
	if m.HasYear(1999) {
		t.Fatal("expected 1999 absent")
	}
}

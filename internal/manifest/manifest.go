package manifest

import "strings"

// Manifest is the root document listing available seasons and the path
// templates used to resolve every other resource. Immutable once fetched.
type Manifest struct {
	Years         []int             `json:"years"`
	SchemaVersion string            `json:"schemaVersion,omitempty"`
	GeneratedAt   string            `json:"generatedAt,omitempty"`
	Paths         map[string]string `json:"paths,omitempty"`
}

// VersionToken returns the cache-busting token for this manifest revision.
func (m *Manifest) VersionToken() string {
	if m == nil {
		return ""
	}
	if m.GeneratedAt != "" {
		return m.GeneratedAt
	}
	return m.SchemaVersion
}

// HasYear reports whether the manifest lists the given season.
func (m *Manifest) HasYear(year int) bool {
	if m == nil {
		return false
	}
	for _, y := range m.Years {
		if y == year {
			return true
		}
	}
	return false
}

// ResolvePath substitutes {name} placeholders in a path template. An empty
// template resolves to "".
func ResolvePath(template string, params map[string]string) string {
	if template == "" {
		return ""
	}
	resolved := template
	for name, value := range params {
		resolved = strings.ReplaceAll(resolved, "{"+name+"}", value)
	}
	return resolved
}

// Package schema structurally validates normalized season data. Validation
// is a diagnostics contract only: it never fails, never mutates, and nothing
// in-process consumes its output besides the log. A warning here means the
// upstream generator regressed, not that this service is broken.
package schema

import (
	"fmt"
	"log/slog"

	"league-history-service/internal/domain"
	"league-history-service/internal/logging"
	"league-history-service/internal/normalize"
)

// Keys every season document is expected to carry at the root.
var requiredRawKeys = []string{"year", "teams", "matchups"}

// Config sets the season thresholds for expected-non-empty checks.
type Config struct {
	// LineupFloorYear is the first season with per-week lineup exports;
	// earlier seasons structurally lack them.
	LineupFloorYear int
}

// Warning describes one non-fatal structural finding.
type Warning struct {
	Field  string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Reason)
}

// Validate compares the raw document against the normalized record and logs
// structured warnings for missing required keys and unexpectedly empty
// canonical lists. The returned warnings exist for tests and tooling.
func Validate(doc *normalize.Object, rec *domain.SeasonRecord, cfg Config, logger *slog.Logger) []Warning {
	var warnings []Warning

	for _, key := range requiredRawKeys {
		if !doc.Has(key) {
			warnings = append(warnings, Warning{Field: key, Reason: "required key absent from raw document"})
		}
	}

	if len(rec.Teams) == 0 {
		warnings = append(warnings, Warning{Field: "teams", Reason: "normalized to empty list"})
	}
	if len(rec.Matchups) == 0 {
		warnings = append(warnings, Warning{Field: "matchups", Reason: "normalized to empty list"})
	}
	if cfg.LineupFloorYear > 0 && rec.Year >= cfg.LineupFloorYear && len(rec.Lineups) == 0 {
		warnings = append(warnings, Warning{
			Field:  "lineups",
			Reason: fmt.Sprintf("normalized to empty list for season %d (expected from %d on)", rec.Year, cfg.LineupFloorYear),
		})
	}

	for _, w := range warnings {
		logging.Warn(logger, "season document failed structural check",
			logging.FieldYear, rec.Year,
			"field", w.Field,
			"reason", w.Reason,
		)
	}
	return warnings
}

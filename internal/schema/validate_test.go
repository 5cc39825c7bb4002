package schema

import (
	"testing"

	"league-history-service/internal/normalize"
)

func validate(t *testing.T, raw string, cfg Config) []Warning {
	t.Helper()
	doc, err := normalize.ParseObject([]byte(raw))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return Validate(doc, normalize.Season(doc), cfg, nil)
}

func hasWarning(warnings []Warning, field string) bool {
	for _, w := range warnings {
		if w.Field == field {
			return true
		}
	}
	return false
}

func TestValidateCleanDocument(t *testing.T) {
	warnings := validate(t, `{
		"year": 2023,
		"teams": [{"team_name": "Dynasty"}],
		"matchups": [{"week": 1, "home_team": "Dynasty", "away_team": "Legacy"}],
		"lineups": [{"week": 1, "team": "Dynasty", "player": "John Doe", "points": 10}]
	}`, Config{LineupFloorYear: 2020})

	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestValidateMissingRequiredRawKey(t *testing.T) {
	warnings := validate(t, `{
		"year": 2023,
		"teams": [{"team_name": "Dynasty"}]
	}`, Config{})

	if !hasWarning(warnings, "matchups") {
		t.Fatalf("expected matchups warning, got %v", warnings)
	}
}

func TestValidateLineupsExpectedFromFloorYear(t *testing.T) {
	recent := `{
		"year": 2022,
		"teams": [{"team_name": "Dynasty"}],
		"matchups": [{"week": 1, "home_team": "Dynasty", "away_team": "Legacy"}]
	}`

	warnings := validate(t, recent, Config{LineupFloorYear: 2020})
	if !hasWarning(warnings, "lineups") {
		t.Fatalf("expected lineups warning for 2022, got %v", warnings)
	}
}

func TestValidateLineupsNotExpectedBeforeFloorYear(t *testing.T) {
	old := `{
		"year": 2015,
		"teams": [{"team_name": "Dynasty"}],
		"matchups": [{"week": 1, "home_team": "Dynasty", "away_team": "Legacy"}]
	}`

	warnings := validate(t, old, Config{LineupFloorYear: 2020})
	if hasWarning(warnings, "lineups") {
		t.Fatalf("pre-floor seasons must not warn on lineups, got %v", warnings)
	}
}

func TestValidateNeverMutatesRecord(t *testing.T) {
	doc, err := normalize.ParseObject([]byte(`{"year": 2023}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	rec := normalize.Season(doc)
	before := *rec

	Validate(doc, rec, Config{LineupFloorYear: 2020}, nil)

	if rec.Year != before.Year || len(rec.Teams) != len(before.Teams) {
		t.Fatal("validator must not alter the record")
	}
}

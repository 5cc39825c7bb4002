package normalize

import (
	"reflect"
	"testing"

	"league-history-service/internal/domain"
)

const arraySeasonDoc = `{
	"year": 2023,
	"schemaVersion": "3",
	"teams": [
		{"team_id": "1", "team_name": "Dynasty", "owner": "Pat", "record": "10-4", "points_for": 1500.5, "points_against": 1300.25, "regular_season_rank": 1, "final_rank": 2},
		{"team_id": "2", "team_name": "Legacy", "owners": [{"firstName": "A", "lastName": "B"}, {"firstName": "C", "lastName": "D"}], "record": "9-5"}
	],
	"matchups": [
		{"week": 1, "home_team": "Dynasty", "home_score": 101.5, "away_team": "Legacy", "away_score": 99.25},
		{"week": 2, "homeTeam": "Legacy", "homeScore": "110.0", "awayTeam": "Dynasty", "awayScore": null},
		{"week": 3, "home_score": 50, "away_score": 60}
	],
	"transactions": [
		{"date": "2023-10-01", "entries": [{"type": "add", "team": "Dynasty", "player": "John Doe", "faab": 12}]},
		{"date": "2023-10-08", "type": "drop", "team": "Legacy", "player": "Sam Roe"}
	],
	"draft": [
		{"round": 1, "overall": 3, "team": "Dynasty", "player": "John Doe", "player_nfl": "KC", "keeper": false}
	],
	"lineups": [
		{"week": 1, "team": "Dynasty", "player": "John Doe", "points": 22.5},
		{"week": 2, "team": "Dynasty", "player": "John Doe", "started": false, "points": 99}
	],
	"trade_evals": {"t1": {"score": 1}},
	"supplemental": {"player_index": {"john doe": "p1"}}
}`

func parseSeason(t *testing.T, raw string) *domain.SeasonRecord {
	t.Helper()
	obj, err := ParseObject([]byte(raw))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return Season(obj)
}

func TestSeasonCanonicalFields(t *testing.T) {
	rec := parseSeason(t, arraySeasonDoc)

	if rec.Year != 2023 {
		t.Fatalf("unexpected year %d", rec.Year)
	}
	if rec.SchemaVersion != "3" {
		t.Fatalf("expected stamped schema version 3, got %q", rec.SchemaVersion)
	}
	if len(rec.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(rec.Teams))
	}

	dynasty := rec.Teams[0]
	if dynasty.Owner != "Pat" || dynasty.PointsFor != 1500.5 {
		t.Fatalf("unexpected team %+v", dynasty)
	}
	if dynasty.FinalRank == nil || *dynasty.FinalRank != 2 {
		t.Fatalf("unexpected final rank %v", dynasty.FinalRank)
	}
}

func TestSeasonOwnerFallbackJoinsOwnerList(t *testing.T) {
	rec := parseSeason(t, arraySeasonDoc)

	legacy := rec.Teams[1]
	if legacy.Owner != "A B, C D" {
		t.Fatalf("expected comma-joined owners, got %q", legacy.Owner)
	}
	if legacy.RegularSeasonRank != nil {
		t.Fatalf("expected nil rank when absent, got %v", *legacy.RegularSeasonRank)
	}
}

func TestSeasonMatchupNormalization(t *testing.T) {
	rec := parseSeason(t, arraySeasonDoc)

	// The week-3 matchup has no team references on either side and is dropped.
	if len(rec.Matchups) != 2 {
		t.Fatalf("expected 2 matchups, got %d", len(rec.Matchups))
	}

	week2 := rec.Matchups[1]
	if week2.HomeTeam != "Legacy" || week2.AwayTeam != "Dynasty" {
		t.Fatalf("camelCase aliases not resolved: %+v", week2)
	}
	if week2.HomeScore == nil || *week2.HomeScore != 110.0 {
		t.Fatalf("expected string score coerced to 110, got %v", week2.HomeScore)
	}
	if week2.AwayScore != nil {
		t.Fatalf("expected null score to stay nil, got %v", *week2.AwayScore)
	}
}

func TestSeasonFlatTransactionBecomesSingleEntry(t *testing.T) {
	rec := parseSeason(t, arraySeasonDoc)

	if len(rec.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(rec.Transactions))
	}
	flat := rec.Transactions[1]
	if len(flat.Entries) != 1 || flat.Entries[0].Type != "drop" || flat.Entries[0].Player != "Sam Roe" {
		t.Fatalf("unexpected flattened transaction %+v", flat)
	}
}

func TestSeasonLineupStartedDefaultsTrue(t *testing.T) {
	rec := parseSeason(t, arraySeasonDoc)

	if len(rec.Lineups) != 2 {
		t.Fatalf("expected 2 lineup rows, got %d", len(rec.Lineups))
	}
	if !rec.Lineups[0].Started {
		t.Fatal("expected absent started flag to normalize true")
	}
	if rec.Lineups[1].Started {
		t.Fatal("expected explicit false preserved")
	}
}

func TestSeasonSupplementalMergePrefersNested(t *testing.T) {
	rec := parseSeason(t, arraySeasonDoc)

	if rec.Supplemental == nil {
		t.Fatal("expected supplemental populated")
	}
	// Root-level legacy key merged in.
	if _, ok := rec.Supplemental["trade_evals"]; !ok {
		t.Fatal("expected legacy trade_evals merged")
	}
	// Nested value present.
	idx, ok := rec.Supplemental["player_index"].(map[string]any)
	if !ok || idx["john doe"] != "p1" {
		t.Fatalf("unexpected player_index %v", rec.Supplemental["player_index"])
	}
}

func TestSeasonSupplementalNestedWinsOverRoot(t *testing.T) {
	rec := parseSeason(t, `{
		"year": 2022,
		"player_index": {"legacy": true},
		"supplemental": {"player_index": {"nested": true}}
	}`)

	idx, ok := rec.Supplemental["player_index"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected player_index %v", rec.Supplemental["player_index"])
	}
	if idx["nested"] != true {
		t.Fatal("expected nested value to win over root legacy value")
	}
}

func TestSeasonIdempotent(t *testing.T) {
	first := parseSeason(t, arraySeasonDoc)
	second := parseSeason(t, arraySeasonDoc)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected structurally equal records from repeated normalization")
	}
}

func TestSeasonShapeToleranceMapEncoding(t *testing.T) {
	arrayRec := parseSeason(t, `{
		"year": 2021,
		"teams": [{"team_name": "Dynasty"}, {"team_name": "Legacy"}]
	}`)
	mapRec := parseSeason(t, `{
		"year": 2021,
		"teams": {"a": {"team_name": "Dynasty"}, "b": {"team_name": "Legacy"}}
	}`)

	if len(mapRec.Teams) != 2 {
		t.Fatalf("expected 2 teams from map encoding, got %d", len(mapRec.Teams))
	}
	for i := range arrayRec.Teams {
		if arrayRec.Teams[i].TeamName != mapRec.Teams[i].TeamName {
			t.Fatalf("encodings disagree at %d: %q vs %q", i, arrayRec.Teams[i].TeamName, mapRec.Teams[i].TeamName)
		}
	}
}

func TestSeasonSyntheticTeamNameFromMapKey(t *testing.T) {
	rec := parseSeason(t, `{
		"year": 2015,
		"teams": {"3": {"owner": "Quinn"}}
	}`)

	if len(rec.Teams) != 1 {
		t.Fatalf("expected 1 team, got %d", len(rec.Teams))
	}
	if rec.Teams[0].TeamName != "team_3" {
		t.Fatalf("expected synthetic name team_3, got %q", rec.Teams[0].TeamName)
	}
	if rec.Teams[0].TeamID != "3" {
		t.Fatalf("expected map key as id fallback, got %q", rec.Teams[0].TeamID)
	}
}

func TestSeasonStampsDefaultSchemaVersion(t *testing.T) {
	rec := parseSeason(t, `{"year": 2019}`)
	if rec.SchemaVersion != domain.SchemaVersion {
		t.Fatalf("expected library default %q, got %q", domain.SchemaVersion, rec.SchemaVersion)
	}
}

package normalize

import (
	"strings"

	"league-history-service/internal/domain"
)

// Root-level keys that historically held supplemental documents before the
// generator learned to nest them under "supplemental".
var legacySupplementalKeys = []string{
	"player_index",
	"current_roster",
	"trade_evals",
	"trades",
	"player_metrics",
	"keepers",
}

// Season converts a raw season document into the canonical record. It is
// pure and deterministic: normalizing the same document twice yields
// structurally equal records.
func Season(doc *Object) *domain.SeasonRecord {
	rec := &domain.SeasonRecord{
		Year:          intOrZero(field(doc, "year", "season")),
		SchemaVersion: schemaVersion(doc),
		Teams:         teams(field(doc, "teams", "franchises")),
		Matchups:      matchups(field(doc, "matchups", "games", "schedule")),
		Transactions:  transactions(field(doc, "transactions", "moves")),
		Draft:         draft(field(doc, "draft", "draft_picks", "picks")),
		Lineups:       lineups(field(doc, "lineups", "rosters_weekly")),
		Awards:        awards(field(doc, "awards", "superlatives")),
		Supplemental:  supplemental(doc),
	}
	return rec
}

func schemaVersion(doc *Object) string {
	if v := toStringValue(field(doc, "schemaVersion", "schema_version")); v != "" {
		return v
	}
	return domain.SchemaVersion
}

func teams(v any) []domain.Team {
	var out []domain.Team
	for _, entry := range asList(v) {
		obj, ok := entry.Value.(*Object)
		if !ok {
			continue
		}

		name := toStringValue(field(obj, "team_name", "teamName", "name"))
		if name == "" && entry.Key != "" {
			name = "team_" + entry.Key
		}
		if name == "" {
			continue
		}

		id := toStringValue(field(obj, "team_id", "teamId", "id"))
		if id == "" {
			id = entry.Key
		}

		out = append(out, domain.Team{
			TeamID:            id,
			TeamName:          name,
			Owner:             owner(obj),
			Record:            toStringValue(field(obj, "record", "overall_record")),
			PointsFor:         numberOrZero(field(obj, "points_for", "pointsFor", "pf")),
			PointsAgainst:     numberOrZero(field(obj, "points_against", "pointsAgainst", "pa")),
			RegularSeasonRank: toInteger(field(obj, "regular_season_rank", "regularSeasonRank", "rank")),
			FinalRank:         toInteger(field(obj, "final_rank", "finalRank", "finish")),
		})
	}
	return out
}

// owner resolves the display owner. Teams without a direct owner/manager
// field fall back to the owners[] list, comma-joined in array order.
func owner(obj *Object) string {
	if direct := toStringValue(field(obj, "owner", "manager")); direct != "" {
		return direct
	}

	var names []string
	for _, entry := range asList(field(obj, "owners", "managers")) {
		if name := ownerName(entry.Value); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

func ownerName(v any) string {
	if s := toStringValue(v); s != "" {
		return s
	}
	obj, ok := v.(*Object)
	if !ok {
		return ""
	}
	if name := toStringValue(field(obj, "name", "display_name", "displayName")); name != "" {
		return name
	}
	first := toStringValue(field(obj, "first_name", "firstName"))
	last := toStringValue(field(obj, "last_name", "lastName"))
	return strings.TrimSpace(first + " " + last)
}

func matchups(v any) []domain.Matchup {
	var out []domain.Matchup
	for _, entry := range asList(v) {
		obj, ok := entry.Value.(*Object)
		if !ok {
			continue
		}

		home := toStringValue(field(obj, "home_team", "homeTeam", "home"))
		away := toStringValue(field(obj, "away_team", "awayTeam", "away"))
		if home == "" && away == "" {
			// A matchup with no team references is noise from a partial
			// export; dropping it beats passing it through.
			continue
		}

		out = append(out, domain.Matchup{
			Week:      intOrZero(field(obj, "week", "week_number", "period")),
			HomeTeam:  home,
			HomeScore: toNumber(field(obj, "home_score", "homeScore")),
			AwayTeam:  away,
			AwayScore: toNumber(field(obj, "away_score", "awayScore")),
			IsPlayoff: toBool(field(obj, "is_playoff", "isPlayoff", "playoff", "postseason"), false),
		})
	}
	return out
}

func transactions(v any) []domain.Transaction {
	var out []domain.Transaction
	for _, entry := range asList(v) {
		obj, ok := entry.Value.(*Object)
		if !ok {
			continue
		}

		txn := domain.Transaction{
			ID:   toStringValue(field(obj, "id", "transaction_id")),
			Date: toStringValue(field(obj, "date", "timestamp")),
		}
		for _, e := range asList(field(obj, "entries", "items", "moves")) {
			if te, ok := transactionEntry(e.Value); ok {
				txn.Entries = append(txn.Entries, te)
			}
		}
		if len(txn.Entries) == 0 {
			// Oldest exports flatten single-entry transactions.
			if te, ok := transactionEntry(obj); ok {
				txn.Entries = append(txn.Entries, te)
			}
		}
		out = append(out, txn)
	}
	return out
}

func transactionEntry(v any) (domain.TransactionEntry, bool) {
	obj, ok := v.(*Object)
	if !ok {
		return domain.TransactionEntry{}, false
	}
	te := domain.TransactionEntry{
		Type:   toStringValue(field(obj, "type", "action")),
		Team:   toStringValue(field(obj, "team", "team_name", "franchise")),
		Player: toStringValue(field(obj, "player", "player_name")),
		FAAB:   toNumber(field(obj, "faab", "bid")),
	}
	if te.Type == "" && te.Player == "" {
		return domain.TransactionEntry{}, false
	}
	return te, true
}

func draft(v any) []domain.DraftPick {
	var out []domain.DraftPick
	for _, entry := range asList(v) {
		obj, ok := entry.Value.(*Object)
		if !ok {
			continue
		}
		player := toStringValue(field(obj, "player", "player_name"))
		if player == "" {
			continue
		}
		out = append(out, domain.DraftPick{
			Round:     intOrZero(field(obj, "round")),
			Overall:   intOrZero(field(obj, "overall", "overall_pick", "pick_overall", "pick")),
			Team:      toStringValue(field(obj, "team", "team_name")),
			Player:    player,
			PlayerNFL: toStringValue(field(obj, "player_nfl", "nfl_team", "pro_team")),
			Keeper:    toBool(field(obj, "keeper", "is_keeper"), false),
		})
	}
	return out
}

func lineups(v any) []domain.Lineup {
	var out []domain.Lineup
	for _, entry := range asList(v) {
		obj, ok := entry.Value.(*Object)
		if !ok {
			continue
		}
		player := toStringValue(field(obj, "player", "player_name"))
		if player == "" {
			continue
		}
		out = append(out, domain.Lineup{
			Week:   intOrZero(field(obj, "week", "week_number")),
			Team:   toStringValue(field(obj, "team", "team_name")),
			Player: player,
			// Only an explicit false marks a bench slot.
			Started: toBool(field(obj, "started", "is_starter"), true),
			Points:  numberOrZero(field(obj, "points", "score")),
		})
	}
	return out
}

func awards(v any) []domain.Award {
	var out []domain.Award
	for _, entry := range asList(v) {
		obj, ok := entry.Value.(*Object)
		if !ok {
			continue
		}
		name := toStringValue(field(obj, "name", "award", "title"))
		if name == "" && entry.Key != "" {
			name = entry.Key
		}
		if name == "" {
			continue
		}
		out = append(out, domain.Award{
			Name:   name,
			Winner: toStringValue(field(obj, "winner", "team", "team_name")),
			Player: toStringValue(field(obj, "player", "player_name")),
			Detail: toStringValue(field(obj, "detail", "note", "description")),
		})
	}
	return out
}

// supplemental merges the explicit nested block with root-level legacy keys.
// Explicit nested values win; a legacy root value never overwrites one.
func supplemental(doc *Object) domain.Supplemental {
	supp := domain.Supplemental{}

	if nested, ok := field(doc, "supplemental").(*Object); ok {
		for _, k := range nested.Keys() {
			if v, ok := nested.Field(k); ok && v != nil {
				supp[k] = Plain(v)
			}
		}
	}

	for _, key := range legacySupplementalKeys {
		if _, present := supp[key]; present {
			continue
		}
		if v, ok := doc.Field(key); ok && v != nil {
			supp[key] = Plain(v)
		}
	}

	if len(supp) == 0 {
		return nil
	}
	return supp
}

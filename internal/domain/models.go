package domain

// SchemaVersion is stamped on normalized records when the source document
// carries no version of its own.
const SchemaVersion = "2"

// Team is the canonical per-season team shape.
type Team struct {
	TeamID            string  `json:"team_id"`
	TeamName          string  `json:"team_name"`
	Owner             string  `json:"owner"`
	Record            string  `json:"record"`
	PointsFor         float64 `json:"points_for"`
	PointsAgainst     float64 `json:"points_against"`
	RegularSeasonRank *int    `json:"regular_season_rank"`
	FinalRank         *int    `json:"final_rank"`
}

// Matchup is one head-to-head result. Scores are nil when the source document
// has no numeric score for that side, never NaN.
type Matchup struct {
	Week      int      `json:"week"`
	HomeTeam  string   `json:"home_team"`
	HomeScore *float64 `json:"home_score"`
	AwayTeam  string   `json:"away_team"`
	AwayScore *float64 `json:"away_score"`
	IsPlayoff bool     `json:"is_playoff"`
}

// TransactionEntry is a single add/drop/trade leg within a transaction.
type TransactionEntry struct {
	Type   string   `json:"type"`
	Team   string   `json:"team"`
	Player string   `json:"player"`
	FAAB   *float64 `json:"faab,omitempty"`
}

// Transaction groups entries that were executed together.
type Transaction struct {
	ID      string             `json:"id,omitempty"`
	Date    string             `json:"date"`
	Entries []TransactionEntry `json:"entries"`
}

// DraftPick records one selection. Overall is the global pick number and is
// used as a cross-season skill proxy.
type DraftPick struct {
	Round     int    `json:"round"`
	Overall   int    `json:"overall"`
	Team      string `json:"team"`
	Player    string `json:"player"`
	PlayerNFL string `json:"player_nfl"`
	Keeper    bool   `json:"keeper"`
}

// Lineup is a per-week, per-player roster slot entry. Started defaults to
// true; only an explicit false in the source excludes the row from player
// totals. Structurally absent for pre-2020 seasons.
type Lineup struct {
	Week    int     `json:"week"`
	Team    string  `json:"team"`
	Player  string  `json:"player"`
	Started bool    `json:"started"`
	Points  float64 `json:"points"`
}

// Award is a season award as exported by the upstream generator.
type Award struct {
	Name   string `json:"name"`
	Winner string `json:"winner"`
	Player string `json:"player,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Supplemental carries auxiliary cross-reference documents (player_index,
// current_roster, trade_evals, trades, ...) keyed by opaque player/roster
// ids. Shapes vary by season, so entries stay loosely typed.
type Supplemental map[string]any

// SeasonRecord is the canonical, immutable unit of truth for one league-year.
// Downstream consumers never mutate it; selectors key their memoization on
// the record's pointer identity.
type SeasonRecord struct {
	Year          int          `json:"year"`
	SchemaVersion string       `json:"schemaVersion"`
	Teams         []Team       `json:"teams"`
	Matchups      []Matchup    `json:"matchups"`
	Transactions  []Transaction `json:"transactions"`
	Draft         []DraftPick  `json:"draft"`
	Lineups       []Lineup     `json:"lineups"`
	Awards        []Award      `json:"awards"`
	Supplemental  Supplemental `json:"supplemental"`
}

// TeamByName returns the canonical team row for a name, if present.
func (s *SeasonRecord) TeamByName(name string) (Team, bool) {
	for _, t := range s.Teams {
		if t.TeamName == name {
			return t, true
		}
	}
	return Team{}, false
}

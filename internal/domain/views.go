package domain

// StandingsRow is one line of a season standings table.
type StandingsRow struct {
	Rank          int     `json:"rank"`
	TeamName      string  `json:"teamName"`
	Owner         string  `json:"owner"`
	Record        string  `json:"record"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
	Streak        string  `json:"streak"`
}

// MatchupCard is a UI-ready head-to-head result.
type MatchupCard struct {
	Week      int      `json:"week"`
	HomeTeam  string   `json:"homeTeam"`
	AwayTeam  string   `json:"awayTeam"`
	HomeScore *float64 `json:"homeScore"`
	AwayScore *float64 `json:"awayScore"`
	Margin    float64  `json:"margin"`
	IsPlayoff bool     `json:"isPlayoff"`
}

// TeamWeekScore identifies a single team performance in a single week.
type TeamWeekScore struct {
	Team   string  `json:"team"`
	Week   int     `json:"week"`
	Points float64 `json:"points"`
}

// SeasonKPIs summarizes headline numbers for one season.
type SeasonKPIs struct {
	Year           int            `json:"year"`
	TotalPoints    float64        `json:"totalPoints"`
	HighestScore   *TeamWeekScore `json:"highestScore"`
	ClosestGame    *MatchupCard   `json:"closestGame"`
	BiggestBlowout *MatchupCard   `json:"biggestBlowout"`
	Champion       string         `json:"champion"`
}

// RivalryCell aggregates all meetings between one unordered team pair.
type RivalryCell struct {
	Games       int     `json:"games"`
	AvgCombined float64 `json:"avgCombined"`
}

// RivalryMatrix is a symmetric team-by-team heatmap. Diagonal cells are nil.
type RivalryMatrix struct {
	Teams []string                           `json:"teams"`
	Cells map[string]map[string]*RivalryCell `json:"cells"`
}

// PlayerSeasonLine is the per-season breakdown inside a PlayerProfile.
type PlayerSeasonLine struct {
	Year        int     `json:"year"`
	Team        string  `json:"team"`
	TotalPoints float64 `json:"totalPoints"`
	Games       int     `json:"games"`
	AvgPoints   float64 `json:"avgPoints"`
	MaxPoints   float64 `json:"maxPoints"`
}

// TeamStint is a fantasy-team timeline entry: the seasons a player spent on
// one roster, sorted ascending.
type TeamStint struct {
	Team  string `json:"team"`
	Years []int  `json:"years"`
}

// PlayerGame is a single lineup performance.
type PlayerGame struct {
	Year   int     `json:"year"`
	Week   int     `json:"week"`
	Team   string  `json:"team"`
	Points float64 `json:"points"`
}

// PlayerProfile aggregates a player's career across every loaded season.
type PlayerProfile struct {
	Name              string             `json:"name"`
	Key               string             `json:"key"`
	TotalPoints       float64            `json:"totalPoints"`
	TotalGames        int                `json:"totalGames"`
	AvgPoints         float64            `json:"avgPoints"`
	MaxPoints         float64            `json:"maxPoints"`
	BigGames          int                `json:"bigGames"`
	PointsTrend       []float64          `json:"pointsTrend"`
	Seasons           []PlayerSeasonLine `json:"seasons"`
	FantasyTeams      []TeamStint        `json:"fantasyTeams"`
	NFLTeams          []string           `json:"nflTeams"`
	BestGame          *PlayerGame        `json:"bestGame"`
	LongestHighStreak int                `json:"longestHighStreak"`
	ConsensusRank     int                `json:"consensusRank"`
	AvgDraftPick      float64            `json:"avgDraftPick"`
}

// TradeSide is one roster's half of a trade.
type TradeSide struct {
	Roster    string   `json:"roster"`
	Players   []string `json:"players"`
	NetPoints *float64 `json:"netPoints"`
	Score     *float64 `json:"score"`
}

// TradeSummary reconciles a raw trade with its evaluation document.
type TradeSummary struct {
	TradeID string      `json:"tradeId"`
	Date    string      `json:"date"`
	Sides   []TradeSide `json:"sides"`
}

// AwardCard is a UI-ready award entry.
type AwardCard struct {
	Year   int    `json:"year"`
	Name   string `json:"name"`
	Winner string `json:"winner"`
	Player string `json:"player,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// SeasonsResponse lists the years available from the manifest.
type SeasonsResponse struct {
	Years         []int  `json:"years"`
	SchemaVersion string `json:"schemaVersion,omitempty"`
	GeneratedAt   string `json:"generatedAt,omitempty"`
}

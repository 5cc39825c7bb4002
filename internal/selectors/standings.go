package selectors

import (
	"fmt"
	"math"
	"sort"

	"league-history-service/internal/domain"
)

// teamPoints is the recomputed points-for/against for one team. Raw team
// rows can carry stale totals, so matchup-level sums are the single source
// of truth for every selector that reports points.
type teamPoints struct {
	pointsFor     float64
	pointsAgainst float64
}

func recomputePoints(rec *domain.SeasonRecord) map[string]teamPoints {
	points := make(map[string]teamPoints, len(rec.Teams))
	for _, m := range rec.Matchups {
		if m.HomeScore != nil && m.HomeTeam != "" {
			p := points[m.HomeTeam]
			p.pointsFor += *m.HomeScore
			if m.AwayScore != nil {
				p.pointsAgainst += *m.AwayScore
			}
			points[m.HomeTeam] = p
		}
		if m.AwayScore != nil && m.AwayTeam != "" {
			p := points[m.AwayTeam]
			p.pointsFor += *m.AwayScore
			if m.HomeScore != nil {
				p.pointsAgainst += *m.HomeScore
			}
			points[m.AwayTeam] = p
		}
	}
	return points
}

// Standings orders teams by final rank, then regular-season rank, then
// descending recomputed points-for.
func (e *Engine) Standings(rec *domain.SeasonRecord) []domain.StandingsRow {
	if v, ok := e.standings.Get(rec); ok {
		return v.([]domain.StandingsRow)
	}

	points := recomputePoints(rec)

	rows := make([]domain.StandingsRow, 0, len(rec.Teams))
	order := make([]domain.Team, len(rec.Teams))
	copy(order, rec.Teams)

	sort.SliceStable(order, func(i, j int) bool {
		ri, rj := sortRank(order[i]), sortRank(order[j])
		if ri != rj {
			return ri < rj
		}
		return points[order[i].TeamName].pointsFor > points[order[j].TeamName].pointsFor
	})

	for i, team := range order {
		p := points[team.TeamName]
		rows = append(rows, domain.StandingsRow{
			Rank:          i + 1,
			TeamName:      team.TeamName,
			Owner:         team.Owner,
			Record:        team.Record,
			PointsFor:     p.pointsFor,
			PointsAgainst: p.pointsAgainst,
			Streak:        streak(rec, team.TeamName),
		})
	}

	e.standings.Set(rec, rows)
	return rows
}

func sortRank(t domain.Team) float64 {
	if t.FinalRank != nil {
		return float64(*t.FinalRank)
	}
	if t.RegularSeasonRank != nil {
		return float64(*t.RegularSeasonRank)
	}
	return math.Inf(1)
}

// streak walks completed matchups from the most recent week backward and
// counts the run of identical outcomes, e.g. "W3".
func streak(rec *domain.SeasonRecord, team string) string {
	type outcomeWeek struct {
		week    int
		outcome byte
	}

	var results []outcomeWeek
	for _, m := range rec.Matchups {
		if m.HomeScore == nil || m.AwayScore == nil {
			continue
		}
		var own, opp float64
		switch team {
		case m.HomeTeam:
			own, opp = *m.HomeScore, *m.AwayScore
		case m.AwayTeam:
			own, opp = *m.AwayScore, *m.HomeScore
		default:
			continue
		}
		outcome := byte('T')
		if own > opp {
			outcome = 'W'
		} else if own < opp {
			outcome = 'L'
		}
		results = append(results, outcomeWeek{week: m.Week, outcome: outcome})
	}
	if len(results) == 0 {
		return ""
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].week < results[j].week })

	last := results[len(results)-1].outcome
	count := 0
	for i := len(results) - 1; i >= 0; i-- {
		if results[i].outcome != last {
			break
		}
		count++
	}
	return fmt.Sprintf("%c%d", last, count)
}

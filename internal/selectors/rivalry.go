package selectors

import (
	"sort"

	"league-history-service/internal/domain"
)

// Rivalries builds the symmetric head-to-head heatmap for a season. Cells
// average the combined score across every completed meeting of an unordered
// team pair; the diagonal is nil.
func (e *Engine) Rivalries(rec *domain.SeasonRecord) *domain.RivalryMatrix {
	if v, ok := e.rivalries.Get(rec); ok {
		return v.(*domain.RivalryMatrix)
	}

	teams := make([]string, 0, len(rec.Teams))
	for _, t := range rec.Teams {
		teams = append(teams, t.TeamName)
	}
	sort.Strings(teams)

	type pairTotals struct {
		games    int
		combined float64
	}
	totals := make(map[[2]string]*pairTotals)

	for _, m := range rec.Matchups {
		if m.HomeScore == nil || m.AwayScore == nil || m.HomeTeam == "" || m.AwayTeam == "" {
			continue
		}
		// Sorted-pair key merges home/away orderings of the same rivalry.
		key := [2]string{m.HomeTeam, m.AwayTeam}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		pt := totals[key]
		if pt == nil {
			pt = &pairTotals{}
			totals[key] = pt
		}
		pt.games++
		pt.combined += *m.HomeScore + *m.AwayScore
	}

	cells := make(map[string]map[string]*domain.RivalryCell, len(teams))
	for _, a := range teams {
		cells[a] = make(map[string]*domain.RivalryCell, len(teams))
		for _, b := range teams {
			if a == b {
				cells[a][b] = nil
				continue
			}
			key := [2]string{a, b}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if pt, ok := totals[key]; ok {
				cells[a][b] = &domain.RivalryCell{
					Games:       pt.games,
					AvgCombined: pt.combined / float64(pt.games),
				}
			} else {
				cells[a][b] = nil
			}
		}
	}

	matrix := &domain.RivalryMatrix{Teams: teams, Cells: cells}
	e.rivalries.Set(rec, matrix)
	return matrix
}

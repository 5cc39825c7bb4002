package selectors

import (
	"league-history-service/internal/domain"
)

// TradeSummaries reconciles the season's raw trade documents with the trade
// evaluation document, joined by transaction id. Values present on the raw
// trade win; the evaluation's computed net points/score fill the gaps.
func (e *Engine) TradeSummaries(rec *domain.SeasonRecord) []domain.TradeSummary {
	if v, ok := e.trades.Get(rec); ok {
		return v.([]domain.TradeSummary)
	}

	evals := tradeEvalIndex(rec.Supplemental["trade_evals"])

	var summaries []domain.TradeSummary
	for _, raw := range anyList(rec.Supplemental["trades"]) {
		trade, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		id := mapString(trade, "id", "trade_id", "transaction_id")
		summary := domain.TradeSummary{
			TradeID: id,
			Date:    mapString(trade, "date", "timestamp"),
		}

		evalSides := evals[id]
		for _, rawSide := range anyList(firstOf(trade, "sides", "rosters", "teams")) {
			side, ok := rawSide.(map[string]any)
			if !ok {
				continue
			}
			roster := mapString(side, "roster", "team", "team_name")
			ts := domain.TradeSide{
				Roster:    roster,
				Players:   stringList(firstOf(side, "players", "assets")),
				NetPoints: mapNumber(side, "net_points", "netPoints"),
				Score:     mapNumber(side, "score", "grade"),
			}
			if ev, ok := evalSides[roster]; ok {
				if ts.NetPoints == nil {
					ts.NetPoints = ev.netPoints
				}
				if ts.Score == nil {
					ts.Score = ev.score
				}
			}
			summary.Sides = append(summary.Sides, ts)
		}

		summaries = append(summaries, summary)
	}

	e.trades.Set(rec, summaries)
	return summaries
}

type evalSide struct {
	netPoints *float64
	score     *float64
}

// tradeEvalIndex accepts either eval encoding: a map keyed by trade id, or a
// list of entries carrying their own id.
func tradeEvalIndex(v any) map[string]map[string]evalSide {
	index := make(map[string]map[string]evalSide)

	addEntry := func(id string, entry map[string]any) {
		if id == "" {
			return
		}
		sides := make(map[string]evalSide)
		for _, rawSide := range anyList(firstOf(entry, "rosters", "sides", "teams")) {
			side, ok := rawSide.(map[string]any)
			if !ok {
				continue
			}
			roster := mapString(side, "roster", "team", "team_name")
			if roster == "" {
				continue
			}
			sides[roster] = evalSide{
				netPoints: mapNumber(side, "net_points", "netPoints"),
				score:     mapNumber(side, "score", "grade"),
			}
		}
		index[id] = sides
	}

	switch t := v.(type) {
	case map[string]any:
		for id, rawEntry := range t {
			if entry, ok := rawEntry.(map[string]any); ok {
				addEntry(id, entry)
			}
		}
	case []any:
		for _, rawEntry := range t {
			if entry, ok := rawEntry.(map[string]any); ok {
				addEntry(mapString(entry, "id", "trade_id", "transaction_id"), entry)
			}
		}
	}
	return index
}

package selectors

import (
	"math"

	"league-history-service/internal/domain"
)

// MatchupCards maps a season's matchups into UI-ready cards.
func (e *Engine) MatchupCards(rec *domain.SeasonRecord) []domain.MatchupCard {
	if v, ok := e.matchups.Get(rec); ok {
		return v.([]domain.MatchupCard)
	}

	cards := make([]domain.MatchupCard, 0, len(rec.Matchups))
	for _, m := range rec.Matchups {
		card := domain.MatchupCard{
			Week:      m.Week,
			HomeTeam:  m.HomeTeam,
			AwayTeam:  m.AwayTeam,
			HomeScore: m.HomeScore,
			AwayScore: m.AwayScore,
			IsPlayoff: m.IsPlayoff,
		}
		if m.HomeScore != nil && m.AwayScore != nil {
			card.Margin = math.Abs(*m.HomeScore - *m.AwayScore)
		}
		cards = append(cards, card)
	}

	e.matchups.Set(rec, cards)
	return cards
}

// KPIs summarizes a season's headline numbers.
func (e *Engine) KPIs(rec *domain.SeasonRecord) domain.SeasonKPIs {
	if v, ok := e.kpis.Get(rec); ok {
		return v.(domain.SeasonKPIs)
	}

	kpis := domain.SeasonKPIs{Year: rec.Year}

	var closest, blowout *domain.MatchupCard
	for _, card := range e.MatchupCards(rec) {
		card := card
		if card.HomeScore != nil {
			kpis.TotalPoints += *card.HomeScore
			if kpis.HighestScore == nil || *card.HomeScore > kpis.HighestScore.Points {
				kpis.HighestScore = &domain.TeamWeekScore{Team: card.HomeTeam, Week: card.Week, Points: *card.HomeScore}
			}
		}
		if card.AwayScore != nil {
			kpis.TotalPoints += *card.AwayScore
			if kpis.HighestScore == nil || *card.AwayScore > kpis.HighestScore.Points {
				kpis.HighestScore = &domain.TeamWeekScore{Team: card.AwayTeam, Week: card.Week, Points: *card.AwayScore}
			}
		}
		if card.HomeScore == nil || card.AwayScore == nil {
			continue
		}
		if closest == nil || card.Margin < closest.Margin {
			closest = &card
		}
		if blowout == nil || card.Margin > blowout.Margin {
			blowout = &card
		}
	}
	kpis.ClosestGame = closest
	kpis.BiggestBlowout = blowout
	kpis.Champion = champion(rec)

	e.kpis.Set(rec, kpis)
	return kpis
}

func champion(rec *domain.SeasonRecord) string {
	for _, t := range rec.Teams {
		if t.FinalRank != nil && *t.FinalRank == 1 {
			return t.TeamName
		}
	}
	return ""
}

package selectors

import "league-history-service/internal/domain"

// AwardCards maps a season's awards into UI-ready cards.
func (e *Engine) AwardCards(rec *domain.SeasonRecord) []domain.AwardCard {
	if v, ok := e.awards.Get(rec); ok {
		return v.([]domain.AwardCard)
	}

	cards := make([]domain.AwardCard, 0, len(rec.Awards))
	for _, a := range rec.Awards {
		cards = append(cards, domain.AwardCard{
			Year:   rec.Year,
			Name:   a.Name,
			Winner: a.Winner,
			Player: a.Player,
			Detail: a.Detail,
		})
	}

	e.awards.Set(rec, cards)
	return cards
}

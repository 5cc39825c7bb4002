package selectors

import (
	"sort"
	"strings"

	"league-history-service/internal/domain"
	"league-history-service/internal/normalize"
)

// bigGameThreshold marks a high-scoring week; it feeds both the 20+ game
// count and the longest-streak scan.
const bigGameThreshold = 20.0

// PlayerProfile aggregates a player's career across the given seasons.
// Cross-season identity is the normalized name key; no data source carries a
// stable numeric id across all seasons.
func (e *Engine) PlayerProfile(seasons []*domain.SeasonRecord, name string) *domain.PlayerProfile {
	key := normalize.PlayerKey(name)
	if key == "" {
		return nil
	}

	memoKey := profileKey(key, seasons)
	if v, ok := e.profiles.Get(memoKey); ok {
		if entry := v.(*profileEntry); entry.matches(seasons) {
			return entry.profile
		}
	}

	pinned := make([]*domain.SeasonRecord, len(seasons))
	copy(pinned, seasons)
	ordered := make([]*domain.SeasonRecord, len(seasons))
	copy(ordered, seasons)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Year < ordered[j].Year })

	profile := &domain.PlayerProfile{
		Name: strings.TrimSpace(name),
		Key:  key,
	}

	teamYears := make(map[string]map[int]struct{})
	var nflTeams []string
	nflSeen := make(map[string]struct{})
	currentStreak := 0
	found := false

	for _, season := range ordered {
		rows := playerLineups(season, key)
		if len(rows) > 0 {
			found = true
			line := domain.PlayerSeasonLine{Year: season.Year}
			teamCounts := make(map[string]int)

			for _, row := range rows {
				if row.Team != "" {
					teamCounts[row.Team]++
					addTeamYear(teamYears, row.Team, season.Year)
				}
				if !row.Started {
					// Bench rows keep roster history but never count
					// toward totals.
					currentStreak = 0
					continue
				}

				line.TotalPoints += row.Points
				line.Games++
				if row.Points > line.MaxPoints {
					line.MaxPoints = row.Points
				}
				if row.Points >= bigGameThreshold {
					profile.BigGames++
					currentStreak++
					if currentStreak > profile.LongestHighStreak {
						profile.LongestHighStreak = currentStreak
					}
				} else {
					currentStreak = 0
				}
				if profile.BestGame == nil || row.Points > profile.BestGame.Points {
					profile.BestGame = &domain.PlayerGame{
						Year:   season.Year,
						Week:   row.Week,
						Team:   row.Team,
						Points: row.Points,
					}
				}
			}

			line.Team = dominantTeam(teamCounts)
			if line.Games > 0 {
				line.AvgPoints = line.TotalPoints / float64(line.Games)
			}

			profile.TotalPoints += line.TotalPoints
			profile.TotalGames += line.Games
			if line.MaxPoints > profile.MaxPoints {
				profile.MaxPoints = line.MaxPoints
			}
			profile.Seasons = append(profile.Seasons, line)
			profile.PointsTrend = append(profile.PointsTrend, line.TotalPoints)
		}

		for _, pick := range season.Draft {
			if normalize.PlayerKey(pick.Player) != key {
				continue
			}
			found = true
			if pick.Team != "" {
				addTeamYear(teamYears, pick.Team, season.Year)
			}
			if pick.PlayerNFL != "" {
				if _, seen := nflSeen[pick.PlayerNFL]; !seen {
					nflSeen[pick.PlayerNFL] = struct{}{}
					nflTeams = append(nflTeams, pick.PlayerNFL)
				}
			}
		}
	}

	if !found {
		e.profiles.Set(memoKey, &profileEntry{seasons: pinned})
		return nil
	}

	if profile.TotalGames > 0 {
		profile.AvgPoints = profile.TotalPoints / float64(profile.TotalGames)
	}
	profile.FantasyTeams = buildTimeline(teamYears)
	profile.NFLTeams = nflTeams
	profile.ConsensusRank, profile.AvgDraftPick = consensusRank(ordered, key)

	e.profiles.Set(memoKey, &profileEntry{seasons: pinned, profile: profile})
	return profile
}

// playerLineups returns the season's lineup rows for the player in week order.
func playerLineups(season *domain.SeasonRecord, key string) []domain.Lineup {
	var rows []domain.Lineup
	for _, row := range season.Lineups {
		if normalize.PlayerKey(row.Player) == key {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Week < rows[j].Week })
	return rows
}

func addTeamYear(teamYears map[string]map[int]struct{}, team string, year int) {
	years := teamYears[team]
	if years == nil {
		years = make(map[int]struct{})
		teamYears[team] = years
	}
	years[year] = struct{}{}
}

func dominantTeam(counts map[string]int) string {
	best, bestCount := "", 0
	for team, count := range counts {
		if count > bestCount || (count == bestCount && team < best) {
			best, bestCount = team, count
		}
	}
	return best
}

func buildTimeline(teamYears map[string]map[int]struct{}) []domain.TeamStint {
	stints := make([]domain.TeamStint, 0, len(teamYears))
	for team, yearSet := range teamYears {
		years := make([]int, 0, len(yearSet))
		for y := range yearSet {
			years = append(years, y)
		}
		sort.Ints(years)
		stints = append(stints, domain.TeamStint{Team: team, Years: years})
	}
	sort.SliceStable(stints, func(i, j int) bool {
		if stints[i].Years[0] != stints[j].Years[0] {
			return stints[i].Years[0] < stints[j].Years[0]
		}
		return stints[i].Team < stints[j].Team
	})
	return stints
}

// consensusRank ranks the player's average overall draft pick against every
// drafted player league-wide. A lower average pick means a better rank.
func consensusRank(seasons []*domain.SeasonRecord, key string) (int, float64) {
	type pickTotals struct {
		sum   float64
		count int
	}
	totals := make(map[string]*pickTotals)

	for _, season := range seasons {
		for _, pick := range season.Draft {
			if pick.Overall <= 0 {
				continue
			}
			k := normalize.PlayerKey(pick.Player)
			if k == "" {
				continue
			}
			pt := totals[k]
			if pt == nil {
				pt = &pickTotals{}
				totals[k] = pt
			}
			pt.sum += float64(pick.Overall)
			pt.count++
		}
	}

	own, ok := totals[key]
	if !ok {
		return 0, 0
	}
	avg := own.sum / float64(own.count)

	rank := 1
	for k, pt := range totals {
		if k == key {
			continue
		}
		if pt.sum/float64(pt.count) < avg {
			rank++
		}
	}
	return rank, avg
}

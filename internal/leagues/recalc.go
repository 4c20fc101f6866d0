package leagues

import (
	"sort"
)

// WeekHandicap is the handicap a team carried entering a given week.
type WeekHandicap struct {
	Week     int
	Handicap int
}

// RecalculateHandicaps replays a team's match history in week order and
// returns the handicap that applied entering each of its recorded weeks.
// Substitute appearances and forfeits never feed the rolling history, per
// the recording rules. The walk is fully deterministic for a given ordered
// history, which is what makes a league-wide recalculation pass safe to run
// after retroactive score corrections.
func RecalculateHandicaps(team TeamID, history []Matchup, s HandicapSettings) ([]WeekHandicap, error) {
	ordered := make([]Matchup, 0, len(history))
	for _, m := range history {
		if m.TeamA == team || m.TeamB == team {
			ordered = append(ordered, m)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Week < ordered[j].Week })

	var priorGross []int
	result := make([]WeekHandicap, 0, len(ordered))
	for _, m := range ordered {
		handicap, err := CalculateHandicap(priorGross, s)
		if err != nil {
			return nil, err
		}
		result = append(result, WeekHandicap{Week: m.Week, Handicap: handicap})

		if m.IsForfeit {
			continue
		}
		if m.TeamA == team && !m.TeamAIsSub {
			priorGross = append(priorGross, m.TeamAGross)
		}
		if m.TeamB == team && !m.TeamBIsSub {
			priorGross = append(priorGross, m.TeamBGross)
		}
	}
	return result, nil
}

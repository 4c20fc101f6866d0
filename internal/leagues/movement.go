package leagues

import (
	"golang.org/x/sync/errgroup"
)

// Movement reports a team's week-over-week change in rank and handicap.
// Deltas are nil when the team had no recorded activity in the immediately
// preceding week — earlier activity alone does not earn a delta, since a
// zero would misread as "held position".
type Movement struct {
	Team             Team
	CurrentRank      int
	CurrentHandicap  int
	PreviousRank     *int
	PreviousHandicap *int
	RankChange       *int
	HandicapChange   *int
}

// TrackMovement ranks the league as of the latest recorded week and as of
// the prior distinct week, then reports per-team deltas. A positive
// RankChange is an improvement. The two standings are independent pure
// computations, so they run concurrently.
func TrackMovement(cfg ScoringConfig, teams []Team, matchups []Matchup, weekly []WeeklyScore) ([]Movement, error) {
	currentWeek, previousWeek, hasPrevious := latestWeeks(matchups, weekly)

	var current, previous []Standing
	var g errgroup.Group
	g.Go(func() error {
		var err error
		current, err = RankStandingsThroughWeek(cfg, teams, matchups, weekly, currentWeek)
		return err
	})
	if hasPrevious {
		g.Go(func() error {
			var err error
			previous, err = RankStandingsThroughWeek(cfg, teams, matchups, weekly, previousWeek)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	previousByTeam := make(map[TeamID]Standing, len(previous))
	for _, s := range previous {
		previousByTeam[s.Team.ID] = s
	}
	activePrevious := activityInWeek(matchups, weekly, previousWeek)

	movements := make([]Movement, 0, len(current))
	for _, s := range current {
		m := Movement{
			Team:            s.Team,
			CurrentRank:     s.Rank,
			CurrentHandicap: s.Handicap,
		}
		prev, ok := previousByTeam[s.Team.ID]
		if hasPrevious && ok && activePrevious[s.Team.ID] {
			prevRank := prev.Rank
			prevHandicap := prev.Handicap
			rankChange := prevRank - s.Rank
			handicapChange := s.Handicap - prevHandicap
			m.PreviousRank = &prevRank
			m.PreviousHandicap = &prevHandicap
			m.RankChange = &rankChange
			m.HandicapChange = &handicapChange
		}
		movements = append(movements, m)
	}
	return movements, nil
}

// latestWeeks finds the most recent recorded week and the prior distinct
// week across both record types.
func latestWeeks(matchups []Matchup, weekly []WeeklyScore) (current, previous int, hasPrevious bool) {
	weeks := make(map[int]bool)
	for _, m := range matchups {
		weeks[m.Week] = true
	}
	for _, ws := range weekly {
		weeks[ws.Week] = true
	}
	if len(weeks) == 0 {
		return 0, 0, false
	}

	current = 0
	for week := range weeks {
		if week > current {
			current = week
		}
	}
	previous = 0
	for week := range weeks {
		if week < current && week > previous {
			previous = week
			hasPrevious = true
		}
	}
	return current, previous, hasPrevious
}

func activityInWeek(matchups []Matchup, weekly []WeeklyScore, week int) map[TeamID]bool {
	active := make(map[TeamID]bool)
	for _, m := range matchups {
		if m.Week == week {
			active[m.TeamA] = true
			active[m.TeamB] = true
		}
	}
	for _, ws := range weekly {
		if ws.Week == week {
			active[ws.Team] = true
		}
	}
	return active
}

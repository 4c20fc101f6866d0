package leagues

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Standing is one team's ranked line. TotalPoints holds the primary value
// for the league's mode: cumulative match points, stroke-play field points
// (pro-rated when configured), or the hybrid blend. Every counter here is
// derived from the match and weekly-score logs on each call; nothing is read
// from cached team records, so retroactive edits to the logs are always
// reflected.
type Standing struct {
	Team Team
	Rank int

	MatchesPlayed int
	Wins          int
	Losses        int
	Ties          int
	MatchPoints   int

	RoundsPlayed int
	DNPCount     int
	FieldPoints  float64

	TotalPoints     float64
	Handicap        int
	NetDifferential int
	AverageNet      float64
	BestFinish      int

	// Excluded marks a team pushed below all ranked teams (for example by
	// exceeding the max-DNP threshold). Its TotalPoints displays as zero.
	Excluded       bool
	ExcludedReason string
}

// teamTally accumulates per-team facts shared by all three ranking modes.
type teamTally struct {
	team Team

	matchesPlayed int
	wins          int
	losses        int
	ties          int
	matchPoints   int
	netDiff       int
	handicaps     []float64
	h2hPoints     map[TeamID]int
	h2hPlayed     map[TeamID]bool

	fieldPoints  float64
	roundsPlayed int
	dnpCount     int
	finishCounts map[int]int
	nets         []float64
	bestFinish   int

	// derived per mode during ranking
	strokeScore float64
	blended     float64
	excluded    bool
	excludedWhy string
}

// RankStandings ranks the league's teams from its complete match and
// weekly-score history under the configured scoring mode.
func RankStandings(cfg ScoringConfig, teams []Team, matchups []Matchup, weekly []WeeklyScore) ([]Standing, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}

	tallies := buildTallies(teams, matchups, weekly)

	switch cfg.Mode {
	case ModeMatchPlay:
		rankMatchPlay(tallies)
	case ModeStrokePlay:
		rankStrokePlay(tallies, cfg.StrokePlay)
	case ModeHybrid:
		rankHybrid(tallies, cfg)
	}

	return toStandings(cfg.Mode, tallies), nil
}

// RankStandingsThroughWeek ranks using only records from weeks at or before
// the given week. Movement tracking uses this to rewind the season.
func RankStandingsThroughWeek(cfg ScoringConfig, teams []Team, matchups []Matchup, weekly []WeeklyScore, week int) ([]Standing, error) {
	filteredMatchups := make([]Matchup, 0, len(matchups))
	for _, m := range matchups {
		if m.Week <= week {
			filteredMatchups = append(filteredMatchups, m)
		}
	}
	filteredWeekly := make([]WeeklyScore, 0, len(weekly))
	for _, ws := range weekly {
		if ws.Week <= week {
			filteredWeekly = append(filteredWeekly, ws)
		}
	}
	return RankStandings(cfg, teams, filteredMatchups, filteredWeekly)
}

func buildTallies(teams []Team, matchups []Matchup, weekly []WeeklyScore) []*teamTally {
	byID := make(map[TeamID]*teamTally, len(teams))
	ordered := make([]*teamTally, 0, len(teams))
	for _, team := range teams {
		tally := &teamTally{
			team:         team,
			h2hPoints:    make(map[TeamID]int),
			h2hPlayed:    make(map[TeamID]bool),
			finishCounts: make(map[int]int),
		}
		byID[team.ID] = tally
		ordered = append(ordered, tally)
	}

	for _, m := range matchups {
		a, b := byID[m.TeamA], byID[m.TeamB]
		if a != nil {
			applyMatchSide(a, m, matchSide{
				opponent: m.TeamB, points: m.TeamAPoints, oppPoints: m.TeamBPoints,
				net: m.TeamANet, oppNet: m.TeamBNet, handicap: m.TeamAHandicap, sub: m.TeamAIsSub,
			})
		}
		if b != nil {
			applyMatchSide(b, m, matchSide{
				opponent: m.TeamA, points: m.TeamBPoints, oppPoints: m.TeamAPoints,
				net: m.TeamBNet, oppNet: m.TeamANet, handicap: m.TeamBHandicap, sub: m.TeamBIsSub,
			})
		}
	}

	for _, ws := range weekly {
		tally := byID[ws.Team]
		if tally == nil {
			continue
		}
		tally.fieldPoints += ws.Points
		if ws.DNP {
			tally.dnpCount++
			continue
		}
		tally.roundsPlayed++
		tally.nets = append(tally.nets, float64(ws.Net))
		if ws.Position > 0 {
			tally.finishCounts[ws.Position]++
			if tally.bestFinish == 0 || ws.Position < tally.bestFinish {
				tally.bestFinish = ws.Position
			}
		}
	}

	return ordered
}

type matchSide struct {
	opponent  TeamID
	points    int
	oppPoints int
	net       int
	oppNet    int
	handicap  int
	sub       bool
}

func applyMatchSide(tally *teamTally, m Matchup, side matchSide) {
	tally.matchesPlayed++
	tally.matchPoints += side.points
	tally.h2hPoints[side.opponent] += side.points
	tally.h2hPlayed[side.opponent] = true

	if m.IsForfeit {
		if m.ForfeitTeam == tally.team.ID {
			tally.losses++
		} else {
			tally.wins++
		}
		// No play happened: nothing feeds nets or handicap averages.
		return
	}

	switch {
	case side.points > side.oppPoints:
		tally.wins++
	case side.points < side.oppPoints:
		tally.losses++
	default:
		tally.ties++
	}
	tally.netDiff += side.oppNet - side.net
	if !side.sub {
		tally.handicaps = append(tally.handicaps, float64(side.handicap))
	}
}

// averageHandicap is the floor of the mean of all non-substitute handicaps
// recorded in the team's matches, or zero with no history.
func (t *teamTally) averageHandicap() int {
	if len(t.handicaps) == 0 {
		return 0
	}
	return int(math.Floor(stat.Mean(t.handicaps, nil)))
}

func (t *teamTally) averageNet() float64 {
	if len(t.nets) == 0 {
		return 0
	}
	return stat.Mean(t.nets, nil)
}

// compareHeadToHead breaks a tie by the points the pair scored against each
// other, but only when they have actually met. Returns >0 when a ranks
// above b, <0 when below, 0 when the tie stands.
func compareHeadToHead(a, b *teamTally) int {
	if !a.h2hPlayed[b.team.ID] {
		return 0
	}
	return a.h2hPoints[b.team.ID] - b.h2hPoints[a.team.ID]
}

// compareFinishCounts implements the counting method: compare counts of
// 1st-place weekly finishes, then 2nd, and so on until a position differs.
func compareFinishCounts(a, b *teamTally) int {
	maxPos := 0
	for pos := range a.finishCounts {
		if pos > maxPos {
			maxPos = pos
		}
	}
	for pos := range b.finishCounts {
		if pos > maxPos {
			maxPos = pos
		}
	}
	for pos := 1; pos <= maxPos; pos++ {
		if diff := a.finishCounts[pos] - b.finishCounts[pos]; diff != 0 {
			return diff
		}
	}
	return 0
}

// compareBestFinish prefers the lower position number; teams with no finish
// rank behind teams with one.
func compareBestFinish(a, b *teamTally) int {
	switch {
	case a.bestFinish == b.bestFinish:
		return 0
	case a.bestFinish == 0:
		return -1
	case b.bestFinish == 0:
		return 1
	case a.bestFinish < b.bestFinish:
		return 1
	default:
		return -1
	}
}

func rankMatchPlay(tallies []*teamTally) {
	sort.SliceStable(tallies, func(i, j int) bool {
		a, b := tallies[i], tallies[j]
		if a.matchPoints != b.matchPoints {
			return a.matchPoints > b.matchPoints
		}
		if a.wins != b.wins {
			return a.wins > b.wins
		}
		if h2h := compareHeadToHead(a, b); h2h != 0 {
			return h2h > 0
		}
		if a.netDiff != b.netDiff {
			return a.netDiff > b.netDiff
		}
		return a.team.Name < b.team.Name
	})
}

// applyStrokeScores fills strokeScore and the max-DNP exclusion used by both
// stroke play and the hybrid field component.
func applyStrokeScores(tallies []*teamTally, s StrokePlaySettings) {
	for _, t := range tallies {
		t.strokeScore = t.fieldPoints
		if s.ProRate && t.roundsPlayed > 0 {
			t.strokeScore = t.fieldPoints / float64(t.roundsPlayed)
		}
		if s.MaxDNP >= 0 && t.dnpCount > s.MaxDNP {
			t.excluded = true
			t.excludedWhy = fmt.Sprintf("%d DNP weeks exceeds the limit of %d", t.dnpCount, s.MaxDNP)
		}
	}
}

func rankStrokePlay(tallies []*teamTally, s StrokePlaySettings) {
	applyStrokeScores(tallies, s)
	sort.SliceStable(tallies, func(i, j int) bool {
		a, b := tallies[i], tallies[j]
		if a.excluded != b.excluded {
			return !a.excluded
		}
		if a.strokeScore != b.strokeScore {
			return a.strokeScore > b.strokeScore
		}
		if counts := compareFinishCounts(a, b); counts != 0 {
			return counts > 0
		}
		if an, bn := a.averageNet(), b.averageNet(); an != bn {
			return an < bn
		}
		if best := compareBestFinish(a, b); best != 0 {
			return best > 0
		}
		return a.team.Name < b.team.Name
	})
}

func rankHybrid(tallies []*teamTally, cfg ScoringConfig) {
	applyStrokeScores(tallies, cfg.StrokePlay)
	weight := cfg.clampedFieldWeight()
	for _, t := range tallies {
		t.blended = float64(t.matchPoints)*(1-weight) + t.strokeScore*weight
	}
	sort.SliceStable(tallies, func(i, j int) bool {
		a, b := tallies[i], tallies[j]
		if a.excluded != b.excluded {
			return !a.excluded
		}
		if math.Abs(a.blended-b.blended) > hybridEpsilon {
			return a.blended > b.blended
		}
		if a.wins != b.wins {
			return a.wins > b.wins
		}
		if h2h := compareHeadToHead(a, b); h2h != 0 {
			return h2h > 0
		}
		if counts := compareFinishCounts(a, b); counts != 0 {
			return counts > 0
		}
		if an, bn := a.averageNet(), b.averageNet(); an != bn {
			return an < bn
		}
		return a.team.Name < b.team.Name
	})
}

// toStandings converts sorted tallies into the public standings list, dense
// ranking on the mode's primary key: tied teams share a rank and the next
// distinct value resumes at one past the number of teams already listed.
func toStandings(mode ScoringMode, tallies []*teamTally) []Standing {
	standings := make([]Standing, 0, len(tallies))
	for i, t := range tallies {
		s := Standing{
			Team:            t.team,
			MatchesPlayed:   t.matchesPlayed,
			Wins:            t.wins,
			Losses:          t.losses,
			Ties:            t.ties,
			MatchPoints:     t.matchPoints,
			RoundsPlayed:    t.roundsPlayed,
			DNPCount:        t.dnpCount,
			FieldPoints:     t.fieldPoints,
			Handicap:        t.averageHandicap(),
			NetDifferential: t.netDiff,
			AverageNet:      t.averageNet(),
			BestFinish:      t.bestFinish,
			Excluded:        t.excluded,
			ExcludedReason:  t.excludedWhy,
		}

		switch mode {
		case ModeMatchPlay:
			s.TotalPoints = float64(t.matchPoints)
		case ModeStrokePlay:
			s.TotalPoints = t.strokeScore
		case ModeHybrid:
			s.TotalPoints = t.blended
		}
		if t.excluded {
			s.TotalPoints = 0
		}

		if i > 0 && samePrimaryKey(mode, tallies[i-1], t) {
			s.Rank = standings[i-1].Rank
		} else {
			s.Rank = i + 1
		}
		standings = append(standings, s)
	}
	return standings
}

func samePrimaryKey(mode ScoringMode, a, b *teamTally) bool {
	if a.excluded != b.excluded {
		return false
	}
	if a.excluded {
		return true
	}
	switch mode {
	case ModeMatchPlay:
		return a.matchPoints == b.matchPoints
	case ModeStrokePlay:
		return a.strokeScore == b.strokeScore
	case ModeHybrid:
		return math.Abs(a.blended-b.blended) <= hybridEpsilon
	default:
		return false
	}
}

// Package simulation builds demo seasons for development and seeding. Unlike
// the engine's deterministic point suggestions, simulated gross scores are
// intentionally randomized within margin bands so generated leagues look like
// real ones: streaks, blowouts, the odd substitute and forfeit.
package simulation

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rfletch/foreleague/internal/leagues"
)

// Settings controls the shape of a simulated season. The same seed always
// reproduces the same scores.
type Settings struct {
	Teams         int
	Weeks         int
	Double        bool
	StartWeek     int
	Seed          int64
	SubChance     float64
	ForfeitChance float64
}

// SeasonResult is a complete simulated season: the schedule that was played
// and every record the standings engine consumes.
type SeasonResult struct {
	Teams        []leagues.Team
	Plan         leagues.SchedulePlan
	Matchups     []leagues.Matchup
	WeeklyScores []leagues.WeeklyScore
}

var teamNames = []string{
	"Fairway Bandits",
	"Rough Riders",
	"Sand Savers",
	"The Mulligans",
	"Bogey Men",
	"Chip Shots",
	"Divot Kings",
	"Green Readers",
	"Pin Seekers",
	"Shank Redemption",
	"Sliced Bread",
	"Tee Totalers",
	"Cart Path Only",
	"Dew Sweepers",
	"Grip It and Sip It",
	"Worm Burners",
}

// RunSeason seeds a league, generates its schedule, and plays every week.
func RunSeason(settings Settings, scoring leagues.ScoringConfig) (*SeasonResult, error) {
	if settings.Teams < 2 {
		return nil, fmt.Errorf("need at least 2 teams, got %d", settings.Teams)
	}
	if err := scoring.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}

	rng := rand.New(rand.NewSource(settings.Seed))

	teams := make([]leagues.Team, settings.Teams)
	teamIDs := make([]leagues.TeamID, settings.Teams)
	skills := make(map[leagues.TeamID]int, settings.Teams)
	for i := range teams {
		name := fmt.Sprintf("Team %d", i+1)
		if i < len(teamNames) {
			name = teamNames[i]
		}
		id := leagues.TeamID(uuid.NewString())
		teams[i] = leagues.Team{ID: id, Name: name}
		teamIDs[i] = id
		skills[id] = 36 + rng.Intn(8)
	}

	plan := leagues.GenerateScheduleForWeeks(teamIDs, settings.Weeks, settings.Double, settings.StartWeek)
	log.Info().
		Int("teams", settings.Teams).
		Int("weeks", len(plan.Rounds)).
		Bool("truncated", plan.Truncated).
		Int64("seed", settings.Seed).
		Msg("Simulating season")

	sim := &seasonSim{
		settings: settings,
		scoring:  scoring,
		rng:      rng,
		skills:   skills,
		history:  make(map[leagues.TeamID][]int, settings.Teams),
	}

	result := &SeasonResult{Teams: teams, Plan: plan}
	for _, round := range plan.Rounds {
		matchups, weeklyScores, err := sim.playWeek(round)
		if err != nil {
			return nil, err
		}
		result.Matchups = append(result.Matchups, matchups...)
		result.WeeklyScores = append(result.WeeklyScores, weeklyScores...)
		log.Debug().Int("week", round.Week).Int("matches", len(matchups)).Msg("Simulated week")
	}
	return result, nil
}

type seasonSim struct {
	settings Settings
	scoring  leagues.ScoringConfig
	rng      *rand.Rand
	skills   map[leagues.TeamID]int
	history  map[leagues.TeamID][]int
}

func (s *seasonSim) playWeek(round leagues.Round) ([]leagues.Matchup, []leagues.WeeklyScore, error) {
	var matchups []leagues.Matchup
	var entries []leagues.WeeklyScore

	for _, pairing := range round.Pairings {
		if pairing.Bye {
			continue
		}
		matchup, weekEntries, err := s.playMatch(round.Week, pairing.TeamA, pairing.TeamB)
		if err != nil {
			return nil, nil, err
		}
		matchups = append(matchups, matchup)
		entries = append(entries, weekEntries...)
	}

	return matchups, leagues.ScoreWeek(entries, s.scoring.StrokePlay), nil
}

func (s *seasonSim) playMatch(week int, teamA, teamB leagues.TeamID) (leagues.Matchup, []leagues.WeeklyScore, error) {
	handicapA, err := leagues.CalculateHandicap(s.history[teamA], s.scoring.Handicap)
	if err != nil {
		return leagues.Matchup{}, nil, err
	}
	handicapB, err := leagues.CalculateHandicap(s.history[teamB], s.scoring.Handicap)
	if err != nil {
		return leagues.Matchup{}, nil, err
	}

	matchup := leagues.Matchup{
		Week:          week,
		TeamA:         teamA,
		TeamB:         teamB,
		TeamAHandicap: handicapA,
		TeamBHandicap: handicapB,
	}

	if s.rng.Float64() < s.settings.ForfeitChance {
		return s.playForfeit(matchup)
	}

	matchup.TeamAGross = s.simulateGross(teamA)
	matchup.TeamBGross = s.simulateGross(teamB)
	matchup.TeamAIsSub = s.rng.Float64() < s.settings.SubChance
	matchup.TeamBIsSub = s.rng.Float64() < s.settings.SubChance
	matchup.TeamANet = leagues.CalculateNetScore(matchup.TeamAGross, handicapA)
	matchup.TeamBNet = leagues.CalculateNetScore(matchup.TeamBGross, handicapB)

	split := leagues.SuggestPoints(matchup.TeamANet, matchup.TeamBNet, s.scoring.MatchPlay.PointTotal)
	matchup.TeamAPoints = split.TeamAPoints
	matchup.TeamBPoints = split.TeamBPoints

	// Substitute rounds never feed the rolling handicap history.
	if !matchup.TeamAIsSub {
		s.history[teamA] = append(s.history[teamA], matchup.TeamAGross)
	}
	if !matchup.TeamBIsSub {
		s.history[teamB] = append(s.history[teamB], matchup.TeamBGross)
	}

	entries := []leagues.WeeklyScore{
		{Team: teamA, Week: week, Gross: matchup.TeamAGross, Handicap: handicapA, Net: matchup.TeamANet, Sub: matchup.TeamAIsSub},
		{Team: teamB, Week: week, Gross: matchup.TeamBGross, Handicap: handicapB, Net: matchup.TeamBNet, Sub: matchup.TeamBIsSub},
	}
	return matchup, entries, nil
}

// playForfeit records a forfeit by one side. The present team still plays
// its round, so its score counts toward history and the weekly field; the
// forfeiting side is a DNP for the week.
func (s *seasonSim) playForfeit(matchup leagues.Matchup) (leagues.Matchup, []leagues.WeeklyScore, error) {
	matchup.IsForfeit = true
	forfeitByA := s.rng.Float64() < 0.5

	total := s.scoring.MatchPlay.PointTotal
	winnerPoints := s.scoring.MatchPlay.ForfeitWinnerPoints

	var winner, loser leagues.TeamID
	if forfeitByA {
		matchup.ForfeitTeam = matchup.TeamA
		matchup.TeamAPoints = total - winnerPoints
		matchup.TeamBPoints = winnerPoints
		matchup.TeamBGross = s.simulateGross(matchup.TeamB)
		matchup.TeamBNet = leagues.CalculateNetScore(matchup.TeamBGross, matchup.TeamBHandicap)
		winner, loser = matchup.TeamB, matchup.TeamA
		s.history[winner] = append(s.history[winner], matchup.TeamBGross)
	} else {
		matchup.ForfeitTeam = matchup.TeamB
		matchup.TeamBPoints = total - winnerPoints
		matchup.TeamAPoints = winnerPoints
		matchup.TeamAGross = s.simulateGross(matchup.TeamA)
		matchup.TeamANet = leagues.CalculateNetScore(matchup.TeamAGross, matchup.TeamAHandicap)
		winner, loser = matchup.TeamA, matchup.TeamB
		s.history[winner] = append(s.history[winner], matchup.TeamAGross)
	}

	winnerEntry := leagues.WeeklyScore{Team: winner, Week: matchup.Week}
	if winner == matchup.TeamA {
		winnerEntry.Gross = matchup.TeamAGross
		winnerEntry.Handicap = matchup.TeamAHandicap
		winnerEntry.Net = matchup.TeamANet
	} else {
		winnerEntry.Gross = matchup.TeamBGross
		winnerEntry.Handicap = matchup.TeamBHandicap
		winnerEntry.Net = matchup.TeamBNet
	}
	entries := []leagues.WeeklyScore{
		winnerEntry,
		{Team: loser, Week: matchup.Week, DNP: true},
	}
	return matchup, entries, nil
}

// simulateGross draws a round around the team's skill base. The band keeps
// scores inside a believable 9-hole range while leaving room for hot and
// cold weeks.
func (s *seasonSim) simulateGross(team leagues.TeamID) int {
	return s.skills[team] + s.rng.Intn(11) - 5
}

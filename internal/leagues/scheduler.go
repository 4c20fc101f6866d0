package leagues

import (
	"fmt"
	"sort"
)

// byeSlot pads an odd team list to an even length. It never escapes this
// file: any pairing touching it is emitted as an explicit bye.
const byeSlot = TeamID("")

// SchedulePlan is the result of fitting a round-robin into a week budget.
type SchedulePlan struct {
	Rounds []Round
	// Truncated reports that the week budget was smaller than a complete
	// round-robin, so not every pairing will occur.
	Truncated bool
	// FullRoundsNeeded is the round count a complete schedule would need.
	FullRoundsNeeded int
}

// ValidationReport lists every defect found in a schedule. Errors are
// collected rather than returned fail-fast so operators see the full list.
type ValidationReport struct {
	Valid           bool
	Errors          []string
	ByeDistribution map[TeamID]int
	MatchesPerTeam  map[TeamID]int
}

// GenerateSingleRoundRobin produces a circle-method schedule in which every
// team meets every other team exactly once. Odd team counts receive byes,
// spread so no team sits out more than one week more than any other. Fewer
// than two teams yields an empty schedule.
func GenerateSingleRoundRobin(teamIDs []TeamID, startWeek int) []Round {
	if len(teamIDs) < 2 {
		return nil
	}

	slots := make([]TeamID, 0, len(teamIDs)+1)
	slots = append(slots, teamIDs...)
	if len(slots)%2 == 1 {
		slots = append(slots, byeSlot)
	}

	size := len(slots)
	fixed := slots[0]
	rotation := make([]TeamID, size-1)
	copy(rotation, slots[1:])

	rounds := make([]Round, 0, size-1)
	for r := 0; r < size-1; r++ {
		week := startWeek + r
		pairings := make([]Pairing, 0, size/2)
		pairings = appendPairing(pairings, week, fixed, rotation[len(rotation)-1])
		for i := 0; i < (size-2)/2; i++ {
			pairings = appendPairing(pairings, week, rotation[i], rotation[len(rotation)-2-i])
		}
		rounds = append(rounds, Round{Week: week, Pairings: pairings})

		// Rotate one position: the last participant moves to the front,
		// the fixed participant stays put.
		last := rotation[len(rotation)-1]
		copy(rotation[1:], rotation[:len(rotation)-1])
		rotation[0] = last
	}
	return rounds
}

func appendPairing(pairings []Pairing, week int, a, b TeamID) []Pairing {
	switch {
	case a == byeSlot:
		return append(pairings, NewByePairing(week, b))
	case b == byeSlot:
		return append(pairings, NewByePairing(week, a))
	default:
		return append(pairings, NewMatchPairing(week, a, b))
	}
}

// GenerateDoubleRoundRobin produces a schedule in which every team meets
// every other team twice, once on each side. The second half mirrors the
// first and is circularly shifted by half its length so rematches land as
// far as possible from the first meeting instead of immediately after it.
func GenerateDoubleRoundRobin(teamIDs []TeamID, startWeek int) []Round {
	first := GenerateSingleRoundRobin(teamIDs, startWeek)
	if len(first) == 0 {
		return nil
	}

	mirrored := make([]Round, len(first))
	for i, round := range first {
		pairings := make([]Pairing, len(round.Pairings))
		for j, p := range round.Pairings {
			if p.Bye {
				pairings[j] = p
			} else {
				pairings[j] = NewMatchPairing(p.Week, p.TeamB, p.TeamA)
			}
		}
		mirrored[i] = Round{Week: round.Week, Pairings: pairings}
	}

	shift := len(mirrored) / 2
	rounds := make([]Round, 0, 2*len(first))
	rounds = append(rounds, first...)
	for i := range mirrored {
		src := mirrored[(i+shift)%len(mirrored)]
		week := startWeek + len(first) + i
		pairings := make([]Pairing, len(src.Pairings))
		for j, p := range src.Pairings {
			p.Week = week
			pairings[j] = p
		}
		rounds = append(rounds, Round{Week: week, Pairings: pairings})
	}
	return rounds
}

// GenerateScheduleForWeeks fits a single or double round-robin into the
// given week budget. When the budget is smaller than a complete schedule the
// plan is cut to the budget and flagged truncated so the caller can warn the
// operator that not every pairing will occur.
func GenerateScheduleForWeeks(teamIDs []TeamID, totalWeeks int, double bool, startWeek int) SchedulePlan {
	var full []Round
	if double {
		full = GenerateDoubleRoundRobin(teamIDs, startWeek)
	} else {
		full = GenerateSingleRoundRobin(teamIDs, startWeek)
	}

	plan := SchedulePlan{FullRoundsNeeded: len(full)}
	if totalWeeks <= 0 || len(full) == 0 {
		plan.Truncated = len(full) > 0
		return plan
	}
	if totalWeeks < len(full) {
		plan.Rounds = full[:totalWeeks]
		plan.Truncated = true
		return plan
	}
	plan.Rounds = full
	return plan
}

// ValidateSchedule checks a schedule against the league's team list: every
// team appears exactly once per round (as a match side or a bye), no team is
// double-booked, and byes are spread within one of each other. All defects
// are collected; Valid is true only when none were found.
func ValidateSchedule(rounds []Round, teamIDs []TeamID) ValidationReport {
	report := ValidationReport{
		ByeDistribution: make(map[TeamID]int, len(teamIDs)),
		MatchesPerTeam:  make(map[TeamID]int, len(teamIDs)),
	}
	known := make(map[TeamID]bool, len(teamIDs))
	for _, id := range teamIDs {
		known[id] = true
		report.ByeDistribution[id] = 0
		report.MatchesPerTeam[id] = 0
	}

	for _, round := range rounds {
		seen := make(map[TeamID]bool, len(teamIDs))
		for _, pairing := range round.Pairings {
			if !pairing.Bye && pairing.TeamA == pairing.TeamB {
				report.Errors = append(report.Errors,
					fmt.Sprintf("week %d: team %q is paired against itself", round.Week, pairing.TeamA))
			}
			for _, id := range pairing.Teams() {
				if !known[id] {
					report.Errors = append(report.Errors,
						fmt.Sprintf("week %d: unknown team %q", round.Week, id))
					continue
				}
				if seen[id] {
					report.Errors = append(report.Errors,
						fmt.Sprintf("week %d: team %q is double-booked", round.Week, id))
					continue
				}
				seen[id] = true
				if pairing.Bye {
					report.ByeDistribution[id]++
				} else {
					report.MatchesPerTeam[id]++
				}
			}
		}
		for _, id := range teamIDs {
			if !seen[id] {
				report.Errors = append(report.Errors,
					fmt.Sprintf("week %d: team %q has no pairing or bye", round.Week, id))
			}
		}
	}

	if spreadErr := byeSpreadError(report.ByeDistribution); spreadErr != "" {
		report.Errors = append(report.Errors, spreadErr)
	}

	report.Valid = len(report.Errors) == 0
	return report
}

func byeSpreadError(byes map[TeamID]int) string {
	total := 0
	minByes, maxByes := 0, 0
	firstSample := true
	for _, count := range byes {
		total += count
		if firstSample {
			minByes, maxByes = count, count
			firstSample = false
			continue
		}
		if count < minByes {
			minByes = count
		}
		if count > maxByes {
			maxByes = count
		}
	}
	if total == 0 || maxByes-minByes <= 1 {
		return ""
	}

	overloaded := make([]string, 0, len(byes))
	for id, count := range byes {
		if count == maxByes {
			overloaded = append(overloaded, string(id))
		}
	}
	sort.Strings(overloaded)
	return fmt.Sprintf("bye distribution is uneven (min %d, max %d): %v", minByes, maxByes, overloaded)
}

package leagues

import (
	"fmt"
)

// Schedule edit operations. Each returns an edited copy of the schedule and
// never mutates its input; a rejected edit returns the error and no rounds.
// The engine only enforces pairing rules (no double-booking within a week) —
// wrapping the read-edit-write cycle in a transaction so two concurrent
// operators cannot interleave edits is the storage layer's job.

func cloneRounds(rounds []Round) []Round {
	out := make([]Round, len(rounds))
	for i, round := range rounds {
		pairings := make([]Pairing, len(round.Pairings))
		copy(pairings, round.Pairings)
		out[i] = Round{Week: round.Week, Pairings: pairings}
	}
	return out
}

func roundIndex(rounds []Round, week int) (int, error) {
	for i, round := range rounds {
		if round.Week == week {
			return i, nil
		}
	}
	return 0, fmt.Errorf("week %d is not on the schedule", week)
}

func pairingIndex(round Round, team TeamID) (int, error) {
	for i, pairing := range round.Pairings {
		for _, id := range pairing.Teams() {
			if id == team {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("team %q has no pairing in week %d", team, round.Week)
}

func teamBusy(round Round, team TeamID) bool {
	for _, pairing := range round.Pairings {
		for _, id := range pairing.Teams() {
			if id == team {
				return true
			}
		}
	}
	return false
}

// SwapOpponents exchanges the opponents of two teams within a single week.
// Both teams must be scheduled that week in different non-bye pairings.
func SwapOpponents(rounds []Round, week int, x, y TeamID) ([]Round, error) {
	if x == y {
		return nil, fmt.Errorf("cannot swap team %q with itself", x)
	}
	edited := cloneRounds(rounds)
	ri, err := roundIndex(edited, week)
	if err != nil {
		return nil, err
	}
	round := edited[ri]

	xi, err := pairingIndex(round, x)
	if err != nil {
		return nil, err
	}
	yi, err := pairingIndex(round, y)
	if err != nil {
		return nil, err
	}
	if xi == yi {
		return nil, fmt.Errorf("teams %q and %q already share a pairing in week %d", x, y, week)
	}
	if round.Pairings[xi].Bye || round.Pairings[yi].Bye {
		return nil, fmt.Errorf("cannot swap into a bye in week %d", week)
	}

	swapSide := func(p *Pairing, from, to TeamID) {
		if p.TeamA == from {
			p.TeamA = to
		} else {
			p.TeamB = to
		}
	}
	swapSide(&round.Pairings[xi], x, y)
	swapSide(&round.Pairings[yi], y, x)
	edited[ri] = round
	return edited, nil
}

// ReschedulePairing moves the pairing containing the given team from one
// week to another. The edit is rejected if any involved team already has a
// pairing or bye in the target week.
func ReschedulePairing(rounds []Round, team TeamID, fromWeek, toWeek int) ([]Round, error) {
	if fromWeek == toWeek {
		return nil, fmt.Errorf("pairing is already in week %d", toWeek)
	}
	edited := cloneRounds(rounds)
	fromIdx, err := roundIndex(edited, fromWeek)
	if err != nil {
		return nil, err
	}
	toIdx, err := roundIndex(edited, toWeek)
	if err != nil {
		return nil, err
	}
	pi, err := pairingIndex(edited[fromIdx], team)
	if err != nil {
		return nil, err
	}

	moved := edited[fromIdx].Pairings[pi]
	for _, id := range moved.Teams() {
		if teamBusy(edited[toIdx], id) {
			return nil, fmt.Errorf("team %q is already booked in week %d", id, toWeek)
		}
	}

	edited[fromIdx].Pairings = append(edited[fromIdx].Pairings[:pi], edited[fromIdx].Pairings[pi+1:]...)
	moved.Week = toWeek
	edited[toIdx].Pairings = append(edited[toIdx].Pairings, moved)
	return edited, nil
}

// CancelPairing removes the pairing containing the given team from a week.
func CancelPairing(rounds []Round, week int, team TeamID) ([]Round, error) {
	edited := cloneRounds(rounds)
	ri, err := roundIndex(edited, week)
	if err != nil {
		return nil, err
	}
	pi, err := pairingIndex(edited[ri], team)
	if err != nil {
		return nil, err
	}
	edited[ri].Pairings = append(edited[ri].Pairings[:pi], edited[ri].Pairings[pi+1:]...)
	return edited, nil
}

// AddPairing inserts a new pairing into a week, rejecting double-bookings.
// The week is created at the end of the schedule if it does not exist yet.
func AddPairing(rounds []Round, pairing Pairing) ([]Round, error) {
	if !pairing.Bye && pairing.TeamA == pairing.TeamB {
		return nil, fmt.Errorf("team %q cannot play itself", pairing.TeamA)
	}
	edited := cloneRounds(rounds)
	ri, err := roundIndex(edited, pairing.Week)
	if err != nil {
		edited = append(edited, Round{Week: pairing.Week})
		ri = len(edited) - 1
	}
	for _, id := range pairing.Teams() {
		if teamBusy(edited[ri], id) {
			return nil, fmt.Errorf("team %q is already booked in week %d", id, pairing.Week)
		}
	}
	edited[ri].Pairings = append(edited[ri].Pairings, pairing)
	return edited, nil
}

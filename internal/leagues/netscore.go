package leagues

// CalculateNetScore returns the handicap-adjusted score. No clamping is
// applied: a strong round against a large handicap may go below any physical
// bound, and that is the comparison value the rankers expect.
func CalculateNetScore(gross, handicap int) int {
	return gross - handicap
}

// PointSplit is a suggested division of a match's points between its sides.
type PointSplit struct {
	TeamAPoints int
	TeamBPoints int
}

// SuggestPoints proposes a point split for a two-team match from its net
// scores alone. The split always sums to pointTotal, moves one point per
// stroke of net differential away from an even split, and is clamped so a
// blowout cannot award more than the total. Exact ties split evenly.
//
// The function is deterministic; unlike the score simulators used to build
// demo data it involves no randomness. Operators may override the suggestion
// before the match is persisted.
func SuggestPoints(netA, netB, pointTotal int) PointSplit {
	teamAPoints := pointTotal/2 + (netB - netA)
	if teamAPoints < 0 {
		teamAPoints = 0
	}
	if teamAPoints > pointTotal {
		teamAPoints = pointTotal
	}
	return PointSplit{TeamAPoints: teamAPoints, TeamBPoints: pointTotal - teamAPoints}
}

package leagues

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CalculateHandicap turns a team's prior gross scores into a handicap under
// the given settings. Scores must be ordered oldest to newest; the caller is
// responsible for excluding substitute appearances before calling. An empty
// history returns the default handicap untouched by rounding or clamping.
func CalculateHandicap(priorGross []int, s HandicapSettings) (int, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}
	if len(priorGross) == 0 {
		return s.DefaultHandicap, nil
	}

	selected := selectScores(priorGross, s)
	scores := make([]float64, len(selected))
	for i, gross := range selected {
		if s.ExceptionalCap > 0 && gross > s.ExceptionalCap {
			gross = s.ExceptionalCap
		}
		scores[i] = float64(gross)
	}

	avg := stat.Mean(scores, recencyWeights(len(scores), s))

	multiplier := s.Multiplier
	if s.ProvisionalWeeks > 0 && len(priorGross) < s.ProvisionalWeeks {
		multiplier = s.ProvisionalMultiplier
	}

	raw := (avg - float64(s.BaseScore)) * multiplier
	rounded, err := applyRounding(raw, s.Rounding)
	if err != nil {
		return 0, err
	}

	if s.MinHandicap != nil && rounded < *s.MinHandicap {
		rounded = *s.MinHandicap
	}
	if s.MaxHandicap != nil && rounded > *s.MaxHandicap {
		rounded = *s.MaxHandicap
	}
	return rounded, nil
}

// selectScores picks the subset of scores the strategy averages over,
// preserving chronological order within the subset.
func selectScores(scores []int, s HandicapSettings) []int {
	switch s.Selection {
	case SelectBestOfLast:
		window := lastWindow(scores, s.OutOf)
		return lowestOf(window, s.BestOf)
	case SelectLastN:
		window := lastWindow(scores, s.LastN)
		if s.DropHighest > 0 {
			return lowestOf(window, len(window)-s.DropHighest)
		}
		return window
	default:
		return scores
	}
}

func lastWindow(scores []int, n int) []int {
	if n >= len(scores) {
		return scores
	}
	return scores[len(scores)-n:]
}

// lowestOf keeps the n lowest scores of the window, still in their original
// chronological order.
func lowestOf(window []int, n int) []int {
	if n >= len(window) {
		return window
	}
	if n <= 0 {
		return nil
	}
	type indexed struct{ idx, gross int }
	ranked := make([]indexed, len(window))
	for i, gross := range window {
		ranked[i] = indexed{i, gross}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].gross < ranked[j].gross })
	keep := make(map[int]bool, n)
	for _, entry := range ranked[:n] {
		keep[entry.idx] = true
	}
	out := make([]int, 0, n)
	for i, gross := range window {
		if keep[i] {
			out = append(out, gross)
		}
	}
	return out
}

// recencyWeights returns per-score weights for the weighted mean, or nil for
// an unweighted mean. The newest score carries full weight; each older score
// decays geometrically, blended by the weight-recent factor so a factor of
// zero degrades to a plain average.
func recencyWeights(n int, s HandicapSettings) []float64 {
	if s.WeightRecent <= 0 || n == 0 {
		return nil
	}
	weights := make([]float64, n)
	for i := range weights {
		age := n - 1 - i
		weights[i] = (1 - s.WeightRecent) + s.WeightRecent*math.Pow(s.Decay, float64(age))
	}
	return weights
}

func applyRounding(value float64, mode RoundingMode) (int, error) {
	switch mode {
	case RoundFloor:
		return int(math.Floor(value)), nil
	case RoundHalf:
		return int(math.Round(value)), nil
	case RoundCeil:
		return int(math.Ceil(value)), nil
	default:
		return 0, fmt.Errorf("unknown rounding mode %q", mode)
	}
}

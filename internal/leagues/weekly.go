package leagues

import (
	"sort"
)

// ScoreWeek assigns finishing positions and points to one week of
// stroke-play entries. Playing entries are ordered by net score ascending
// and receive competition-style positions (tied nets share a position, the
// next group resumes after the tie). DNP entries rank after every playing
// entry with position zero and the configured penalty. The input is not
// mutated.
func ScoreWeek(entries []WeeklyScore, s StrokePlaySettings) []WeeklyScore {
	scored := make([]WeeklyScore, len(entries))
	copy(scored, entries)

	playing := make([]int, 0, len(scored))
	for i := range scored {
		if scored[i].DNP {
			scored[i].Position = 0
			scored[i].Points = s.DNPPenalty
			continue
		}
		playing = append(playing, i)
	}
	sort.SliceStable(playing, func(a, b int) bool {
		return scored[playing[a]].Net < scored[playing[b]].Net
	})

	for start := 0; start < len(playing); {
		end := start + 1
		for end < len(playing) && scored[playing[end]].Net == scored[playing[start]].Net {
			end++
		}

		var positional float64
		switch s.TieMode {
		case TieSplit:
			for ord := start; ord < end; ord++ {
				positional += scaleAt(s.PointScale, ord)
			}
			positional /= float64(end - start)
		default:
			positional = scaleAt(s.PointScale, start)
		}

		beaten := len(playing) - end
		for _, idx := range playing[start:end] {
			scored[idx].Position = start + 1
			scored[idx].Points = positional + s.ShowPoints + s.BeatBonus*float64(beaten)
		}
		start = end
	}

	return scored
}

func scaleAt(scale []float64, ord int) float64 {
	if ord < len(scale) {
		return scale[ord]
	}
	return 0
}

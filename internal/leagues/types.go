// Package leagues implements the scheduling and standings engine for
// recurring golf leagues: round-robin schedule generation, rolling handicap
// calculation, net-score point suggestions, multi-format standings ranking,
// and week-over-week movement tracking.
//
// Every function in this package is a pure transformation of its inputs. The
// engine performs no I/O and holds no shared state, so it is safe to call
// from concurrent goroutines without locking. Persistence, transactions, and
// conflict avoidance belong to the caller.
package leagues

import (
	"errors"
	"fmt"
)

// TeamID identifies a team. The engine treats it as opaque.
type TeamID string

// Team pairs an identifier with a display name. Win/loss/point counters are
// intentionally absent: they are derived on demand by the standings ranker
// from the match log, never cached here.
type Team struct {
	ID   TeamID
	Name string
}

// Pairing is one scheduled meeting in a round. A bye is an explicit variant
// rather than a sentinel team id; construct pairings with NewMatchPairing and
// NewByePairing so downstream code never sees a half-filled struct.
type Pairing struct {
	Week  int
	TeamA TeamID
	TeamB TeamID
	Bye   bool
}

// NewMatchPairing returns a two-team pairing for the given week.
func NewMatchPairing(week int, a, b TeamID) Pairing {
	return Pairing{Week: week, TeamA: a, TeamB: b}
}

// NewByePairing returns a bye entry for the given team and week.
func NewByePairing(week int, team TeamID) Pairing {
	return Pairing{Week: week, TeamA: team, Bye: true}
}

// Teams returns the real teams involved in the pairing (one for a bye).
func (p Pairing) Teams() []TeamID {
	if p.Bye {
		return []TeamID{p.TeamA}
	}
	return []TeamID{p.TeamA, p.TeamB}
}

// Round is one week of scheduled pairings.
type Round struct {
	Week     int
	Pairings []Pairing
}

// Matchup is a played head-to-head result as recorded by the surrounding
// result-entry workflow. Handicaps and nets are stored at recording time and
// are not recomputed by the ranker; see RecalculateHandicaps for the explicit
// league-wide recalculation pass.
type Matchup struct {
	Week          int
	TeamA         TeamID
	TeamB         TeamID
	TeamAGross    int
	TeamBGross    int
	TeamAHandicap int
	TeamBHandicap int
	TeamANet      int
	TeamBNet      int
	TeamAPoints   int
	TeamBPoints   int
	TeamAIsSub    bool
	TeamBIsSub    bool
	IsForfeit     bool
	ForfeitTeam   TeamID
}

// WeeklyScore is one team's stroke-play entry for a single week.
type WeeklyScore struct {
	Team     TeamID
	Week     int
	Gross    int
	Handicap int
	Net      int
	Points   float64
	Position int
	DNP      bool
	Sub      bool
}

// ScoringMode selects how a league ranks its teams.
type ScoringMode string

const (
	ModeMatchPlay  ScoringMode = "match_play"
	ModeStrokePlay ScoringMode = "stroke_play"
	ModeHybrid     ScoringMode = "hybrid"
)

// RoundingMode controls how a computed handicap is rounded.
type RoundingMode string

const (
	RoundFloor RoundingMode = "floor"
	RoundHalf  RoundingMode = "round"
	RoundCeil  RoundingMode = "ceil"
)

// ScoreSelection picks which prior gross scores feed the handicap average.
type ScoreSelection string

const (
	// SelectAll averages every prior score.
	SelectAll ScoreSelection = "all"
	// SelectBestOfLast averages the best BestOf scores from the last OutOf.
	SelectBestOfLast ScoreSelection = "best_of_last"
	// SelectLastN averages the last LastN scores, optionally dropping the
	// DropHighest worst of them first.
	SelectLastN ScoreSelection = "last_n"
)

// HandicapSettings configures CalculateHandicap.
type HandicapSettings struct {
	BaseScore       int
	Multiplier      float64
	Rounding        RoundingMode
	DefaultHandicap int

	// Optional clamps; nil means unclamped.
	MaxHandicap *int
	MinHandicap *int

	Selection   ScoreSelection
	BestOf      int
	OutOf       int
	LastN       int
	DropHighest int

	// WeightRecent in (0,1] blends toward recency-weighted averaging with
	// geometric decay per round of age. Zero disables weighting.
	WeightRecent float64
	Decay        float64

	// ProvisionalWeeks applies ProvisionalMultiplier while a team has fewer
	// than ProvisionalWeeks recorded scores. Zero disables the override.
	ProvisionalWeeks      int
	ProvisionalMultiplier float64

	// ExceptionalCap truncates any single gross score above the cap before
	// averaging. Zero disables the cap.
	ExceptionalCap int
}

// MatchPlaySettings configures head-to-head point conventions.
type MatchPlaySettings struct {
	// PointTotal is the number of points split between the two sides of a
	// normal match. Must be even so an exact tie splits cleanly.
	PointTotal int
	// ForfeitWinnerPoints is awarded to the non-forfeiting side; the
	// forfeiting side receives the remainder of PointTotal.
	ForfeitWinnerPoints int
	// ByePoints is the conventional award for a bye week. The engine does
	// not apply it; the result-recording workflow owns bye credit.
	ByePoints int
}

// TieMode controls how tied stroke-play positions share points.
type TieMode string

const (
	// TieShared gives every tied team the full points for the position.
	TieShared TieMode = "shared"
	// TieSplit averages the points of the positions the tie occupies.
	TieSplit TieMode = "split"
)

// StrokePlaySettings configures field scoring and stroke-play ranking.
type StrokePlaySettings struct {
	// PointScale awards points by finishing position, index 0 = 1st place.
	// Positions past the end of the scale earn zero.
	PointScale []float64
	// ShowPoints is a flat bonus for playing the week (non-DNP).
	ShowPoints float64
	// BeatBonus is awarded per opposing team finishing below the entry.
	BeatBonus float64
	// DNPPenalty is the points recorded for a did-not-play week.
	DNPPenalty float64
	// MaxDNP excludes teams with more than this many DNP weeks from normal
	// ranking; they sort below every non-excluded team. Negative disables.
	MaxDNP int
	// ProRate divides cumulative points by rounds played before comparing.
	ProRate bool
	TieMode TieMode
}

// ScoringConfig is the full league scoring configuration.
type ScoringConfig struct {
	Mode       ScoringMode
	Handicap   HandicapSettings
	MatchPlay  MatchPlaySettings
	StrokePlay StrokePlaySettings
	// HybridFieldWeight blends field points into head-to-head points in
	// hybrid mode. Values outside [0,1] are clamped, not rejected.
	HybridFieldWeight float64
}

// hybridEpsilon absorbs floating-point noise when comparing blended scores.
const hybridEpsilon = 0.001

// Validate rejects configuration combinations that indicate a programming or
// deployment error. Runtime data conditions are reported as values instead.
func (c ScoringConfig) Validate() error {
	switch c.Mode {
	case ModeMatchPlay, ModeStrokePlay, ModeHybrid:
	default:
		return fmt.Errorf("unknown scoring mode %q", c.Mode)
	}
	if err := c.Handicap.validate(); err != nil {
		return fmt.Errorf("handicap settings: %w", err)
	}
	if c.MatchPlay.PointTotal <= 0 {
		return errors.New("match play point total must be positive")
	}
	if c.MatchPlay.PointTotal%2 != 0 {
		return errors.New("match play point total must be even")
	}
	if c.MatchPlay.ForfeitWinnerPoints < 0 || c.MatchPlay.ForfeitWinnerPoints > c.MatchPlay.PointTotal {
		return errors.New("forfeit winner points must be within the match point total")
	}
	switch c.StrokePlay.TieMode {
	case TieShared, TieSplit, "":
	default:
		return fmt.Errorf("unknown tie mode %q", c.StrokePlay.TieMode)
	}
	return nil
}

func (s HandicapSettings) validate() error {
	switch s.Rounding {
	case RoundFloor, RoundHalf, RoundCeil:
	default:
		return fmt.Errorf("unknown rounding mode %q", s.Rounding)
	}
	switch s.Selection {
	case SelectAll, "":
	case SelectBestOfLast:
		if s.BestOf <= 0 || s.OutOf <= 0 || s.BestOf > s.OutOf {
			return fmt.Errorf("best_of_last requires 0 < best (%d) <= out of (%d)", s.BestOf, s.OutOf)
		}
	case SelectLastN:
		if s.LastN <= 0 {
			return errors.New("last_n requires a positive window")
		}
		if s.DropHighest < 0 || s.DropHighest >= s.LastN {
			return fmt.Errorf("drop highest %d must be within the last_n window %d", s.DropHighest, s.LastN)
		}
	default:
		return fmt.Errorf("unknown score selection %q", s.Selection)
	}
	if s.Multiplier < 0 {
		return errors.New("multiplier must not be negative")
	}
	if s.WeightRecent < 0 || s.WeightRecent > 1 {
		return errors.New("weight recent must be within [0, 1]")
	}
	if s.WeightRecent > 0 && (s.Decay <= 0 || s.Decay > 1) {
		return errors.New("decay must be within (0, 1] when recency weighting is enabled")
	}
	if s.ProvisionalWeeks < 0 {
		return errors.New("provisional weeks must not be negative")
	}
	if s.MinHandicap != nil && s.MaxHandicap != nil && *s.MinHandicap > *s.MaxHandicap {
		return errors.New("min handicap exceeds max handicap")
	}
	return nil
}

// clampedFieldWeight returns the hybrid field weight clamped to [0, 1].
func (c ScoringConfig) clampedFieldWeight() float64 {
	w := c.HybridFieldWeight
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

package leagues

import (
	"testing"
)

func fourTeams() []Team {
	return []Team{
		{ID: "a", Name: "Aces"},
		{ID: "b", Name: "Birdies"},
		{ID: "c", Name: "Chips"},
		{ID: "d", Name: "Duffers"},
	}
}

func makeConfig(mode ScoringMode) ScoringConfig {
	return ScoringConfig{
		Mode: mode,
		Handicap: HandicapSettings{
			BaseScore:  35,
			Multiplier: 0.9,
			Rounding:   RoundFloor,
			Selection:  SelectAll,
		},
		MatchPlay: MatchPlaySettings{
			PointTotal:          20,
			ForfeitWinnerPoints: 14,
		},
		StrokePlay: StrokePlaySettings{
			PointScale: []float64{10, 8, 6, 4},
			MaxDNP:     -1,
			TieMode:    TieShared,
		},
		HybridFieldWeight: 0.5,
	}
}

func rankOf(t *testing.T, standings []Standing, id TeamID) Standing {
	t.Helper()
	for _, s := range standings {
		if s.Team.ID == id {
			return s
		}
	}
	t.Fatalf("team %q missing from standings", id)
	return Standing{}
}

func TestRankStandings_MatchPlay(t *testing.T) {
	matchups := []Matchup{
		{Week: 1, TeamA: "a", TeamB: "b", TeamAPoints: 12, TeamBPoints: 8,
			TeamANet: 34, TeamBNet: 36, TeamAHandicap: 5, TeamBHandicap: 6},
		{Week: 1, TeamA: "c", TeamB: "d", TeamAPoints: 14, TeamBPoints: 6,
			TeamANet: 33, TeamBNet: 39, TeamAHandicap: 4, TeamBHandicap: 8},
		{Week: 2, TeamA: "a", TeamB: "c", TeamAPoints: 8, TeamBPoints: 12,
			TeamANet: 36, TeamBNet: 34, TeamAHandicap: 5, TeamBHandicap: 4},
		{Week: 2, TeamA: "b", TeamB: "d", TeamAPoints: 12, TeamBPoints: 8,
			TeamANet: 35, TeamBNet: 37, TeamAHandicap: 6, TeamBHandicap: 8},
	}

	standings, err := RankStandings(makeConfig(ModeMatchPlay), fourTeams(), matchups, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Chips lead on 26. Aces and Birdies are level on 20 points and 1 win;
	// the head-to-head meeting (12-8 to the Aces) orders them, but they
	// still share a rank because the primary key is tied.
	if standings[0].Team.ID != "c" || standings[1].Team.ID != "a" || standings[2].Team.ID != "b" {
		t.Fatalf("unexpected order: %q %q %q %q",
			standings[0].Team.ID, standings[1].Team.ID, standings[2].Team.ID, standings[3].Team.ID)
	}

	c := rankOf(t, standings, "c")
	if c.Rank != 1 || c.Wins != 2 || c.TotalPoints != 26 {
		t.Errorf("Chips: rank %d, %d wins, %.0f points", c.Rank, c.Wins, c.TotalPoints)
	}

	a := rankOf(t, standings, "a")
	b := rankOf(t, standings, "b")
	if a.Rank != 2 || b.Rank != 2 {
		t.Errorf("tied teams got ranks %d and %d, expected both 2", a.Rank, b.Rank)
	}
	if a.NetDifferential != 0 {
		t.Errorf("Aces net differential = %d, expected 0 (+2 and -2)", a.NetDifferential)
	}
	if a.Handicap != 5 {
		t.Errorf("Aces handicap = %d, expected 5", a.Handicap)
	}

	d := rankOf(t, standings, "d")
	if d.Rank != 4 || d.Losses != 2 {
		t.Errorf("Duffers: rank %d with %d losses", d.Rank, d.Losses)
	}
}

func TestRankStandings_DenseRanking(t *testing.T) {
	// Three teams on identical points share rank 1; the next rank is 4.
	matchups := []Matchup{
		{Week: 1, TeamA: "a", TeamB: "d", TeamAPoints: 20, TeamANet: 30, TeamBNet: 40},
		{Week: 2, TeamA: "b", TeamB: "d", TeamAPoints: 20, TeamANet: 30, TeamBNet: 40},
		{Week: 3, TeamA: "c", TeamB: "d", TeamAPoints: 20, TeamANet: 30, TeamBNet: 40},
	}

	standings, err := RankStandings(makeConfig(ModeMatchPlay), fourTeams(), matchups, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantRanks := []int{1, 1, 1, 4}
	for i, want := range wantRanks {
		if standings[i].Rank != want {
			t.Errorf("position %d: rank %d, expected %d", i, standings[i].Rank, want)
		}
	}
}

func TestRankStandings_ForfeitCountsAsResultOnly(t *testing.T) {
	matchups := []Matchup{
		{Week: 1, TeamA: "a", TeamB: "b", IsForfeit: true, ForfeitTeam: "b",
			TeamAPoints: 14, TeamBPoints: 6, TeamAHandicap: 5, TeamBHandicap: 6},
	}

	standings, err := RankStandings(makeConfig(ModeMatchPlay), fourTeams(), matchups, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := rankOf(t, standings, "a")
	if a.Wins != 1 || a.TotalPoints != 14 {
		t.Errorf("winner: %d wins, %.0f points", a.Wins, a.TotalPoints)
	}
	// A forfeit carries no play, so nothing feeds nets or handicaps.
	if a.NetDifferential != 0 || a.Handicap != 0 {
		t.Errorf("forfeit polluted play stats: netDiff %d, handicap %d", a.NetDifferential, a.Handicap)
	}

	b := rankOf(t, standings, "b")
	if b.Losses != 1 || b.TotalPoints != 6 {
		t.Errorf("forfeiting side: %d losses, %.0f points", b.Losses, b.TotalPoints)
	}
}

func TestRankStandings_StrokePlayExclusion(t *testing.T) {
	cfg := makeConfig(ModeStrokePlay)
	cfg.StrokePlay.MaxDNP = 1

	weekly := []WeeklyScore{
		{Team: "a", Week: 1, Net: 34, Points: 10, Position: 1},
		{Team: "a", Week: 2, Net: 35, Points: 8, Position: 2},
		{Team: "b", Week: 1, Net: 36, Points: 8, Position: 2},
		{Team: "b", Week: 2, Net: 33, Points: 10, Position: 1},
		// Huge points cannot save a team past the DNP limit.
		{Team: "c", Week: 1, DNP: true},
		{Team: "c", Week: 2, DNP: true},
		{Team: "c", Week: 3, Net: 30, Points: 100, Position: 1},
	}

	standings, err := RankStandings(cfg, fourTeams()[:3], nil, weekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := standings[len(standings)-1]
	if c.Team.ID != "c" {
		t.Fatalf("excluded team should rank last, got %q", c.Team.ID)
	}
	if !c.Excluded || c.ExcludedReason == "" {
		t.Errorf("expected an exclusion with a reason, got %+v", c)
	}
	if c.TotalPoints != 0 {
		t.Errorf("excluded total displays %.0f, expected 0", c.TotalPoints)
	}
	if c.FieldPoints != 100 {
		t.Errorf("raw field points = %.0f, expected 100 preserved", c.FieldPoints)
	}
}

func TestRankStandings_StrokePlayCountingMethod(t *testing.T) {
	weekly := []WeeklyScore{
		// Both teams total 16 points; the Aces' first-place week breaks it.
		{Team: "a", Week: 1, Net: 34, Points: 10, Position: 1},
		{Team: "a", Week: 2, Net: 38, Points: 6, Position: 3},
		{Team: "b", Week: 1, Net: 36, Points: 8, Position: 2},
		{Team: "b", Week: 2, Net: 36, Points: 8, Position: 2},
	}

	standings, err := RankStandings(makeConfig(ModeStrokePlay), fourTeams()[:2], nil, weekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if standings[0].Team.ID != "a" {
		t.Errorf("counting method should favor the Aces, got %q first", standings[0].Team.ID)
	}
	// The primary key is still tied, so the rank is shared.
	if standings[0].Rank != 1 || standings[1].Rank != 1 {
		t.Errorf("ranks %d and %d, expected a shared 1", standings[0].Rank, standings[1].Rank)
	}
}

func TestRankStandings_StrokePlayProRate(t *testing.T) {
	cfg := makeConfig(ModeStrokePlay)
	cfg.StrokePlay.ProRate = true

	weekly := []WeeklyScore{
		{Team: "a", Week: 1, Net: 34, Points: 10, Position: 1},
		{Team: "a", Week: 2, Net: 34, Points: 10, Position: 1},
		{Team: "a", Week: 3, Net: 34, Points: 10, Position: 1},
		{Team: "b", Week: 1, Net: 35, Points: 12, Position: 1},
		{Team: "b", Week: 2, Net: 35, Points: 12, Position: 1},
	}

	standings, err := RankStandings(cfg, fourTeams()[:2], nil, weekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if standings[0].Team.ID != "b" {
		t.Errorf("pro-rating should favor the Birdies' 12.0 average, got %q first", standings[0].Team.ID)
	}
	if standings[0].TotalPoints != 12 {
		t.Errorf("pro-rated total = %.1f, expected 12.0", standings[0].TotalPoints)
	}
}

func TestRankStandings_HybridBlend(t *testing.T) {
	matchups := []Matchup{
		{Week: 1, TeamA: "a", TeamB: "c", TeamAPoints: 20, TeamBPoints: 0, TeamANet: 32, TeamBNet: 40},
		{Week: 1, TeamA: "b", TeamB: "d", TeamAPoints: 16, TeamBPoints: 4, TeamANet: 34, TeamBNet: 38},
	}
	weekly := []WeeklyScore{
		{Team: "a", Week: 1, Net: 32, Points: 10, Position: 2},
		{Team: "b", Week: 1, Net: 34, Points: 12, Position: 1},
	}

	standings, err := RankStandings(makeConfig(ModeHybrid), fourTeams(), matchups, weekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Blend at weight 0.5: Aces 20*0.5 + 10*0.5 = 15, Birdies 16*0.5 + 12*0.5 = 14.
	if standings[0].Team.ID != "a" {
		t.Errorf("expected the Aces first, got %q", standings[0].Team.ID)
	}
	if standings[0].TotalPoints != 15 {
		t.Errorf("blended total = %.1f, expected 15.0", standings[0].TotalPoints)
	}
}

func TestRankStandings_HybridEpsilonTie(t *testing.T) {
	// Equal blends within the tolerance fall through to wins.
	matchups := []Matchup{
		{Week: 1, TeamA: "a", TeamB: "c", TeamAPoints: 20, TeamBPoints: 0, TeamANet: 32, TeamBNet: 40},
		{Week: 1, TeamA: "b", TeamB: "d", TeamAPoints: 10, TeamBPoints: 10, TeamANet: 36, TeamBNet: 36},
	}
	weekly := []WeeklyScore{
		{Team: "a", Week: 1, Net: 32, Points: 10, Position: 1},
		{Team: "b", Week: 1, Net: 36, Points: 20, Position: 2},
	}

	standings, err := RankStandings(makeConfig(ModeHybrid), fourTeams(), matchups, weekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if standings[0].Team.ID != "a" {
		t.Errorf("win count should break the blended tie for the Aces, got %q", standings[0].Team.ID)
	}
	if standings[0].Rank != 1 || standings[1].Rank != 1 {
		t.Errorf("ranks %d and %d, expected a shared 1 within the tolerance", standings[0].Rank, standings[1].Rank)
	}
}

func TestRankStandingsThroughWeek(t *testing.T) {
	matchups := []Matchup{
		{Week: 1, TeamA: "a", TeamB: "b", TeamAPoints: 12, TeamBPoints: 8},
		{Week: 2, TeamA: "a", TeamB: "b", TeamAPoints: 2, TeamBPoints: 18},
	}

	standings, err := RankStandingsThroughWeek(makeConfig(ModeMatchPlay), fourTeams()[:2], matchups, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := rankOf(t, standings, "a")
	if a.TotalPoints != 12 || a.MatchesPlayed != 1 {
		t.Errorf("week-1 snapshot leaked later weeks: %.0f points over %d matches", a.TotalPoints, a.MatchesPlayed)
	}
}

func TestRankStandings_RejectsInvalidConfig(t *testing.T) {
	cfg := makeConfig("skins")
	if _, err := RankStandings(cfg, fourTeams(), nil, nil); err == nil {
		t.Error("expected an unknown-mode error")
	}

	cfg = makeConfig(ModeMatchPlay)
	cfg.MatchPlay.PointTotal = 19
	if _, err := RankStandings(cfg, fourTeams(), nil, nil); err == nil {
		t.Error("expected an odd point total to be rejected")
	}
}

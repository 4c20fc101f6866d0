// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rfletch/foreleague/internal/leagues"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if err := cfg.ScoringConfig().Validate(); err != nil {
		t.Fatalf("default scoring config should validate: %v", err)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "league.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `app:
  name: "testleague"
scoring:
  mode: "stroke_play"
  handicap:
    base_score: 36
    max_handicap: 12
simulation:
  teams: 10
  weeks: 9
  double: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Name != "testleague" {
		t.Errorf("app name = %q, expected testleague", cfg.App.Name)
	}
	if cfg.Scoring.Mode != string(leagues.ModeStrokePlay) {
		t.Errorf("mode = %q, expected stroke_play", cfg.Scoring.Mode)
	}
	if cfg.Scoring.Handicap.BaseScore != 36 {
		t.Errorf("base score = %d, expected 36", cfg.Scoring.Handicap.BaseScore)
	}
	if cfg.Scoring.Handicap.MaxHandicap == nil || *cfg.Scoring.Handicap.MaxHandicap != 12 {
		t.Errorf("max handicap = %v, expected 12", cfg.Scoring.Handicap.MaxHandicap)
	}
	if cfg.Simulation.Teams != 10 || cfg.Simulation.Weeks != 9 || cfg.Simulation.Double {
		t.Errorf("simulation settings not applied: %+v", cfg.Simulation)
	}

	// Unspecified fields keep their defaults.
	if cfg.Scoring.MatchPlay.PointTotal != 20 {
		t.Errorf("point total = %d, expected the default 20", cfg.Scoring.MatchPlay.PointTotal)
	}
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	path := writeConfig(t, `app:
  name: "testleague"
  environment: "production"
  log_level: "info"
`)

	t.Setenv("FORELEAGUE_ENVIRONMENT", "staging")
	t.Setenv("FORELEAGUE_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Environment != "staging" {
		t.Errorf("environment = %q, expected staging", cfg.App.Environment)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("log level = %q, expected debug", cfg.App.LogLevel)
	}
}

func TestLoad_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing app name", `app:
  name: ""
`},
		{"odd point total", `scoring:
  match_play:
    point_total: 19
`},
		{"unknown mode", `scoring:
  mode: "skins"
`},
		{"sub chance out of range", `simulation:
  sub_chance: 1.5
`},
		{"not yaml", `{{{`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Error("expected the config to be rejected")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected a read error for a missing file")
	}
}

func TestScoringConfigConversion(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Mode = string(leagues.ModeHybrid)
	cfg.Scoring.HybridFieldWeight = 0.3
	cfg.Scoring.Handicap.Selection = string(leagues.SelectLastN)
	cfg.Scoring.Handicap.LastN = 5
	cfg.Scoring.StrokePlay.TieMode = string(leagues.TieSplit)

	scoring := cfg.ScoringConfig()
	if scoring.Mode != leagues.ModeHybrid {
		t.Errorf("mode = %q", scoring.Mode)
	}
	if scoring.HybridFieldWeight != 0.3 {
		t.Errorf("field weight = %v", scoring.HybridFieldWeight)
	}
	if scoring.Handicap.Selection != leagues.SelectLastN || scoring.Handicap.LastN != 5 {
		t.Errorf("selection not carried: %+v", scoring.Handicap)
	}
	if scoring.StrokePlay.TieMode != leagues.TieSplit {
		t.Errorf("tie mode = %q", scoring.StrokePlay.TieMode)
	}
	if err := scoring.Validate(); err != nil {
		t.Errorf("converted config should validate: %v", err)
	}
}

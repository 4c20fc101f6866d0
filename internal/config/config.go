// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rfletch/foreleague/internal/leagues"
)

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		LogLevel    string `yaml:"log_level"`
	} `yaml:"app"`

	Scoring    ScoringConfig    `yaml:"scoring"`
	Simulation SimulationConfig `yaml:"simulation"`
}

type ScoringConfig struct {
	Mode              string             `yaml:"mode"`
	HybridFieldWeight float64            `yaml:"hybrid_field_weight"`
	Handicap          HandicapConfig     `yaml:"handicap"`
	MatchPlay         MatchPlayConfig    `yaml:"match_play"`
	StrokePlay        StrokePlayConfig   `yaml:"stroke_play"`
}

type HandicapConfig struct {
	BaseScore             int     `yaml:"base_score"`
	Multiplier            float64 `yaml:"multiplier"`
	Rounding              string  `yaml:"rounding"`
	DefaultHandicap       int     `yaml:"default_handicap"`
	MaxHandicap           *int    `yaml:"max_handicap,omitempty"`
	MinHandicap           *int    `yaml:"min_handicap,omitempty"`
	Selection             string  `yaml:"selection"`
	BestOf                int     `yaml:"best_of"`
	OutOf                 int     `yaml:"out_of"`
	LastN                 int     `yaml:"last_n"`
	DropHighest           int     `yaml:"drop_highest"`
	WeightRecent          float64 `yaml:"weight_recent"`
	Decay                 float64 `yaml:"decay"`
	ProvisionalWeeks      int     `yaml:"provisional_weeks"`
	ProvisionalMultiplier float64 `yaml:"provisional_multiplier"`
	ExceptionalCap        int     `yaml:"exceptional_cap"`
}

type MatchPlayConfig struct {
	PointTotal          int `yaml:"point_total"`
	ForfeitWinnerPoints int `yaml:"forfeit_winner_points"`
	ByePoints           int `yaml:"bye_points"`
}

type StrokePlayConfig struct {
	PointScale []float64 `yaml:"point_scale"`
	ShowPoints float64   `yaml:"show_points"`
	BeatBonus  float64   `yaml:"beat_bonus"`
	DNPPenalty float64   `yaml:"dnp_penalty"`
	MaxDNP     int       `yaml:"max_dnp"`
	ProRate    bool      `yaml:"pro_rate"`
	TieMode    string    `yaml:"tie_mode"`
}

type SimulationConfig struct {
	Teams         int     `yaml:"teams"`
	Weeks         int     `yaml:"weeks"`
	Double        bool    `yaml:"double"`
	StartWeek     int     `yaml:"start_week"`
	Seed          int64   `yaml:"seed"`
	SubChance     float64 `yaml:"sub_chance"`
	ForfeitChance float64 `yaml:"forfeit_chance"`
}

// Load loads both .env and yaml configuration.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Environment wins over the file for deploy-specific knobs.
	if env := os.Getenv("FORELEAGUE_ENVIRONMENT"); env != "" {
		cfg.App.Environment = env
	}
	if level := os.Getenv("FORELEAGUE_LOG_LEVEL"); level != "" {
		cfg.App.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns the reference league configuration: 20-point matches and a
// 90% handicap off a base score of 35.
func Default() *Config {
	cfg := &Config{}
	cfg.App.Name = "foreleague"
	cfg.App.Environment = "development"
	cfg.App.LogLevel = "info"
	cfg.Scoring = ScoringConfig{
		Mode:              string(leagues.ModeMatchPlay),
		HybridFieldWeight: 0.5,
		Handicap: HandicapConfig{
			BaseScore:       35,
			Multiplier:      0.9,
			Rounding:        string(leagues.RoundFloor),
			DefaultHandicap: 0,
			Selection:       string(leagues.SelectAll),
		},
		MatchPlay: MatchPlayConfig{
			PointTotal:          20,
			ForfeitWinnerPoints: 14,
			ByePoints:           10,
		},
		StrokePlay: StrokePlayConfig{
			PointScale: []float64{10, 8, 6, 4, 2, 1},
			ShowPoints: 1,
			MaxDNP:     3,
			TieMode:    string(leagues.TieShared),
		},
	}
	cfg.Simulation = SimulationConfig{
		Teams:         8,
		Weeks:         14,
		Double:        true,
		StartWeek:     1,
		Seed:          1,
		SubChance:     0.05,
		ForfeitChance: 0.02,
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.Simulation.Teams < 0 || c.Simulation.Weeks < 0 {
		return fmt.Errorf("simulation team and week counts must not be negative")
	}
	if c.Simulation.SubChance < 0 || c.Simulation.SubChance > 1 {
		return fmt.Errorf("sub chance must be within [0, 1]")
	}
	if c.Simulation.ForfeitChance < 0 || c.Simulation.ForfeitChance > 1 {
		return fmt.Errorf("forfeit chance must be within [0, 1]")
	}
	// The engine owns the detailed scoring rules; fail fast here so a bad
	// file never reaches a ranking call.
	if err := c.ScoringConfig().Validate(); err != nil {
		return err
	}
	return nil
}

// ScoringConfig converts the file representation into the engine's types.
func (c *Config) ScoringConfig() leagues.ScoringConfig {
	h := c.Scoring.Handicap
	return leagues.ScoringConfig{
		Mode:              leagues.ScoringMode(c.Scoring.Mode),
		HybridFieldWeight: c.Scoring.HybridFieldWeight,
		Handicap: leagues.HandicapSettings{
			BaseScore:             h.BaseScore,
			Multiplier:            h.Multiplier,
			Rounding:              leagues.RoundingMode(h.Rounding),
			DefaultHandicap:       h.DefaultHandicap,
			MaxHandicap:           h.MaxHandicap,
			MinHandicap:           h.MinHandicap,
			Selection:             leagues.ScoreSelection(h.Selection),
			BestOf:                h.BestOf,
			OutOf:                 h.OutOf,
			LastN:                 h.LastN,
			DropHighest:           h.DropHighest,
			WeightRecent:          h.WeightRecent,
			Decay:                 h.Decay,
			ProvisionalWeeks:      h.ProvisionalWeeks,
			ProvisionalMultiplier: h.ProvisionalMultiplier,
			ExceptionalCap:        h.ExceptionalCap,
		},
		MatchPlay: leagues.MatchPlaySettings{
			PointTotal:          c.Scoring.MatchPlay.PointTotal,
			ForfeitWinnerPoints: c.Scoring.MatchPlay.ForfeitWinnerPoints,
			ByePoints:           c.Scoring.MatchPlay.ByePoints,
		},
		StrokePlay: leagues.StrokePlaySettings{
			PointScale: c.Scoring.StrokePlay.PointScale,
			ShowPoints: c.Scoring.StrokePlay.ShowPoints,
			BeatBonus:  c.Scoring.StrokePlay.BeatBonus,
			DNPPenalty: c.Scoring.StrokePlay.DNPPenalty,
			MaxDNP:     c.Scoring.StrokePlay.MaxDNP,
			ProRate:    c.Scoring.StrokePlay.ProRate,
			TieMode:    leagues.TieMode(c.Scoring.StrokePlay.TieMode),
		},
	}
}

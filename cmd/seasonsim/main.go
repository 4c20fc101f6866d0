// cmd/seasonsim/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rfletch/foreleague/internal/config"
	"github.com/rfletch/foreleague/internal/leagues"
	"github.com/rfletch/foreleague/internal/simulation"
)

func setupLogger(environment, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if parsed, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(parsed)
	}
}

func main() {
	configPath := flag.String("config", "", "path to league config yaml (defaults to built-in reference config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load configuration")
		}
		cfg = loaded
	}

	setupLogger(cfg.App.Environment, cfg.App.LogLevel)

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("Simulation failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	scoring := cfg.ScoringConfig()

	season, err := simulation.RunSeason(simulation.Settings{
		Teams:         cfg.Simulation.Teams,
		Weeks:         cfg.Simulation.Weeks,
		Double:        cfg.Simulation.Double,
		StartWeek:     cfg.Simulation.StartWeek,
		Seed:          cfg.Simulation.Seed,
		SubChance:     cfg.Simulation.SubChance,
		ForfeitChance: cfg.Simulation.ForfeitChance,
	}, scoring)
	if err != nil {
		return fmt.Errorf("simulating season: %w", err)
	}

	teamIDs := make([]leagues.TeamID, len(season.Teams))
	for i, t := range season.Teams {
		teamIDs[i] = t.ID
	}
	report := leagues.ValidateSchedule(season.Plan.Rounds, teamIDs)
	if !report.Valid {
		return fmt.Errorf("generated schedule failed validation: %s", strings.Join(report.Errors, "; "))
	}

	standings, err := leagues.RankStandings(scoring, season.Teams, season.Matchups, season.WeeklyScores)
	if err != nil {
		return fmt.Errorf("ranking standings: %w", err)
	}
	movements, err := leagues.TrackMovement(scoring, season.Teams, season.Matchups, season.WeeklyScores)
	if err != nil {
		return fmt.Errorf("tracking movement: %w", err)
	}

	printStandings(os.Stdout, scoring, standings, movements)
	return nil
}

func printStandings(out *os.File, scoring leagues.ScoringConfig, standings []leagues.Standing, movements []leagues.Movement) {
	moveByTeam := make(map[leagues.TeamID]leagues.Movement, len(movements))
	for _, m := range movements {
		moveByTeam[m.Team.ID] = m
	}

	fmt.Fprintf(out, "Final standings (%s)\n\n", scoring.Mode)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTEAM\tW\tL\tT\tPTS\tHCP\tMOVE")
	for _, s := range standings {
		name := s.Team.Name
		if s.Excluded {
			name += " *"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%.1f\t%d\t%s\n",
			s.Rank, name, s.Wins, s.Losses, s.Ties, s.TotalPoints, s.Handicap,
			formatMove(moveByTeam[s.Team.ID].RankChange))
	}
	w.Flush()
}

func formatMove(rankChange *int) string {
	switch {
	case rankChange == nil:
		return "-"
	case *rankChange > 0:
		return fmt.Sprintf("up %d", *rankChange)
	case *rankChange < 0:
		return fmt.Sprintf("down %d", -*rankChange)
	default:
		return "even"
	}
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"nogo/agent"
	"nogo/engine"
	"nogo/experiments/metrics"
	"nogo/game"
)

type matchup struct {
	games int
	black string
	white string
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	m := matchup{
		games: 10,
		black: "name=mcts role=black search=MCTS fix_sim=200 unst=2",
		white: "name=baseline role=white search=random",
	}

	fmt.Printf("Running arena: %q vs %q, %d games\n", m.black, m.white, m.games)
	games, moves := runMatchup(m)

	report(m, games, moves)
}

func runMatchup(m matchup) ([]metrics.GameMetric, []metrics.SearchMetric) {
	var games []metrics.GameMetric
	var moves []metrics.SearchMetric
	for i := 0; i < m.games; i++ {
		black, err := agent.New(m.black)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to construct black agent")
		}
		white, err := agent.New(m.white)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to construct white agent")
		}

		e, err := engine.Local(black, white, game.NewBoard())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up engine")
		}

		start := time.Now()
		winner, err := e.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("game aborted")
		}

		games = append(games, metrics.GameMetric{
			Winner:   winner,
			Moves:    len(e.Moves),
			Duration: time.Since(start),
		})
		moves = append(moves, e.Moves...)
	}
	return games, moves
}

func report(m matchup, games []metrics.GameMetric, moves []metrics.SearchMetric) {
	wins := metrics.Tally(games)
	summary := metrics.Summarize(moves)

	fmt.Println()
	fmt.Println(termenv.String("Arena results").Bold())
	fmt.Printf("  %s %d\n", styled("black wins:", termenv.ANSIGreen), wins[game.Black])
	fmt.Printf("  %s %d\n", styled("white wins:", termenv.ANSIRed), wins[game.White])
	fmt.Printf("  games: %d\n", len(games))
	fmt.Printf("  searched moves: %d, mean sims/move: %.1f (stddev %.1f)\n",
		summary.Moves, summary.MeanSims, summary.StdSims)
	fmt.Printf("  mean sims/sec: %.0f, early stops: %d, unstable bursts: %d\n",
		summary.MeanSimsPerSec, summary.EarlyStops, summary.UnstableBursts)
}

func styled(s string, color termenv.Color) termenv.Style {
	return termenv.String(s).Foreground(color)
}

// Package metrics collects per-search diagnostics and summarizes them
// across moves and games.
package metrics

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"nogo/searcher"
)

// SearchMetric captures one turn's search effort.
type SearchMetric struct {
	Simulations    int
	Rollouts       int
	Thinking       time.Duration
	Elapsed        time.Duration
	SimsPerSec     float64
	EarlyStop      bool
	UnstableBursts int
}

// FromReport converts a searcher turn report.
func FromReport(r searcher.Report) SearchMetric {
	return SearchMetric{
		Simulations:    r.Simulations,
		Rollouts:       r.Rollouts,
		Thinking:       r.Thinking,
		Elapsed:        r.Elapsed,
		SimsPerSec:     r.SimsPerSec,
		EarlyStop:      r.EarlyStop,
		UnstableBursts: r.UnstableBursts,
	}
}

// GameMetric captures one finished episode.
type GameMetric struct {
	Episode  string
	Winner   string
	Moves    int
	Duration time.Duration
}

// SearchSummary aggregates per-move search metrics.
type SearchSummary struct {
	Moves          int
	MeanSims       float64
	StdSims        float64
	MeanSimsPerSec float64
	EarlyStops     int
	UnstableBursts int
}

// Summarize reduces per-move metrics to means and spreads.
func Summarize(moves []SearchMetric) SearchSummary {
	s := SearchSummary{Moves: len(moves)}
	if len(moves) == 0 {
		return s
	}
	sims := make([]float64, len(moves))
	rates := make([]float64, len(moves))
	for i, m := range moves {
		sims[i] = float64(m.Simulations)
		rates[i] = m.SimsPerSec
		if m.EarlyStop {
			s.EarlyStops++
		}
		s.UnstableBursts += m.UnstableBursts
	}
	s.MeanSims = stat.Mean(sims, nil)
	s.StdSims = stat.StdDev(sims, nil)
	s.MeanSimsPerSec = stat.Mean(rates, nil)
	return s
}

// Tally counts winners across games.
func Tally(games []GameMetric) map[string]int {
	wins := make(map[string]int)
	for _, g := range games {
		wins[g.Winner]++
	}
	return wins
}

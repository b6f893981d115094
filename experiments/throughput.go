package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
)

// ThroughputGoroutines are the worker counts compared by RunThroughputExperiment.
var ThroughputGoroutines = []int{1, 2, 4, 8}

// RunThroughputExperiment searches the empty n×n board once per worker count and records
// how long each search took. Every run must agree on the move.
func RunThroughputExperiment(ctx context.Context, n int, depth searcher.Depth, outDir string) ([]metrics.SearchMetric, error) {
	b, err := game.NewBoard(n)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("starting throughput experiment on %dx%d at depth %s...", n, n, depth)

	results := make([]metrics.SearchMetric, 0, len(ThroughputGoroutines))
	var first *game.Move
	for _, goroutines := range ThroughputGoroutines {
		minimax := searcher.NewMinimax(searcher.WithGoroutines(goroutines), searcher.WithMetrics())
		result, err := minimax.Search(ctx, b, game.O, depth)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = &result.Move
		} else if *first != result.Move {
			return nil, fmt.Errorf("%d goroutines chose %s, sequential search chose %s", goroutines, result.Move, *first)
		}

		m := result.Metric
		log.Info().Msgf("goroutines=%d nodes=%d cutoffs=%d duration=%s (%.0f nodes/s)",
			goroutines, m.Nodes, m.Cutoffs, m.Duration, nodesPerSecond(m.Nodes, m.Duration))
		results = append(results, m)
	}

	writer, err := metrics.NewWriter(outDir, "throughput")
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSearchMetrics(results); err != nil {
		return nil, fmt.Errorf("failed to write search metrics: %w", err)
	}
	log.Info().Msgf("stored throughput results in %s", writer.Dir())
	return results, nil
}

func nodesPerSecond(nodes int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(nodes) / d.Seconds()
}

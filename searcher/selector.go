package searcher

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// Result is the outcome of a top-level search.
type Result struct {
	Move   game.Move
	Score  Score
	Metric metrics.SearchMetric
}

// BestMove picks O's move on b using the default searcher.
func BestMove(b *game.Board, depth Depth) (game.Move, error) {
	return defaultMinimax.BestMove(b, depth)
}

func (m *Minimax) BestMove(b *game.Board, depth Depth) (game.Move, error) {
	return m.BestMoveFor(b, game.O, depth)
}

// BestMoveFor picks the move for me, scoring positions from me's side.
func (m *Minimax) BestMoveFor(b *game.Board, me game.Mark, depth Depth) (game.Move, error) {
	result, err := m.Search(context.Background(), b, me, depth)
	return result.Move, err
}

// Search scores every empty cell as me's next move and keeps the first strictly best one,
// so ties go to the earliest cell in row-major order. Each candidate is searched with its
// own (-inf, +inf) window. ctx is checked between candidates only.
func (m *Minimax) Search(ctx context.Context, b *game.Board, me game.Mark, depth Depth) (Result, error) {
	if !me.IsPlayer() {
		return Result{}, game.ErrInvalidMark
	}
	candidates := game.EmptyCells(b)
	if len(candidates) == 0 {
		return Result{}, ErrNoMoveAvailable
	}

	stats := m.newCollector()
	stats.Start(m.goroutines, depth.String(), len(candidates))

	scores, err := m.scoreCandidates(ctx, b, me, depth, candidates, stats)
	if err != nil {
		return Result{}, fmt.Errorf("search interrupted: %w", err)
	}

	bestIndex, bestScore := -1, NegInfinity
	for i, score := range scores {
		if score > bestScore {
			bestIndex, bestScore = i, score
		}
	}

	return Result{
		Move:   candidates[bestIndex],
		Score:  bestScore,
		Metric: stats.Complete(int(bestScore)),
	}, nil
}

func (m *Minimax) scoreCandidates(ctx context.Context, b *game.Board, me game.Mark, depth Depth, candidates []game.Move, stats metrics.Collector) ([]Score, error) {
	scores := make([]Score, len(candidates))
	score := func(i int) {
		child := play(b, candidates[i], me)
		scores[i] = m.search(child, me, depth, NegInfinity, Infinity, false, stats)
	}

	if m.goroutines <= 1 || len(candidates) == 1 {
		for i := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			score(i)
		}
		return scores, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.goroutines)
	for i := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			score(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

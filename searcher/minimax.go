package searcher

import (
	"fmt"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// Minimax searches tic-tac-toe positions with alpha-beta pruning. It holds configuration
// only, so one value can serve concurrent searches.
type Minimax struct {
	goroutines   int
	tracer       Tracer
	newCollector func() metrics.Collector
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		goroutines:   1,
		tracer:       noTracer{},
		newCollector: metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

var defaultMinimax = NewMinimax()

// Evaluate scores b for O, the conventional maximizer, with a fresh (-inf, +inf) window.
func Evaluate(b *game.Board, depth Depth, maximizing bool) Score {
	return defaultMinimax.Evaluate(b, game.O, depth, NegInfinity, Infinity, maximizing)
}

// Evaluate scores b for the maximizer me. maximizing tells whether me is to move.
func (m *Minimax) Evaluate(b *game.Board, me game.Mark, depth Depth, alpha, beta Score, maximizing bool) Score {
	return m.search(b, me, depth, alpha, beta, maximizing, metrics.NewDummyCollector())
}

func (m *Minimax) search(b *game.Board, me game.Mark, depth Depth, alpha, beta Score, maximizing bool, stats metrics.Collector) Score {
	stats.AddNode()

	if game.IsWinner(b, me) {
		return Win
	} else if game.IsWinner(b, me.Opponent()) {
		return Loss
	} else if game.IsFull(b) {
		return Draw
	}
	// An undecided position at the horizon counts as a draw.
	if depth.Exhausted() {
		return Draw
	}

	if maximizing {
		best := NegInfinity
		for _, move := range game.EmptyCells(b) {
			child := play(b, move, me)
			score := m.search(child, me, depth.Next(), alpha, beta, false, stats)
			best = max(best, score)
			alpha = max(alpha, score)
			m.tracer.Alpha(depth, alpha)
			if beta <= alpha {
				m.tracer.Cutoff(depth, true, alpha, beta)
				stats.AddCutoff()
				break
			}
		}
		return best
	}

	best := Infinity
	for _, move := range game.EmptyCells(b) {
		child := play(b, move, me.Opponent())
		score := m.search(child, me, depth.Next(), alpha, beta, true, stats)
		best = min(best, score)
		beta = min(beta, score)
		m.tracer.Beta(depth, beta)
		if beta <= alpha {
			m.tracer.Cutoff(depth, false, alpha, beta)
			stats.AddCutoff()
			break
		}
	}
	return best
}

// play returns a copy of b with mark placed at move. move must come from EmptyCells(b).
func play(b *game.Board, move game.Move, mark game.Mark) *game.Board {
	child := b.Clone()
	if err := child.Place(move, mark); err != nil {
		panic(fmt.Sprintf("searcher generated illegal move %s: %v", move, err))
	}
	return child
}

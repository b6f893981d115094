package player

import (
	"context"

	"golang.org/x/exp/rand"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

type randomOpening struct {
	Player
	plies int
	rng   *rand.Rand
}

// NewRandomOpening plays uniformly random cells while fewer than plies marks are on the
// board, then defers to p. Experiments use it to vary otherwise deterministic self-play.
func NewRandomOpening(p Player, plies int, rng *rand.Rand) Player {
	if plies <= 0 || rng == nil {
		return p
	}
	return &randomOpening{Player: p, plies: plies, rng: rng}
}

func (r *randomOpening) ChooseMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric, error) {
	if b.Count(game.X)+b.Count(game.O) >= r.plies {
		return r.Player.ChooseMove(ctx, b)
	}
	moves := game.EmptyCells(b)
	if len(moves) == 0 {
		return r.Player.ChooseMove(ctx, b)
	}
	return moves[r.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}

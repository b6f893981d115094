package player

import (
	"context"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
)

// Player decides moves for one mark.
type Player interface {
	Mark() game.Mark
	IsHuman() bool
	// ChooseMove returns an empty cell of b. Search metrics are zero for humans.
	ChooseMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric, error)
}

// MoveSource reads a validated move from a person. It owns re-prompting on bad input.
type MoveSource func(ctx context.Context, b *game.Board, mark game.Mark) (game.Move, error)

type Human struct {
	mark   game.Mark
	source MoveSource
}

func NewHuman(mark game.Mark, source MoveSource) *Human {
	return &Human{mark: mark, source: source}
}

func (h *Human) Mark() game.Mark { return h.mark }

func (h *Human) IsHuman() bool { return true }

func (h *Human) ChooseMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric, error) {
	move, err := h.source(ctx, b, h.mark)
	return move, metrics.SearchMetric{}, err
}

// Agent plays the minimax move for its mark.
type Agent struct {
	mark    game.Mark
	depth   searcher.Depth
	minimax *searcher.Minimax
}

func NewAgent(mark game.Mark, depth searcher.Depth, minimax *searcher.Minimax) *Agent {
	if minimax == nil {
		minimax = searcher.NewMinimax()
	}
	return &Agent{mark: mark, depth: depth, minimax: minimax}
}

func (a *Agent) Mark() game.Mark { return a.mark }

func (a *Agent) IsHuman() bool { return false }

func (a *Agent) Depth() searcher.Depth { return a.depth }

func (a *Agent) ChooseMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric, error) {
	result, err := a.minimax.Search(ctx, b, a.mark, a.depth)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	return result.Move, result.Metric, nil
}

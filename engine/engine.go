package engine

import (
	"context"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

type Engine interface {
	// Run plays until a player completes a line or the board is full
	Run(ctx context.Context) (Result, error)
}

// Observer receives the board after every mutation, the output side of a game.
type Observer interface {
	Started(b *game.Board)
	Moved(b *game.Board, mark game.Mark, move game.Move)
	Finished(b *game.Board, status game.Status)
}

type Result struct {
	Status game.Status
	Board  *game.Board
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}

// Winner is Empty when the game is even.
func (r Result) Winner() game.Mark {
	return r.Status.Winner()
}

// ObserverFuncs adapts plain functions to Observer; nil fields are skipped.
type ObserverFuncs struct {
	OnStart  func(b *game.Board)
	OnMove   func(b *game.Board, mark game.Mark, move game.Move)
	OnFinish func(b *game.Board, status game.Status)
}

func (o ObserverFuncs) Started(b *game.Board) {
	if o.OnStart != nil {
		o.OnStart(b)
	}
}

func (o ObserverFuncs) Moved(b *game.Board, mark game.Mark, move game.Move) {
	if o.OnMove != nil {
		o.OnMove(b, mark, move)
	}
}

func (o ObserverFuncs) Finished(b *game.Board, status game.Status) {
	if o.OnFinish != nil {
		o.OnFinish(b, status)
	}
}

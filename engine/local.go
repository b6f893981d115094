package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/player"
	"tictactoe/searcher"
)

type Local struct {
	Board     *game.Board
	players   map[game.Mark]player.Player
	observers []Observer
}

func LocalEngine(b *game.Board, x, o player.Player, observers ...Observer) *Local {
	if x.Mark() != game.X || o.Mark() != game.O {
		panic("players must hold marks X and O")
	}
	return &Local{
		Board:     b,
		players:   map[game.Mark]player.Player{game.X: x, game.O: o},
		observers: observers,
	}
}

// HumanVsAgent sets up the mixed mode: the human plays X and moves first.
func HumanVsAgent(n int, depth searcher.Depth, source player.MoveSource, minimax *searcher.Minimax, observers ...Observer) (*Local, error) {
	b, err := game.NewBoard(n)
	if err != nil {
		return nil, err
	}
	human := player.NewHuman(game.X, source)
	agent := player.NewAgent(game.O, depth, minimax)
	return LocalEngine(b, human, agent, observers...), nil
}

// AgentVsAgent sets up self-play on the algorithm board with both sides searching to the end.
func AgentVsAgent(minimax *searcher.Minimax, observers ...Observer) *Local {
	e, err := SelfPlay(meta.ALGORITHM_SIZE, searcher.Unbounded(), minimax, observers...)
	if err != nil {
		panic(err)
	}
	return e
}

// SelfPlay pits two agents searching to depth against each other on an n×n board.
func SelfPlay(n int, depth searcher.Depth, minimax *searcher.Minimax, observers ...Observer) (*Local, error) {
	b, err := game.NewBoard(n)
	if err != nil {
		return nil, err
	}
	x := player.NewAgent(game.X, depth, minimax)
	o := player.NewAgent(game.O, depth, minimax)
	return LocalEngine(b, x, o, observers...), nil
}

// Run executes the game loop on e.Board until a winner is found or the board is full.
func (e *Local) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	current := game.NextPlayer(e.Board)
	gameMetric := metrics.GameMetric{
		Size:           e.Board.Size(),
		StartingPlayer: current.String(),
		StartTime:      start,
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %s is starting on a %dx%d board", current, e.Board.Size(), e.Board.Size())
	e.notify(func(o Observer) { o.Started(e.Board) })

	status := game.StatusOf(e.Board)
	// Every step fills a cell, so the board is decided after at most n*n steps.
	maxSteps := e.Board.Size() * e.Board.Size()
	for step := 1; !status.IsOver() && step <= maxSteps; step++ {
		p := e.players[current]

		move, searchMetric, err := p.ChooseMove(ctx, e.Board)
		if err != nil {
			return e.result(status, gameMetric, moveMetrics), fmt.Errorf("player %s failed to choose a move: %w", current, err)
		}
		if err := e.Board.Place(move, current); err != nil {
			return e.result(status, gameMetric, moveMetrics), fmt.Errorf("player %s played %s: %w", current, move, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       current.String(),
			Row:          move.Row,
			Col:          move.Col,
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("step %d: %s plays at %s", step, current, move)
		e.notify(func(o Observer) { o.Moved(e.Board, current, move) })

		status = game.StatusOf(e.Board)
		current = current.Opponent()
	}

	if w := status.Winner(); w != game.Empty {
		gameMetric.Winner = w.String()
	}
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(start)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Info().Msgf("game over after %d moves: %s", len(moveMetrics), status)
	e.notify(func(o Observer) { o.Finished(e.Board, status) })

	return e.result(status, gameMetric, moveMetrics), nil
}

func (e *Local) result(status game.Status, g metrics.GameMetric, moves []metrics.MoveMetric) Result {
	return Result{Status: status, Board: e.Board, Game: g, Moves: moves}
}

func (e *Local) notify(fn func(Observer)) {
	for _, o := range e.observers {
		fn(o)
	}
}

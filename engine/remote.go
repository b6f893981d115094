package engine

import (
	"context"
	"fmt"

	"tictactoe/communication/client"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
)

// RemoteAgent asks an analysis server for its moves.
type RemoteAgent struct {
	mark   game.Mark
	depth  searcher.Depth
	client *client.ClientCommunicator
}

func NewRemoteAgent(mark game.Mark, depth searcher.Depth, serverURL string) *RemoteAgent {
	return &RemoteAgent{
		mark:   mark,
		depth:  depth,
		client: client.NewClientCommunicator(serverURL),
	}
}

func (a *RemoteAgent) Mark() game.Mark { return a.mark }

func (a *RemoteAgent) IsHuman() bool { return false }

func (a *RemoteAgent) ChooseMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric, error) {
	resp, err := a.client.BestMove(ctx, b, a.mark, a.depth)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	// Validate before handing the move to the game loop
	mark, err := b.Get(resp.Move)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("server suggested %s: %w", resp.Move, err)
	}
	if mark != game.Empty {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("server suggested %s: %w", resp.Move, game.ErrCellOccupied)
	}
	return resp.Move, metrics.SearchMetric{
		Depth:   a.depth.String(),
		Nodes:   resp.Nodes,
		Cutoffs: resp.Cutoffs,
		Score:   resp.Score,
	}, nil
}

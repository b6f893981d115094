// Package communication holds the JSON messages exchanged with the analysis server.
package communication

import (
	"fmt"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/searcher"
)

// BestMoveRequest asks for the move of Player (default O) on Board. A nil or negative Depth
// means an unbounded search, which is only accepted on boards up to 3x3.
type BestMoveRequest struct {
	Board  []string `json:"board"`
	Player string   `json:"player,omitempty"`
	Depth  *int     `json:"depth,omitempty"`
}

// BestMoveResponse carries the chosen cell twice: Row and Col are 1-based as shown to
// players, Move is 0-based.
type BestMoveResponse struct {
	Row     int       `json:"row"`
	Col     int       `json:"col"`
	Move    game.Move `json:"move"`
	Display string    `json:"display"`
	Score   int       `json:"score"`
	Nodes   int       `json:"nodes"`
	Cutoffs int       `json:"cutoffs"`
}

func NewBestMoveResponse(move game.Move, score int, metric metrics.SearchMetric) BestMoveResponse {
	row, col := move.Human()
	return BestMoveResponse{
		Row:     row,
		Col:     col,
		Move:    move,
		Display: move.String(),
		Score:   score,
		Nodes:   metric.Nodes,
		Cutoffs: metric.Cutoffs,
	}
}

type StatusRequest struct {
	Board []string `json:"board"`
}

type StatusResponse struct {
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
	Full   bool   `json:"full"`
	Next   string `json:"next,omitempty"`
}

// Frame is one message of the self-play stream.
type Frame struct {
	Type   string     `json:"type"` // "start", "move" or "result"
	Board  []string   `json:"board"`
	Player string     `json:"player,omitempty"`
	Move   *game.Move `json:"move,omitempty"`
	Status string     `json:"status,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

var (
	ErrUnboundedTooLarge = fmt.Errorf("unbounded search is only supported up to %dx%d or with at most %d free cells",
		meta.MAX_UNBOUNDED_SIZE, meta.MAX_UNBOUNDED_SIZE, meta.MAX_API_DEPTH)
	ErrDepthTooLarge = fmt.Errorf("depth above %d is only supported up to %dx%d",
		meta.MAX_API_DEPTH, meta.MAX_UNBOUNDED_SIZE, meta.MAX_UNBOUNDED_SIZE)
	ErrBoardTooLarge = fmt.Errorf("boards above %dx%d are not supported", meta.MAX_API_SIZE, meta.MAX_API_SIZE)
)

// DepthParam converts the wire form of a depth.
func DepthParam(depth *int) searcher.Depth {
	if depth == nil || *depth < 0 {
		return searcher.Unbounded()
	}
	return searcher.Plies(*depth)
}

// WireDepth is the inverse of DepthParam.
func WireDepth(d searcher.Depth) *int {
	n, ok := d.Limit()
	if !ok {
		return nil
	}
	return &n
}

// Parse validates the request.
func (r BestMoveRequest) Parse() (*game.Board, game.Mark, searcher.Depth, error) {
	b, err := game.ParseBoard(r.Board)
	if err != nil {
		return nil, game.Empty, searcher.Depth{}, err
	}
	mark := game.O
	if r.Player != "" {
		mark, err = game.ParseMark(r.Player)
		if err != nil {
			return nil, game.Empty, searcher.Depth{}, err
		}
		if !mark.IsPlayer() {
			return nil, game.Empty, searcher.Depth{}, game.ErrInvalidMark
		}
	}
	depth := DepthParam(r.Depth)
	if err := CheckSearch(b, depth); err != nil {
		return nil, game.Empty, searcher.Depth{}, err
	}
	return b, mark, depth, nil
}

// CheckSize rejects boards too large to serve.
func CheckSize(n int) error {
	if n > meta.MAX_API_SIZE {
		return fmt.Errorf("%w: got %dx%d", ErrBoardTooLarge, n, n)
	}
	return nil
}

// CheckSearch rejects searches on b that cannot finish promptly. A finite depth that reaches
// every free cell counts as unbounded.
func CheckSearch(b *game.Board, depth searcher.Depth) error {
	return checkSearch(b.Size(), len(game.EmptyCells(b)), depth)
}

// CheckDepth is CheckSearch for an empty n×n board.
func CheckDepth(n int, depth searcher.Depth) error {
	return checkSearch(n, n*n, depth)
}

func checkSearch(n, empty int, depth searcher.Depth) error {
	if err := CheckSize(n); err != nil {
		return err
	}
	if n <= meta.MAX_UNBOUNDED_SIZE {
		return nil
	}
	if depth.Covers(empty) {
		if empty > meta.MAX_API_DEPTH {
			return ErrUnboundedTooLarge
		}
		return nil
	}
	if plies, _ := depth.Limit(); plies > meta.MAX_API_DEPTH {
		return ErrDepthTooLarge
	}
	return nil
}

func NewStatusResponse(b *game.Board) StatusResponse {
	status := game.StatusOf(b)
	resp := StatusResponse{
		Status: status.String(),
		Full:   game.IsFull(b),
	}
	if w := status.Winner(); w != game.Empty {
		resp.Winner = w.String()
	}
	if !status.IsOver() {
		resp.Next = game.NextPlayer(b).String()
	}
	return resp
}

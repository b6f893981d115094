package communication

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
)

func emptyRows(n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = strings.Repeat(".", n)
	}
	return rows
}

func plies(n int) *int { return &n }

func TestBestMoveRequestLimits(t *testing.T) {
	tests := []struct {
		name    string
		request BestMoveRequest
		err     error
	}{
		{"unbounded on 3x3", BestMoveRequest{Board: emptyRows(3)}, nil},
		{"deep finite search on 3x3", BestMoveRequest{Board: emptyRows(3), Depth: plies(9)}, nil},
		{"shallow search on 6x6", BestMoveRequest{Board: emptyRows(6), Depth: plies(3)}, nil},
		{"unbounded on 4x4", BestMoveRequest{Board: emptyRows(4)}, ErrUnboundedTooLarge},
		{"depth covering every cell on 6x6", BestMoveRequest{Board: emptyRows(6), Depth: plies(36)}, ErrUnboundedTooLarge},
		{"depth above the cap on 4x4", BestMoveRequest{Board: emptyRows(4), Depth: plies(4)}, ErrDepthTooLarge},
		{"unbounded with few free cells", BestMoveRequest{Board: []string{"XOXO", "XOXO", "OXOX", "OX.."}}, nil},
		{"large depth with few free cells", BestMoveRequest{Board: []string{"XOXO", "XOXO", "OXOX", "OX.."}, Depth: plies(36)}, nil},
		{"board above the size cap", BestMoveRequest{Board: emptyRows(8), Depth: plies(1)}, ErrBoardTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := tt.request.Parse()
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestCheckDepth(t *testing.T) {
	require.NoError(t, CheckDepth(3, searcher.Unbounded()))
	require.NoError(t, CheckDepth(7, searcher.Plies(3)))
	require.ErrorIs(t, CheckDepth(4, searcher.Unbounded()), ErrUnboundedTooLarge)
	require.ErrorIs(t, CheckDepth(4, searcher.Plies(16)), ErrUnboundedTooLarge)
	require.ErrorIs(t, CheckDepth(5, searcher.Plies(4)), ErrDepthTooLarge)
	require.ErrorIs(t, CheckDepth(8, searcher.Plies(1)), ErrBoardTooLarge)
}

func TestNewBestMoveResponse(t *testing.T) {
	b, err := game.NewBoard(3)
	require.NoError(t, err)
	move := game.NewMove(1, 2)
	require.True(t, b.IsEmpty(move))

	resp := NewBestMoveResponse(move, 1, metrics.SearchMetric{Nodes: 40, Cutoffs: 3})
	require.Equal(t, 2, resp.Row)
	require.Equal(t, 3, resp.Col)
	require.Equal(t, move, resp.Move)
	require.Equal(t, "(2, 3)", resp.Display)
	require.Equal(t, 40, resp.Nodes)
	require.Equal(t, 3, resp.Cutoffs)
}

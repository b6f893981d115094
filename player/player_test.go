package player

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
)

func TestDepthFor(t *testing.T) {
	tests := []struct {
		difficulty string
		n          int
		want       searcher.Depth
		ok         bool
	}{
		{"easy", 3, searcher.Plies(1), true},
		{"easy", 7, searcher.Plies(1), true},
		{"hard", 3, searcher.Unbounded(), true},
		{"HARD", 2, searcher.Unbounded(), true},
		{"hard", 4, searcher.Plies(1), true},
		{"medium", 3, searcher.Unbounded(), false},
		{"", 5, searcher.Unbounded(), false},
	}
	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			depth, ok := DepthFor(tt.difficulty, tt.n)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, depth, "n=%d", tt.n)
		})
	}
}

func TestAgent(t *testing.T) {
	b, err := game.NewBoard(3)
	require.NoError(t, err)

	agent := NewAgent(game.O, searcher.Unbounded(), nil)
	require.False(t, agent.IsHuman())
	require.Equal(t, game.O, agent.Mark())
	require.True(t, agent.Depth().IsUnbounded())

	move, _, err := agent.ChooseMove(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, game.NewMove(0, 0), move)

	t.Run("collects metrics when enabled", func(t *testing.T) {
		agent := NewAgent(game.X, searcher.Plies(2), searcher.NewMinimax(searcher.WithMetrics()))
		_, metric, err := agent.ChooseMove(context.Background(), b)
		require.NoError(t, err)
		require.Equal(t, 9, metric.Candidates)
		require.Equal(t, "2", metric.Depth)
		require.Positive(t, metric.Nodes)
	})
}

func TestHumanDelegatesToSource(t *testing.T) {
	b, err := game.NewBoard(3)
	require.NoError(t, err)

	var seen game.Mark
	human := NewHuman(game.X, func(_ context.Context, _ *game.Board, mark game.Mark) (game.Move, error) {
		seen = mark
		return game.NewMove(2, 1), nil
	})
	require.True(t, human.IsHuman())

	move, metric, err := human.ChooseMove(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, game.X, seen)
	require.Equal(t, game.NewMove(2, 1), move)
	require.Equal(t, metrics.SearchMetric{}, metric)

	boom := errors.New("stdin closed")
	failing := NewHuman(game.X, func(context.Context, *game.Board, game.Mark) (game.Move, error) {
		return game.Move{}, boom
	})
	_, _, err = failing.ChooseMove(context.Background(), b)
	require.ErrorIs(t, err, boom)
}

type fixedPlayer struct {
	mark  game.Mark
	calls int
}

func (f *fixedPlayer) Mark() game.Mark { return f.mark }
func (f *fixedPlayer) IsHuman() bool   { return false }
func (f *fixedPlayer) ChooseMove(_ context.Context, b *game.Board) (game.Move, metrics.SearchMetric, error) {
	f.calls++
	return game.EmptyCells(b)[0], metrics.SearchMetric{Nodes: 1}, nil
}

func TestRandomOpening(t *testing.T) {
	t.Run("without plies the player is returned as is", func(t *testing.T) {
		inner := &fixedPlayer{mark: game.X}
		require.Same(t, inner, NewRandomOpening(inner, 0, rand.New(rand.NewSource(1))).(*fixedPlayer))
		require.Same(t, inner, NewRandomOpening(inner, 2, nil).(*fixedPlayer))
	})

	t.Run("random while under the ply count, then delegates", func(t *testing.T) {
		b, err := game.NewBoard(3)
		require.NoError(t, err)
		inner := &fixedPlayer{mark: game.X}
		p := NewRandomOpening(inner, 2, rand.New(rand.NewSource(7)))
		require.Equal(t, game.X, p.Mark())

		move, metric, err := p.ChooseMove(context.Background(), b)
		require.NoError(t, err)
		require.True(t, b.IsEmpty(move))
		require.Zero(t, metric.Nodes)
		require.NoError(t, b.Place(move, game.X))

		move, _, err = p.ChooseMove(context.Background(), b)
		require.NoError(t, err)
		require.True(t, b.IsEmpty(move))
		require.Zero(t, inner.calls)
		require.NoError(t, b.Place(move, game.O))

		_, metric, err = p.ChooseMove(context.Background(), b)
		require.NoError(t, err)
		require.Equal(t, 1, inner.calls)
		require.Equal(t, 1, metric.Nodes)
	})

	t.Run("same seed gives the same opening", func(t *testing.T) {
		play := func(seed uint64) []game.Move {
			b, err := game.NewBoard(4)
			require.NoError(t, err)
			p := NewRandomOpening(&fixedPlayer{mark: game.X}, 6, rand.New(rand.NewSource(seed)))
			var moves []game.Move
			for range 6 {
				move, _, err := p.ChooseMove(context.Background(), b)
				require.NoError(t, err)
				require.NoError(t, b.Place(move, game.NextPlayer(b)))
				moves = append(moves, move)
			}
			return moves
		}
		require.Equal(t, play(42), play(42))
	})
}

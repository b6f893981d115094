package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Run("creates an empty square board", func(t *testing.T) {
		b, err := NewBoard(4)
		require.NoError(t, err)
		require.Equal(t, 4, b.Size())
		require.Len(t, EmptyCells(b), 16, "All cells should start empty")
	})

	t.Run("rejects sizes below one", func(t *testing.T) {
		for _, n := range []int{0, -3} {
			b, err := NewBoard(n)
			require.ErrorIs(t, err, ErrInvalidSize)
			require.Nil(t, b)
		}
	})

	t.Run("single cell board", func(t *testing.T) {
		b, err := NewBoard(1)
		require.NoError(t, err)
		require.Equal(t, []Move{{0, 0}}, EmptyCells(b))
	})
}

func TestBoardPlace(t *testing.T) {
	t.Run("places a mark on an empty cell", func(t *testing.T) {
		b, _ := NewBoard(3)
		require.NoError(t, b.Place(NewMove(1, 2), X))
		require.Equal(t, X, b.At(1, 2))
		require.Equal(t, 1, b.Count(X))
	})

	t.Run("occupied cell is rejected without mutation", func(t *testing.T) {
		b, _ := NewBoard(3)
		require.NoError(t, b.Place(NewMove(0, 0), X))
		before := b.Clone()

		err := b.Place(NewMove(0, 0), O)

		require.ErrorIs(t, err, ErrCellOccupied)
		require.True(t, b.Equal(before), "Board should not change after a rejected placement")
		require.Equal(t, X, b.At(0, 0))
	})

	t.Run("out of bounds is rejected", func(t *testing.T) {
		b, _ := NewBoard(3)
		for _, m := range []Move{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
			require.ErrorIs(t, b.Place(m, O), ErrOutOfBounds, "move %v", m)
		}
		require.Len(t, EmptyCells(b), 9)
	})

	t.Run("empty mark cannot be placed", func(t *testing.T) {
		b, _ := NewBoard(3)
		require.ErrorIs(t, b.Place(NewMove(0, 0), Empty), ErrInvalidMark)
	})
}

func TestBoardClone(t *testing.T) {
	b, _ := NewBoard(3)
	require.NoError(t, b.Place(NewMove(0, 0), X))

	clone := b.Clone()
	require.True(t, clone.Equal(b))

	require.NoError(t, clone.Place(NewMove(1, 1), O))
	require.Equal(t, Empty, b.At(1, 1), "Mutating the clone must not leak into the original")
	require.NoError(t, b.Place(NewMove(2, 2), X))
	require.Equal(t, Empty, clone.At(2, 2), "Mutating the original must not leak into the clone")
}

func TestParseBoard(t *testing.T) {
	t.Run("round trips through Rows", func(t *testing.T) {
		rows := []string{"X.O", ".X.", "O.."}
		b, err := ParseBoard(rows)
		require.NoError(t, err)
		require.Equal(t, X, b.At(0, 0))
		require.Equal(t, O, b.At(0, 2))
		require.Equal(t, rows, b.Rows())
	})

	t.Run("spaces count as empty", func(t *testing.T) {
		b, err := ParseBoard([]string{"X ", " o"})
		require.NoError(t, err)
		require.Equal(t, O, b.At(1, 1))
		require.Equal(t, Empty, b.At(0, 1))
	})

	t.Run("rejects ragged rows", func(t *testing.T) {
		_, err := ParseBoard([]string{"X..", ".."})
		require.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("rejects unknown marks", func(t *testing.T) {
		_, err := ParseBoard([]string{"XZ", ".."})
		require.ErrorIs(t, err, ErrInvalidMark)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := ParseBoard(nil)
		require.ErrorIs(t, err, ErrInvalidSize)
	})
}

func TestMoveCoordinates(t *testing.T) {
	m := FromHuman(1, 3)
	require.Equal(t, Move{Row: 0, Col: 2}, m)
	r, c := m.Human()
	require.Equal(t, 1, r)
	require.Equal(t, 3, c)
	require.Equal(t, "(1, 3)", m.String())
	require.True(t, m.InBounds(3))
	require.False(t, m.InBounds(2))
}

package game

import (
	"fmt"
	"slices"
	"strings"
)

// Board is a square n×n grid stored row-major.
type Board struct {
	n     int
	cells []Mark
}

func NewBoard(n int) (*Board, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	return &Board{n: n, cells: make([]Mark, n*n)}, nil
}

// ParseBoard builds a board from one string per row, using X, O and "." (or space) for empty.
func ParseBoard(rows []string) (*Board, error) {
	b, err := NewBoard(len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len([]rune(row)) != b.n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, r+1, len([]rune(row)), b.n)
		}
		for c, ch := range []rune(row) {
			mark, err := ParseMark(string(ch))
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", r+1, c+1, err)
			}
			b.cells[b.index(r, c)] = mark
		}
	}
	return b, nil
}

func (b *Board) Size() int {
	return b.n
}

// At returns the mark at (row, col). The coordinate must be in bounds.
func (b *Board) At(row, col int) Mark {
	return b.cells[b.index(row, col)]
}

// Get is the bounds-checked variant of At.
func (b *Board) Get(m Move) (Mark, error) {
	if !m.InBounds(b.n) {
		return Empty, fmt.Errorf("%w: %s on %dx%d board", ErrOutOfBounds, m, b.n, b.n)
	}
	return b.At(m.Row, m.Col), nil
}

// IsEmpty reports whether m is in bounds and unoccupied.
func (b *Board) IsEmpty(m Move) bool {
	return m.InBounds(b.n) && b.At(m.Row, m.Col) == Empty
}

// Place puts mark on an empty cell. On error the board is left untouched.
func (b *Board) Place(m Move, mark Mark) error {
	if !mark.IsPlayer() {
		return ErrInvalidMark
	}
	current, err := b.Get(m)
	if err != nil {
		return err
	}
	if current != Empty {
		return fmt.Errorf("%w: %s holds %s", ErrCellOccupied, m, current)
	}
	b.cells[b.index(m.Row, m.Col)] = mark
	return nil
}

func (b *Board) Clone() *Board {
	return &Board{n: b.n, cells: slices.Clone(b.cells)}
}

// CellsWhere returns, in row-major order, every coordinate whose mark satisfies keep.
func (b *Board) CellsWhere(keep func(Mark) bool) []Move {
	moves := make([]Move, 0, len(b.cells))
	for i, mark := range b.cells {
		if keep(mark) {
			moves = append(moves, Move{Row: i / b.n, Col: i % b.n})
		}
	}
	return moves
}

func (b *Board) Count(mark Mark) int {
	count := 0
	for _, cell := range b.cells {
		if cell == mark {
			count++
		}
	}
	return count
}

func (b *Board) Equal(other *Board) bool {
	return other != nil && b.n == other.n && slices.Equal(b.cells, other.cells)
}

// Rows is the inverse of ParseBoard.
func (b *Board) Rows() []string {
	rows := make([]string, b.n)
	for r := range b.n {
		var sb strings.Builder
		for c := range b.n {
			switch mark := b.At(r, c); mark {
			case Empty:
				sb.WriteByte('.')
			default:
				sb.WriteString(mark.String())
			}
		}
		rows[r] = sb.String()
	}
	return rows
}

func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n")
}

func (b *Board) index(row, col int) int {
	return row*b.n + col
}

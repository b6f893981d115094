package game

import "errors"

// Mark is the content of a single cell.
type Mark int8

const (
	Empty Mark = iota
	X
	O
)

var (
	ErrInvalidSize  = errors.New("board size must be at least 1")
	ErrOutOfBounds  = errors.New("coordinate out of bounds")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrInvalidMark  = errors.New("only X or O can be placed")
)

// Players lists the two marks in turn order.
var Players = [2]Mark{X, O}

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the other player's mark, or Empty for Empty.
func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (m Mark) IsPlayer() bool {
	return m == X || m == O
}

// ParseMark accepts "X", "O" (any case) and " ", "." or "" for Empty.
func ParseMark(s string) (Mark, error) {
	switch s {
	case "X", "x":
		return X, nil
	case "O", "o":
		return O, nil
	case "", " ", ".", "_":
		return Empty, nil
	}
	return Empty, ErrInvalidMark
}

package game

import "fmt"

// Move addresses a cell with 0-based coordinates.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewMove(row, col int) Move {
	return Move{Row: row, Col: col}
}

// FromHuman converts 1-based coordinates typed by a person.
func FromHuman(row, col int) Move {
	return Move{Row: row - 1, Col: col - 1}
}

// Human returns the 1-based coordinates of the move.
func (m Move) Human() (row, col int) {
	return m.Row + 1, m.Col + 1
}

func (m Move) InBounds(n int) bool {
	return m.Row >= 0 && m.Col >= 0 && m.Row < n && m.Col < n
}

// String formats the move the way it is shown to players: 1-based.
func (m Move) String() string {
	r, c := m.Human()
	return fmt.Sprintf("(%d, %d)", r, c)
}

package game

// IsWinner reports whether player owns a complete row, column or diagonal.
func IsWinner(b *Board, player Mark) bool {
	if !player.IsPlayer() {
		return false
	}
	n := b.n
	for i := range n {
		if b.lineOwned(player, i, 0, 0, 1) || b.lineOwned(player, 0, i, 1, 0) {
			return true
		}
	}
	return b.lineOwned(player, 0, 0, 1, 1) || b.lineOwned(player, 0, n-1, 1, -1)
}

// IsFull reports whether no cell is Empty.
func IsFull(b *Board) bool {
	for _, cell := range b.cells {
		if cell == Empty {
			return false
		}
	}
	return true
}

// EmptyCells lists the free coordinates row by row, columns ascending. Move generation and
// tie-breaking in the searcher depend on this order.
func EmptyCells(b *Board) []Move {
	return b.CellsWhere(func(m Mark) bool { return m == Empty })
}

// Winner returns the mark that completed a line, or Empty.
func Winner(b *Board) Mark {
	for _, p := range Players {
		if IsWinner(b, p) {
			return p
		}
	}
	return Empty
}

// lineOwned walks n cells from (row, col) in direction (dr, dc).
func (b *Board) lineOwned(player Mark, row, col, dr, dc int) bool {
	for range b.n {
		if b.At(row, col) != player {
			return false
		}
		row += dr
		col += dc
	}
	return true
}

package game

// Status summarises a position for the output side of the game.
type Status int

const (
	InProgress Status = iota
	XWins
	OWins
	Draw
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case XWins:
		return "x_wins"
	case OWins:
		return "o_wins"
	case Draw:
		return "even"
	default:
		return "unknown"
	}
}

func (s Status) IsOver() bool {
	return s != InProgress
}

// Winner returns the mark that won, or Empty for a draw or unfinished game.
func (s Status) Winner() Mark {
	switch s {
	case XWins:
		return X
	case OWins:
		return O
	default:
		return Empty
	}
}

// StatusOf checks for a winner before checking for a full board.
func StatusOf(b *Board) Status {
	switch Winner(b) {
	case X:
		return XWins
	case O:
		return OWins
	}
	if IsFull(b) {
		return Draw
	}
	return InProgress
}

// NextPlayer infers whose turn it is, assuming X moved first.
func NextPlayer(b *Board) Mark {
	if b.Count(X) > b.Count(O) {
		return O
	}
	return X
}

package player

import (
	"strings"

	"tictactoe/meta"
	"tictactoe/searcher"
)

const (
	Easy = "easy"
	Hard = "hard"
)

// DepthFor maps a difficulty to a search depth for an n×n board. Unknown difficulties fall
// back to an unbounded search and report ok == false so the caller can warn.
func DepthFor(difficulty string, n int) (depth searcher.Depth, ok bool) {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case Easy:
		return searcher.Plies(meta.LIMITED_DEPTH), true
	case Hard:
		if n <= meta.MAX_UNBOUNDED_SIZE {
			return searcher.Unbounded(), true
		}
		return searcher.Plies(meta.LIMITED_DEPTH), true
	default:
		return searcher.Unbounded(), false
	}
}

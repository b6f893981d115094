package searcher

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Score is a position value from the maximizing side's point of view.
type Score int

const (
	Loss Score = -1
	Draw Score = 0
	Win  Score = 1
)

// Bounds used to open a fresh alpha-beta window.
const (
	NegInfinity Score = math.MinInt
	Infinity    Score = math.MaxInt
)

var ErrNoMoveAvailable = errors.New("no move available: board is full")

func (s Score) String() string {
	switch s {
	case NegInfinity:
		return "-inf"
	case Infinity:
		return "+inf"
	default:
		return strconv.Itoa(int(s))
	}
}

// Depth is a search horizon in plies: either a finite count or unbounded.
// The zero value is a finite depth of 0.
type Depth struct {
	plies     int
	unbounded bool
}

func Plies(n int) Depth {
	return Depth{plies: max(n, 0)}
}

func Unbounded() Depth {
	return Depth{unbounded: true}
}

// ParseDepth accepts a non-negative integer, or "unbounded", "inf" and "-1" for no limit.
func ParseDepth(s string) (Depth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unbounded", "inf", "infinite", "-1":
		return Unbounded(), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return Depth{}, errors.New("depth must be a non-negative integer or \"unbounded\"")
	}
	return Plies(n), nil
}

func (d Depth) IsUnbounded() bool {
	return d.unbounded
}

// Covers reports whether the depth reaches the end of every game with empty free cells left.
func (d Depth) Covers(empty int) bool {
	return d.unbounded || d.plies >= empty
}

// Limit returns the finite ply count; ok is false when the depth is unbounded.
func (d Depth) Limit() (plies int, ok bool) {
	return d.plies, !d.unbounded
}

// Exhausted reports whether a search at this depth must stop expanding.
func (d Depth) Exhausted() bool {
	return !d.unbounded && d.plies <= 0
}

// Next is the depth handed to a child node.
func (d Depth) Next() Depth {
	if d.unbounded {
		return d
	}
	return Depth{plies: d.plies - 1}
}

func (d Depth) String() string {
	if d.unbounded {
		return "unbounded"
	}
	return strconv.Itoa(d.plies)
}

package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes a single move search.
type SearchMetric struct {
	Goroutines int
	Depth      string
	Duration   time.Duration
	Candidates int
	Nodes      int
	Cutoffs    int
	Score      int
}

type MoveMetric struct {
	Step   int
	Player string
	Row    int
	Col    int
	SearchMetric
}

type GameMetric struct {
	Size           int
	StartingPlayer string
	Winner         string // "" for an even game
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines int, depth string, candidates int)
	AddNode()
	AddCutoff()
	Complete(score int) SearchMetric
}

type collector struct {
	goroutines int
	depth      string
	candidates int
	startTime  time.Time
	nodes      atomic.Int64
	cutoffs    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int, depth string, candidates int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.candidates = candidates
	m.nodes.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete(score int) SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Depth:      m.depth,
		Duration:   time.Since(m.startTime),
		Candidates: m.candidates,
		Nodes:      int(m.nodes.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		Score:      score,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int, depth string, candidates int) {}
func (m *dummyCollector) AddNode()                                          {}
func (m *dummyCollector) AddCutoff()                                        {}
func (m *dummyCollector) Complete(score int) SearchMetric                   { return SearchMetric{Score: score} }

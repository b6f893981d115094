package searcher

import "tictactoe/experiments/metrics"

type Option func(m *Minimax)

// WithGoroutines scores top-level candidates on up to n goroutines.
func WithGoroutines(n int) Option {
	return func(m *Minimax) {
		if n > 0 {
			m.goroutines = n
		}
	}
}

func WithTracer(tracer Tracer) Option {
	return func(m *Minimax) {
		if tracer != nil {
			m.tracer = tracer
		}
	}
}

// WithMetrics counts visited nodes and cutoffs for every search.
func WithMetrics() Option {
	return func(m *Minimax) {
		m.newCollector = metrics.NewCollector
	}
}

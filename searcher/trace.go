package searcher

import "github.com/rs/zerolog"

// Tracer observes alpha-beta bookkeeping. Implementations must be safe for concurrent use
// when the searcher runs with more than one goroutine.
type Tracer interface {
	Alpha(depth Depth, alpha Score)
	Beta(depth Depth, beta Score)
	Cutoff(depth Depth, maximizing bool, alpha, beta Score)
}

type noTracer struct{}

func (noTracer) Alpha(Depth, Score)               {}
func (noTracer) Beta(Depth, Score)                {}
func (noTracer) Cutoff(Depth, bool, Score, Score) {}

type logTracer struct {
	logger zerolog.Logger
}

// NewLogTracer reports every bound update and cutoff as a debug event.
func NewLogTracer(logger zerolog.Logger) Tracer {
	return logTracer{logger: logger}
}

func (t logTracer) Alpha(depth Depth, alpha Score) {
	t.logger.Debug().Stringer("depth", depth).Stringer("alpha", alpha).Msg("alpha")
}

func (t logTracer) Beta(depth Depth, beta Score) {
	t.logger.Debug().Stringer("depth", depth).Stringer("beta", beta).Msg("beta")
}

func (t logTracer) Cutoff(depth Depth, maximizing bool, alpha, beta Score) {
	kind := "beta"
	if maximizing {
		kind = "alpha"
	}
	t.logger.Debug().
		Str("kind", kind).
		Stringer("depth", depth).
		Stringer("alpha", alpha).
		Stringer("beta", beta).
		Msg("cutoff")
}

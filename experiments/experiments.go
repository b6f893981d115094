// Package experiments runs batches of agent-vs-agent games and stores their metrics.
package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tictactoe/config"
	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/player"
	"tictactoe/searcher"
)

// Matchup is one pairing of agent configs on a board size. Agent1 plays X.
type Matchup struct {
	Size   int
	Agent1 metrics.AgentConfig
	Agent2 metrics.AgentConfig
}

// Tally counts results for one matchup.
type Tally struct {
	Matchup
	XWins int
	OWins int
	Draws int
}

type Report struct {
	Dir     string
	Tallies []Tally
}

// RunDepthExperiment pits every configured depth against every other on each board size.
// Unbounded depths are skipped on boards too large for an exhaustive search.
func RunDepthExperiment(ctx context.Context, exp config.Experiment, goroutines int) (Report, error) {
	depths, err := exp.SearchDepths()
	if err != nil {
		return Report{}, err
	}

	configs := make([]metrics.AgentConfig, 0, len(depths))
	for i, d := range depths {
		configs = append(configs, metrics.AgentConfig{
			ID:             i + 1,
			Depth:          d.String(),
			Goroutines:     goroutines,
			RandomOpenings: exp.RandomOpenings,
		})
	}

	var matchUps []Matchup
	for _, n := range exp.Sizes {
		for i, config1 := range configs {
			for j, config2 := range configs {
				if n > meta.MAX_UNBOUNDED_SIZE && (depths[i].Covers(n*n) || depths[j].Covers(n*n)) {
					log.Warn().Msgf("skipping %s vs %s on %dx%d: unbounded search is too large", config1.Depth, config2.Depth, n, n)
					continue
				}
				matchUps = append(matchUps, Matchup{Size: n, Agent1: config1, Agent2: config2})
			}
		}
	}

	return runExperiment(ctx, "depth", exp, configs, matchUps)
}

func runExperiment(ctx context.Context, name string, exp config.Experiment, configs []metrics.AgentConfig, matchUps []Matchup) (Report, error) {
	rng := rand.New(rand.NewSource(exp.Seed))
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	tallies := make([]Tally, 0, len(matchUps))

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d on %dx%d between agent1=%+v and agent2=%+v...",
			mi+1, len(matchUps), matchup.Size, matchup.Size, matchup.Agent1, matchup.Agent2)

		tally := Tally{Matchup: matchup}
		for i := 0; i < exp.Games; i++ {
			result, err := runGame(ctx, matchup, rng)
			if err != nil {
				return Report{}, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     matchup.Agent1.ID,
				Agent2:     matchup.Agent2.ID,
				GameMetric: result.Game,
			})
			for _, mm := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}

			switch result.Winner() {
			case game.X:
				tally.XWins++
			case game.O:
				tally.OWins++
			default:
				tally.Draws++
			}
			log.Debug().Msgf("completed matchup %d game %d: %s", mi+1, i+1, result.Status)
		}
		tallies = append(tallies, tally)
		log.Info().Msgf("completed matchup %d of %d: X %d, O %d, even %d", mi+1, len(matchUps), tally.XWins, tally.OWins, tally.Draws)
	}

	log.Info().Msgf("completed %s experiment with %d games", name, count)

	writer, err := metrics.NewWriter(exp.OutDir, name)
	if err != nil {
		return Report{}, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return Report{}, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return Report{}, fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return Report{}, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored %s results in %s", name, writer.Dir())

	return Report{Dir: writer.Dir(), Tallies: tallies}, nil
}

// runGame plays one game between the two configs of a matchup.
func runGame(ctx context.Context, matchup Matchup, rng *rand.Rand) (engine.Result, error) {
	b, err := game.NewBoard(matchup.Size)
	if err != nil {
		return engine.Result{}, err
	}
	x := newAgent(game.X, matchup.Agent1, rng)
	o := newAgent(game.O, matchup.Agent2, rng)
	return engine.LocalEngine(b, x, o).Run(ctx)
}

func newAgent(mark game.Mark, config metrics.AgentConfig, rng *rand.Rand) player.Player {
	depth, err := searcher.ParseDepth(config.Depth)
	if err != nil {
		panic(fmt.Sprintf("agent config %d has depth %q: %v", config.ID, config.Depth, err))
	}
	minimax := searcher.NewMinimax(searcher.WithGoroutines(config.Goroutines), searcher.WithMetrics())
	return player.NewRandomOpening(player.NewAgent(mark, depth, minimax), config.RandomOpenings, rng)
}

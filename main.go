package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tictactoe/communication/server"
	"tictactoe/config"
	"tictactoe/console"
	"tictactoe/engine"
	"tictactoe/experiments"
	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/searcher"
	"tictactoe/tui"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msgf("%s failed", cfg.Mode)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	minimax := newMinimax(cfg)

	switch cfg.Mode {
	case config.ModeServe:
		return server.NewServer(minimax, log.Logger).ListenAndServe(ctx, cfg.Addr)

	case config.ModeArena:
		report, err := experiments.RunDepthExperiment(ctx, cfg.Experiment, cfg.Goroutines)
		if err != nil {
			return err
		}
		for _, tally := range report.Tallies {
			log.Info().Msgf("%dx%d depth %s (X) vs depth %s (O): X %d, O %d, even %d",
				tally.Size, tally.Size, tally.Agent1.Depth, tally.Agent2.Depth, tally.XWins, tally.OWins, tally.Draws)
		}
		_, err = experiments.RunThroughputExperiment(ctx, cfg.Size, hardDepth(cfg.Size), cfg.Experiment.OutDir)
		return err

	case config.ModeSelfPlay:
		c := console.NewConsole(os.Stdin, os.Stdout, minimax, cfg.Color)
		return c.SelfPlay(ctx, cfg.Size, hardDepth(cfg.Size))

	case config.ModePlay:
		if cfg.UI == config.UITUI {
			depth, ok := player.DepthFor(cfg.Difficulty, cfg.Size)
			if !ok {
				log.Warn().Msgf("unknown difficulty %q, searching without a depth limit", cfg.Difficulty)
			}
			return tui.Play(ctx, cfg.Size, func() player.Player {
				return newAgent(cfg, minimax)(game.O, depth)
			})
		}
		return newConsole(cfg, minimax).Play(ctx, cfg.Size, cfg.Difficulty)

	default:
		return newConsole(cfg, minimax).Run(ctx)
	}
}

func newMinimax(cfg config.Config) *searcher.Minimax {
	options := []searcher.Option{searcher.WithGoroutines(cfg.Goroutines)}
	if cfg.Trace {
		options = append(options, searcher.WithTracer(searcher.NewLogTracer(log.Logger)))
	}
	if zerolog.GlobalLevel() <= zerolog.DebugLevel || cfg.Mode == config.ModeServe {
		options = append(options, searcher.WithMetrics())
	}
	return searcher.NewMinimax(options...)
}

func newConsole(cfg config.Config, minimax *searcher.Minimax) *console.Console {
	return console.NewConsole(os.Stdin, os.Stdout, minimax, cfg.Color).WithAgentFactory(newAgent(cfg, minimax))
}

// newAgent prefers the analysis server when one is configured.
func newAgent(cfg config.Config, minimax *searcher.Minimax) console.AgentFactory {
	return func(mark game.Mark, depth searcher.Depth) player.Player {
		if cfg.Remote != "" {
			return engine.NewRemoteAgent(mark, depth, cfg.Remote)
		}
		return player.NewAgent(mark, depth, minimax)
	}
}

func hardDepth(n int) searcher.Depth {
	depth, _ := player.DepthFor(player.Hard, n)
	return depth
}

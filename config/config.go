// Package config merges defaults, an optional YAML file and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"tictactoe/meta"
	"tictactoe/player"
	"tictactoe/searcher"
)

const (
	ModeMenu     = "menu"
	ModePlay     = "play"
	ModeSelfPlay = "selfplay"
	ModeArena    = "arena"
	ModeServe    = "serve"

	UIConsole = "console"
	UITUI     = "tui"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Mode       string     `yaml:"mode"`
	Size       int        `yaml:"size"`
	Difficulty string     `yaml:"difficulty"`
	Goroutines int        `yaml:"goroutines"`
	LogLevel   string     `yaml:"log_level"`
	Trace      bool       `yaml:"trace"`
	Addr       string     `yaml:"addr"`
	Remote     string     `yaml:"remote"`
	UI         string     `yaml:"ui"`
	Color      bool       `yaml:"color"`
	Experiment Experiment `yaml:"experiment"`
}

// Experiment configures the self-play arena.
type Experiment struct {
	Games          int      `yaml:"games"`
	Sizes          []int    `yaml:"sizes"`
	Depths         []string `yaml:"depths"`
	RandomOpenings int      `yaml:"random_openings"`
	Seed           uint64   `yaml:"seed"`
	OutDir         string   `yaml:"out_dir"`
}

func Default() Config {
	return Config{
		Mode:       ModeMenu,
		Size:       meta.DEFAULT_SIZE,
		Difficulty: player.Hard,
		Goroutines: 1,
		LogLevel:   zerolog.LevelInfoValue,
		Addr:       meta.DEFAULT_ADDR,
		UI:         UIConsole,
		Color:      true,
		Experiment: Experiment{
			Games:          10,
			Sizes:          []int{3},
			Depths:         []string{"1", "2", "unbounded"},
			RandomOpenings: 2,
			Seed:           1,
			OutDir:         "results",
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse builds the configuration from command-line arguments. When -config is given the
// file is loaded first and only flags set explicitly override it.
func Parse(name string, args []string) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	flags := Default()
	var path, sizes, depths string

	fs.StringVar(&path, "config", "", "path to a YAML config file")
	fs.StringVar(&flags.Mode, "mode", flags.Mode, "menu, play, selfplay, arena or serve")
	fs.IntVar(&flags.Size, "size", flags.Size, "board size n")
	fs.StringVar(&flags.Difficulty, "difficulty", flags.Difficulty, "easy or hard")
	fs.IntVar(&flags.Goroutines, "goroutines", flags.Goroutines, "goroutines scoring top-level moves")
	fs.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "trace, debug, info, warn or error")
	fs.BoolVar(&flags.Trace, "trace", flags.Trace, "log alpha-beta bookkeeping at debug level")
	fs.StringVar(&flags.Addr, "addr", flags.Addr, "listen address for serve mode")
	fs.StringVar(&flags.Remote, "remote", flags.Remote, "analysis server URL used by the automated player")
	fs.StringVar(&flags.UI, "ui", flags.UI, "console or tui")
	fs.BoolVar(&flags.Color, "color", flags.Color, "colour marks on the console")
	fs.IntVar(&flags.Experiment.Games, "games", flags.Experiment.Games, "arena games per configuration")
	fs.StringVar(&sizes, "sizes", "", "arena board sizes, comma separated")
	fs.StringVar(&depths, "depths", "", "arena depths, comma separated")
	fs.IntVar(&flags.Experiment.RandomOpenings, "random-openings", flags.Experiment.RandomOpenings, "random plies before the agents search")
	fs.Uint64Var(&flags.Experiment.Seed, "seed", flags.Experiment.Seed, "arena random seed")
	fs.StringVar(&flags.Experiment.OutDir, "out", flags.Experiment.OutDir, "arena output directory")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if sizes != "" {
		parsed, err := parseInts(sizes)
		if err != nil {
			return Config{}, fmt.Errorf("%w: -sizes: %w", ErrInvalidConfig, err)
		}
		flags.Experiment.Sizes = parsed
	}
	if depths != "" {
		flags.Experiment.Depths = splitList(depths)
	}

	cfg := flags
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
		fs.Visit(func(f *flag.Flag) {
			override(&cfg, &flags, f.Name)
		})
	}
	return cfg, cfg.Validate()
}

func override(cfg, flags *Config, name string) {
	switch name {
	case "mode":
		cfg.Mode = flags.Mode
	case "size":
		cfg.Size = flags.Size
	case "difficulty":
		cfg.Difficulty = flags.Difficulty
	case "goroutines":
		cfg.Goroutines = flags.Goroutines
	case "log-level":
		cfg.LogLevel = flags.LogLevel
	case "trace":
		cfg.Trace = flags.Trace
	case "addr":
		cfg.Addr = flags.Addr
	case "remote":
		cfg.Remote = flags.Remote
	case "ui":
		cfg.UI = flags.UI
	case "color":
		cfg.Color = flags.Color
	case "games":
		cfg.Experiment.Games = flags.Experiment.Games
	case "sizes":
		cfg.Experiment.Sizes = flags.Experiment.Sizes
	case "depths":
		cfg.Experiment.Depths = flags.Experiment.Depths
	case "random-openings":
		cfg.Experiment.RandomOpenings = flags.Experiment.RandomOpenings
	case "seed":
		cfg.Experiment.Seed = flags.Experiment.Seed
	case "out":
		cfg.Experiment.OutDir = flags.Experiment.OutDir
	}
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeMenu, ModePlay, ModeSelfPlay, ModeArena, ModeServe:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	switch c.UI {
	case UIConsole, UITUI:
	default:
		return fmt.Errorf("%w: unknown ui %q", ErrInvalidConfig, c.UI)
	}
	if c.Size < 1 {
		return fmt.Errorf("%w: size must be at least 1, got %d", ErrInvalidConfig, c.Size)
	}
	if c.Goroutines < 1 {
		return fmt.Errorf("%w: goroutines must be at least 1, got %d", ErrInvalidConfig, c.Goroutines)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Mode == ModeArena {
		return c.Experiment.validate()
	}
	return nil
}

// Level is the zerolog level named by LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return level, nil
}

// SearchDepths parses Depths in order.
func (e Experiment) SearchDepths() ([]searcher.Depth, error) {
	depths := make([]searcher.Depth, 0, len(e.Depths))
	for _, raw := range e.Depths {
		d, err := searcher.ParseDepth(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		depths = append(depths, d)
	}
	return depths, nil
}

func (e Experiment) validate() error {
	if e.Games < 1 {
		return fmt.Errorf("%w: games must be at least 1", ErrInvalidConfig)
	}
	if len(e.Sizes) == 0 || len(e.Depths) == 0 {
		return fmt.Errorf("%w: arena needs at least one size and one depth", ErrInvalidConfig)
	}
	for _, n := range e.Sizes {
		if n < 1 {
			return fmt.Errorf("%w: arena size %d", ErrInvalidConfig, n)
		}
	}
	_, err := e.SearchDepths()
	return err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

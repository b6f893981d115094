// Package console is the line-based front end: menu, prompts and board printing.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"tictactoe/engine"
	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/searcher"
)

// ErrInputClosed is returned when the input ends in the middle of a prompt.
var ErrInputClosed = fmt.Errorf("input closed: %w", io.EOF)

// AgentFactory builds the automated opponent for the mixed mode.
type AgentFactory func(mark game.Mark, depth searcher.Depth) player.Player

type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	minimax  *searcher.Minimax
	renderer *Renderer
	newAgent AgentFactory
}

func NewConsole(in io.Reader, out io.Writer, minimax *searcher.Minimax, color bool) *Console {
	if minimax == nil {
		minimax = searcher.NewMinimax()
	}
	c := &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		minimax:  minimax,
		renderer: NewRenderer(out, color),
	}
	c.newAgent = func(mark game.Mark, depth searcher.Depth) player.Player {
		return player.NewAgent(mark, depth, c.minimax)
	}
	return c
}

// WithAgentFactory replaces the local searcher as the mixed-mode opponent.
func (c *Console) WithAgentFactory(f AgentFactory) *Console {
	if f != nil {
		c.newAgent = f
	}
	return c
}

// Run shows the main menu until the user quits or the input ends.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "tic tac toe game.")
	for {
		fmt.Fprintln(c.out, "\nChoose an option:")
		fmt.Fprintln(c.out, "1. Play with algorithm")
		fmt.Fprintln(c.out, "2. Algorithm vs Algorithm")
		fmt.Fprintln(c.out, "3. Quit")

		choice, err := c.prompt("Enter your choice (1/2/3): ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.playWithAlgorithm(ctx)
		case "2":
			err = c.algorithmVsAlgorithm(ctx)
		case "3":
			fmt.Fprintln(c.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice. Please enter 1, 2, or 3.")
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) playWithAlgorithm(ctx context.Context) error {
	n, err := c.ReadSize()
	if err != nil {
		return err
	}
	difficulty, err := c.prompt("Choose difficulty (easy/hard): ")
	if err != nil {
		return err
	}
	return c.Play(ctx, n, difficulty)
}

// Play runs one human-vs-agent game on an n×n board. The human plays X and moves first.
func (c *Console) Play(ctx context.Context, n int, difficulty string) error {
	depth, ok := player.DepthFor(difficulty, n)
	if !ok {
		log.Warn().Msgf("unknown difficulty %q, searching without a depth limit", difficulty)
		fmt.Fprintln(c.out, "Invalid difficulty. Defaulting to hard.")
	}

	b, err := game.NewBoard(n)
	if err != nil {
		return err
	}
	human := player.NewHuman(game.X, c.ReadMove)
	e := engine.LocalEngine(b, human, c.newAgent(game.O, depth), c.renderer)
	_, err = e.Run(ctx)
	return err
}

func (c *Console) algorithmVsAlgorithm(ctx context.Context) error {
	_, err := engine.AgentVsAgent(c.minimax, c.renderer).Run(ctx)
	return err
}

// SelfPlay prints a game between two local agents searching to depth on an n×n board.
func (c *Console) SelfPlay(ctx context.Context, n int, depth searcher.Depth) error {
	e, err := engine.SelfPlay(n, depth, c.minimax, c.renderer)
	if err != nil {
		return err
	}
	_, err = e.Run(ctx)
	return err
}

// ReadSize prompts until a positive integer is entered.
func (c *Console) ReadSize() (int, error) {
	for {
		line, err := c.prompt("Enter the board size (n): ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 {
			return n, nil
		}
		fmt.Fprintln(c.out, "Invalid size. Please enter a positive integer.")
	}
}

// ReadMove prompts for a 1-based "row col" pair until it names an empty cell of b.
func (c *Console) ReadMove(_ context.Context, b *game.Board, _ game.Mark) (game.Move, error) {
	for {
		line, err := c.prompt("Enter your move (row and column, e.g., 1 2): ")
		if err != nil {
			return game.Move{}, err
		}
		move, err := ParseMove(line)
		if err == nil {
			_, err = b.Get(move)
		}
		if err != nil {
			fmt.Fprintln(c.out, "Invalid input. Please enter row and column numbers.")
			continue
		}
		if !b.IsEmpty(move) {
			fmt.Fprintln(c.out, "Cell already occupied. Try again.")
			continue
		}
		return move, nil
	}
}

// ParseMove reads two whitespace-separated 1-based integers.
func ParseMove(line string) (game.Move, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return game.Move{}, fmt.Errorf("want 2 numbers, got %d", len(fields))
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return game.Move{}, fmt.Errorf("bad row: %w", err)
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Move{}, fmt.Errorf("bad column: %w", err)
	}
	return game.FromHuman(row, col), nil
}

func (c *Console) prompt(text string) (string, error) {
	fmt.Fprint(c.out, text)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

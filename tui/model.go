// Package tui is the interactive terminal front end for a game against the agent.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/player"
)

var (
	xStyle          = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007e50ff", Dark: "#6afd76ff"}).Render
	oStyle          = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0003adff", Dark: "#5f61fcff"}).Render
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#960000ff", Dark: "#fc7e7eff"}).Render
	bracketStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#414141ff", Dark: "#8f8f8fff"}).Render
	lastMoveStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000ff", Dark: "#ffffffff"}).Render
	winningRowStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#bb0000ff", Dark: "#df1010ff"}).Render
	statStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8a880fff", Dark: "#ddda1dff"}).Render
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#4204b5ff", Dark: "#8a5cf5ff"}).Render
)

type agentMoveMsg struct {
	move   game.Move
	metric metrics.SearchMetric
	err    error
}

type model struct {
	board   *game.Board
	human   game.Mark
	agent   player.Player
	cursor  int // flat index, -1 when no cell is free
	last    *game.Move
	metric  *metrics.SearchMetric
	spinner spinner.Model
	ctx     context.Context

	thinking bool
	status   game.Status
	err      error
	Replay   bool
}

// NewModel starts a game on b between the human mark and agent.
func NewModel(ctx context.Context, b *game.Board, agent player.Player) *model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &model{
		board:   b,
		human:   agent.Mark().Opponent(),
		agent:   agent,
		cursor:  -1,
		spinner: s,
		ctx:     ctx,
		status:  game.StatusOf(b),
	}
	m.cursor = m.firstEmpty()
	return m
}

func (m *model) Init() tea.Cmd {
	if !m.status.IsOver() && game.NextPlayer(m.board) == m.agent.Mark() {
		m.thinking = true
		return tea.Batch(m.spinner.Tick, m.agentMove())
	}
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case agentMoveMsg:
		m.thinking = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if err := m.place(msg.move, m.agent.Mark()); err != nil {
			m.err = fmt.Errorf("agent played %s: %w", msg.move, err)
			return m, tea.Quit
		}
		m.metric = &msg.metric
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "right":
			m.cursor = m.step(1)
		case "left":
			m.cursor = m.step(-1)
		case "down":
			m.cursor = m.step(m.board.Size())
		case "up":
			m.cursor = m.step(-m.board.Size())
		case "enter":
			if m.status.IsOver() {
				m.Replay = true
				return m, tea.Quit
			}
			if m.thinking || m.cursor < 0 {
				return m, nil
			}
			if err := m.place(m.moveAt(m.cursor), m.human); err != nil || m.status.IsOver() {
				return m, nil
			}
			m.thinking = true
			return m, tea.Batch(m.spinner.Tick, m.agentMove())
		}
		return m, nil

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// agentMove searches on a copy so View can keep reading the live board.
func (m *model) agentMove() tea.Cmd {
	b := m.board.Clone()
	return func() tea.Msg {
		move, metric, err := m.agent.ChooseMove(m.ctx, b)
		return agentMoveMsg{move: move, metric: metric, err: err}
	}
}

func (m *model) place(move game.Move, mark game.Mark) error {
	if err := m.board.Place(move, mark); err != nil {
		return err
	}
	m.last = &move
	m.status = game.StatusOf(m.board)
	if m.cursor < 0 || !m.board.IsEmpty(m.moveAt(m.cursor)) {
		if next := m.step(1); next != m.cursor {
			m.cursor = next
		} else {
			m.cursor = m.firstEmpty()
		}
	}
	return nil
}

// step moves the cursor by delta until it lands on an empty cell; it stays put if none is found.
func (m *model) step(delta int) int {
	if m.cursor < 0 {
		return m.firstEmpty()
	}
	n := m.board.Size()
	for i := m.cursor + delta; i >= 0 && i < n*n; i += delta {
		if m.board.IsEmpty(m.moveAt(i)) {
			return i
		}
	}
	return m.cursor
}

func (m *model) firstEmpty() int {
	cells := game.EmptyCells(m.board)
	if len(cells) == 0 {
		return -1
	}
	return cells[0].Row*m.board.Size() + cells[0].Col
}

func (m *model) moveAt(i int) game.Move {
	n := m.board.Size()
	return game.NewMove(i/n, i%n)
}

func (m *model) View() string {
	if m.Replay {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(headerStyle("--- tic tac toe ---") + "\n\n")

	sb.WriteString("Current player: ")
	sb.WriteString(styled(game.NextPlayer(m.board)))
	if m.thinking {
		sb.WriteString(" (agent) " + m.spinner.View())
	}
	sb.WriteString("\n")

	winning := m.winningCells()
	n := m.board.Size()
	for i := range n * n {
		move := m.moveAt(i)
		mark := m.board.At(move.Row, move.Col)
		text := styled(mark)
		if mark == game.Empty && i == m.cursor && !m.status.IsOver() {
			text = cursorStyle("*")
		}
		brackets := bracketStyle
		if winning[i] {
			brackets = winningRowStyle
		} else if m.last != nil && *m.last == move {
			brackets = lastMoveStyle
		}
		sb.WriteString(brackets("[") + text + brackets("]"))
		if (i+1)%n == 0 {
			sb.WriteString("\n")
		}
	}

	if m.metric != nil && m.last != nil {
		sb.WriteString(fmt.Sprintf("\nFound move: %s\nVisited %s nodes with %s cutoffs in %s\n",
			statStyle(m.last.String()),
			statStyle(fmt.Sprint(m.metric.Nodes)),
			statStyle(fmt.Sprint(m.metric.Cutoffs)),
			statStyle(m.metric.Duration.Round(time.Millisecond).String()),
		))
	}

	if m.err != nil {
		sb.WriteString("\nError: " + m.err.Error() + "\n")
	}

	if m.status.IsOver() {
		sb.WriteString("\nGAME OVER\n")
		if w := m.status.Winner(); w != game.Empty {
			sb.WriteString("Player " + styled(w) + " wins!\n")
		} else {
			sb.WriteString("The game is even!\n")
		}
		sb.WriteString("\nenter: play again  q: quit\n")
		return sb.String()
	}

	sb.WriteString("\narrows: move  enter: place  q: quit\n")
	return sb.String()
}

func (m *model) winningCells() map[int]bool {
	w := m.status.Winner()
	if w == game.Empty {
		return nil
	}
	n := m.board.Size()
	cells := map[int]bool{}
	lines := make([][]int, 0, 2*n+2)
	diag, anti := make([]int, n), make([]int, n)
	for i := range n {
		row, col := make([]int, n), make([]int, n)
		for j := range n {
			row[j] = i*n + j
			col[j] = j*n + i
		}
		lines = append(lines, row, col)
		diag[i] = i*n + i
		anti[i] = i*n + (n - 1 - i)
	}
	lines = append(lines, diag, anti)

	for _, line := range lines {
		owned := true
		for _, i := range line {
			move := m.moveAt(i)
			if m.board.At(move.Row, move.Col) != w {
				owned = false
				break
			}
		}
		if owned {
			for _, i := range line {
				cells[i] = true
			}
		}
	}
	return cells
}

func styled(mark game.Mark) string {
	switch mark {
	case game.X:
		return xStyle(mark.String())
	case game.O:
		return oStyle(mark.String())
	default:
		return mark.String()
	}
}

package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tictactoe/game"
)

var (
	xStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#007e50", Dark: "#6afd76"}).Render
	oStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#0003ad", Dark: "#5f61fc"}).Render
)

// Renderer prints boards and results. It implements engine.Observer.
type Renderer struct {
	out   io.Writer
	color bool
}

func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, color: color}
}

// FormatBoard lays out each row as cells joined by " | " under a rule of 4n-1 dashes.
func FormatBoard(b *game.Board, color bool) string {
	n := b.Size()
	var sb strings.Builder
	for r := range n {
		cells := make([]string, n)
		for c := range n {
			cells[c] = markText(b.At(r, c), color)
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("-", 4*n-1))
		sb.WriteString("\n")
	}
	return sb.String()
}

func markText(m game.Mark, color bool) string {
	if !color {
		return m.String()
	}
	switch m {
	case game.X:
		return xStyle(m.String())
	case game.O:
		return oStyle(m.String())
	default:
		return m.String()
	}
}

func (r *Renderer) Started(b *game.Board) {
	fmt.Fprint(r.out, FormatBoard(b, r.color))
}

func (r *Renderer) Moved(b *game.Board, mark game.Mark, move game.Move) {
	fmt.Fprintf(r.out, "\n%s plays at %s:\n", markText(mark, r.color), move)
	fmt.Fprint(r.out, FormatBoard(b, r.color))
}

func (r *Renderer) Finished(_ *game.Board, status game.Status) {
	if w := status.Winner(); w != game.Empty {
		fmt.Fprintf(r.out, "Player %s wins!\n", markText(w, r.color))
		return
	}
	fmt.Fprintln(r.out, "The game is even!")
}

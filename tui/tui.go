package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"tictactoe/game"
	"tictactoe/player"
)

// Play runs games on n×n boards against the player newAgent builds until the user quits.
func Play(ctx context.Context, n int, newAgent func() player.Player) error {
	for round := 1; ; round++ {
		b, err := game.NewBoard(n)
		if err != nil {
			return err
		}
		m := NewModel(ctx, b, newAgent())
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run game %d: %w", round, err)
		}
		if m.err != nil {
			return m.err
		}
		log.Info().Msgf("game %d finished: %s", round, m.status)
		if !m.Replay {
			return nil
		}
	}
}

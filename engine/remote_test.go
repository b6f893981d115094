package engine_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"tictactoe/communication/server"
	"tictactoe/engine"
	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/searcher"
)

func TestRemoteAgent(t *testing.T) {
	ts := httptest.NewServer(server.NewServer(searcher.NewMinimax(searcher.WithMetrics()), zerolog.Nop()).Handler())
	defer ts.Close()

	t.Run("matches the local search", func(t *testing.T) {
		b, err := game.ParseBoard([]string{"...", ".O.", ".XX"})
		require.NoError(t, err)

		remote := engine.NewRemoteAgent(game.O, searcher.Unbounded(), ts.URL)
		require.False(t, remote.IsHuman())
		require.Equal(t, game.O, remote.Mark())

		move, metric, err := remote.ChooseMove(context.Background(), b)
		require.NoError(t, err)
		require.Equal(t, game.NewMove(2, 0), move)
		require.Equal(t, "unbounded", metric.Depth)
		require.Positive(t, metric.Nodes)
	})

	t.Run("plays a full game against a local agent", func(t *testing.T) {
		b, err := game.NewBoard(3)
		require.NoError(t, err)
		x := player.NewAgent(game.X, searcher.Unbounded(), nil)
		o := engine.NewRemoteAgent(game.O, searcher.Unbounded(), ts.URL)

		result, err := engine.LocalEngine(b, x, o).Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, game.Draw, result.Status)
	})

	t.Run("server errors surface", func(t *testing.T) {
		b, err := game.NewBoard(4)
		require.NoError(t, err)
		remote := engine.NewRemoteAgent(game.O, searcher.Unbounded(), ts.URL)
		_, _, err = remote.ChooseMove(context.Background(), b)
		require.ErrorContains(t, err, "400")
	})
}

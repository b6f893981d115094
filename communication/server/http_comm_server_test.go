package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"tictactoe/communication"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/searcher"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(searcher.NewMinimax(searcher.WithMetrics(), searcher.WithGoroutines(2)), zerolog.Nop()).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, payload any, out any) int {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func depth(n int) *int { return &n }

func rows(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strings.Repeat(".", n)
	}
	return out
}

func TestPing(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestBestMove(t *testing.T) {
	ts := newTestServer(t)
	url := ts.URL + "/v1/moves/best"

	t.Run("empty board", func(t *testing.T) {
		var resp communication.BestMoveResponse
		code := postJSON(t, url, communication.BestMoveRequest{Board: []string{"...", "...", "..."}}, &resp)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, game.NewMove(0, 0), resp.Move)
		require.Equal(t, 1, resp.Row)
		require.Equal(t, 1, resp.Col)
		require.Equal(t, "(1, 1)", resp.Display)
		require.Equal(t, 0, resp.Score)
		require.Positive(t, resp.Nodes)
	})

	t.Run("winning move at depth zero", func(t *testing.T) {
		var resp communication.BestMoveResponse
		code := postJSON(t, url, communication.BestMoveRequest{
			Board: []string{"OO.", "XX.", "X.."},
			Depth: depth(0),
		}, &resp)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, game.NewMove(0, 2), resp.Move)
		require.Equal(t, 1, resp.Score)
	})

	t.Run("plays for X", func(t *testing.T) {
		var resp communication.BestMoveResponse
		code := postJSON(t, url, communication.BestMoveRequest{
			Board:  []string{"X.O", "X.O", "..."},
			Player: "x",
		}, &resp)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, game.NewMove(2, 0), resp.Move)
	})

	tests := []struct {
		name    string
		request communication.BestMoveRequest
		code    int
	}{
		{"full board", communication.BestMoveRequest{Board: []string{"XOX", "XOO", "OXX"}}, http.StatusConflict},
		{"ragged board", communication.BestMoveRequest{Board: []string{"...", ".."}}, http.StatusBadRequest},
		{"unknown mark", communication.BestMoveRequest{Board: []string{"..Z", "...", "..."}}, http.StatusBadRequest},
		{"empty player", communication.BestMoveRequest{Board: []string{"...", "...", "..."}, Player: "."}, http.StatusBadRequest},
		{"unbounded on 4x4", communication.BestMoveRequest{Board: []string{"....", "....", "....", "...."}}, http.StatusBadRequest},
		{"depth covering every cell on 6x6", communication.BestMoveRequest{Board: rows(6), Depth: depth(36)}, http.StatusBadRequest},
		{"depth above the cap on 5x5", communication.BestMoveRequest{Board: rows(5), Depth: depth(4)}, http.StatusBadRequest},
		{"board above the size cap", communication.BestMoveRequest{Board: rows(8), Depth: depth(1)}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp communication.ErrorResponse
			require.Equal(t, tt.code, postJSON(t, url, tt.request, &resp))
			require.NotEmpty(t, resp.Error)
		})
	}

	t.Run("shallow search on a large board", func(t *testing.T) {
		var resp communication.BestMoveResponse
		code := postJSON(t, url, communication.BestMoveRequest{Board: rows(6), Depth: depth(2)}, &resp)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, game.NewMove(0, 0), resp.Move)
	})

	t.Run("oversized body", func(t *testing.T) {
		var resp communication.ErrorResponse
		huge := communication.BestMoveRequest{Board: []string{strings.Repeat(".", meta.MAX_BODY_BYTES)}}
		require.Equal(t, http.StatusRequestEntityTooLarge, postJSON(t, url, huge, &resp))
		require.Contains(t, resp.Error, "request body exceeds")
	})

	t.Run("malformed json", func(t *testing.T) {
		resp, err := http.Post(url, "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestStatus(t *testing.T) {
	ts := newTestServer(t)
	url := ts.URL + "/v1/status"

	t.Run("board above the size cap", func(t *testing.T) {
		var resp communication.ErrorResponse
		require.Equal(t, http.StatusBadRequest, postJSON(t, url, communication.StatusRequest{Board: rows(8)}, &resp))
		require.Contains(t, resp.Error, "not supported")
	})

	t.Run("oversized body", func(t *testing.T) {
		huge := communication.StatusRequest{Board: rows(200)}
		require.Equal(t, http.StatusRequestEntityTooLarge, postJSON(t, url, huge, nil))
	})

	tests := []struct {
		board []string
		want  communication.StatusResponse
	}{
		{[]string{"...", "...", "..."}, communication.StatusResponse{Status: "in_progress", Next: "X"}},
		{[]string{"X..", "...", "..."}, communication.StatusResponse{Status: "in_progress", Next: "O"}},
		{[]string{"OX.", "OX.", "O.X"}, communication.StatusResponse{Status: "o_wins", Winner: "O"}},
		{[]string{"XOX", "XOO", "OXX"}, communication.StatusResponse{Status: "even", Full: true}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.board, "/"), func(t *testing.T) {
			var resp communication.StatusResponse
			require.Equal(t, http.StatusOK, postJSON(t, url, communication.StatusRequest{Board: tt.board}, &resp))
			require.Equal(t, tt.want, resp)
		})
	}
}

func TestSelfPlayStream(t *testing.T) {
	ts := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/ws/selfplay?size=3&depth=unbounded"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var frames []communication.Frame
	for {
		var frame communication.Frame
		if err := conn.ReadJSON(&frame); err != nil {
			require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
			break
		}
		frames = append(frames, frame)
	}

	require.Len(t, frames, 11, "start, nine moves and the result")
	require.Equal(t, "start", frames[0].Type)
	require.Equal(t, []string{"...", "...", "..."}, frames[0].Board)
	require.Equal(t, "move", frames[1].Type)
	require.Equal(t, "X", frames[1].Player)
	require.Equal(t, &game.Move{Row: 0, Col: 0}, frames[1].Move)

	last := frames[len(frames)-1]
	require.Equal(t, "result", last.Type)
	require.Equal(t, "even", last.Status)
}

func TestSelfPlayRejectsBadParameters(t *testing.T) {
	ts := newTestServer(t)
	for _, query := range []string{"size=0", "size=abc", "size=4&depth=-1", "size=4&depth=16", "size=5&depth=4", "size=8", "depth=deep"} {
		t.Run(query, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/v1/ws/selfplay?" + query)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

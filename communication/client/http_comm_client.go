package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tictactoe/communication"
	"tictactoe/game"
	"tictactoe/searcher"
)

type ClientCommunicator struct {
	serverURL string
	http      *http.Client
}

// NewClientCommunicator talks to an analysis server rooted at serverURL.
func NewClientCommunicator(serverURL string) *ClientCommunicator {
	return &ClientCommunicator{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      &http.Client{Timeout: 2 * time.Minute},
	}
}

func (cc *ClientCommunicator) BestMove(ctx context.Context, b *game.Board, mark game.Mark, depth searcher.Depth) (communication.BestMoveResponse, error) {
	var resp communication.BestMoveResponse
	err := cc.post(ctx, "/v1/moves/best", communication.BestMoveRequest{
		Board:  b.Rows(),
		Player: mark.String(),
		Depth:  communication.WireDepth(depth),
	}, &resp)
	return resp, err
}

func (cc *ClientCommunicator) Status(ctx context.Context, b *game.Board) (communication.StatusResponse, error) {
	var resp communication.StatusResponse
	err := cc.post(ctx, "/v1/status", communication.StatusRequest{Board: b.Rows()}, &resp)
	return resp, err
}

func (cc *ClientCommunicator) post(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.serverURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := cc.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr communication.ErrorResponse
		body, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"tictactoe/communication"
	"tictactoe/engine"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/searcher"
)

// SearchTimeout bounds the time one best-move request may spend searching.
const SearchTimeout = 30 * time.Second

// Server answers stateless analysis requests. It keeps no games between requests.
type Server struct {
	minimax  *searcher.Minimax
	logger   zerolog.Logger
	upgrader websocket.Upgrader
	timeout  time.Duration
}

func NewServer(minimax *searcher.Minimax, logger zerolog.Logger) *Server {
	if minimax == nil {
		minimax = searcher.NewMinimax()
	}
	return &Server{
		minimax: minimax,
		logger:  logger,
		timeout: SearchTimeout,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Post("/moves/best", s.handleBestMove)
		r.Post("/status", s.handleStatus)
		r.Get("/ws/selfplay", s.handleSelfPlay)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleBestMove(w http.ResponseWriter, r *http.Request) {
	var payload communication.BestMoveRequest
	if !decode(w, r, &payload) {
		return
	}
	b, mark, depth, err := payload.Parse()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	result, err := s.minimax.Search(ctx, b, mark, depth)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, communication.NewBestMoveResponse(result.Move, int(result.Score), result.Metric))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var payload communication.StatusRequest
	if !decode(w, r, &payload) {
		return
	}
	b, err := game.ParseBoard(payload.Board)
	if err == nil {
		err = communication.CheckSize(b.Size())
	}
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, communication.NewStatusResponse(b))
}

// handleSelfPlay streams an agent-vs-agent game, one frame per board.
func (s *Server) handleSelfPlay(w http.ResponseWriter, r *http.Request) {
	n := meta.ALGORITHM_SIZE
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "size must be a positive integer")
			return
		}
		n = parsed
	}
	depth := searcher.Unbounded()
	if n > meta.MAX_UNBOUNDED_SIZE {
		depth = searcher.Plies(meta.LIMITED_DEPTH)
	}
	if raw := r.URL.Query().Get("depth"); raw != "" {
		parsed, err := searcher.ParseDepth(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		depth = parsed
	}
	if err := communication.CheckDepth(n, depth); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	send := func(frame communication.Frame) {
		if err := conn.WriteJSON(frame); err != nil {
			s.logger.Debug().Err(err).Msg("self-play client went away")
			cancel()
		}
	}
	stream := engine.ObserverFuncs{
		OnStart: func(b *game.Board) {
			send(communication.Frame{Type: "start", Board: b.Rows()})
		},
		OnMove: func(b *game.Board, mark game.Mark, move game.Move) {
			send(communication.Frame{Type: "move", Board: b.Rows(), Player: mark.String(), Move: &move})
		},
		OnFinish: func(b *game.Board, status game.Status) {
			send(communication.Frame{Type: "result", Board: b.Rows(), Status: status.String()})
		},
	}

	e, err := engine.SelfPlay(n, depth, s.minimax, stream)
	if err != nil {
		s.logger.Warn().Err(err).Msg("self-play setup failed")
		return
	}
	if _, err := e.Run(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("self-play stopped")
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// decode reads a size-limited JSON body into v and writes the error response on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, meta.MAX_BODY_BYTES)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return false
	}
	writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
	return false
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, searcher.ErrNoMoveAvailable):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, communication.ErrorResponse{Error: msg})
}

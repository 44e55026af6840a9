// Package server exposes calculator sessions over websocket.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"go.creack.net/gocalc/config"
	"go.creack.net/gocalc/repl"
)

// maxLineSize bounds a single websocket message, i.e. one input line.
const maxLineSize = 64 << 10

// Server runs one repl.Session per websocket connection. Each text
// message is an input line, each reply is the line a stdio session
// would print.
type Server struct {
	cfg      config.Config
	logger   zerolog.Logger
	upgrader websocket.Upgrader

	sessions atomic.Int64 // Currently open sessions.
}

// New creates a new server.
func New(cfg config.Config, logger zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

// ListenAndServe serves on cfg.ListenAddr until the listener fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info().Str("addr", s.cfg.ListenAddr).Msg("calculator server starting")
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Load(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn().Err(err).Msg("write health response")
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }() // Best effort.
	conn.SetReadLimit(maxLineSize)

	s.sessions.Add(1)
	defer s.sessions.Add(-1)

	session := repl.New(s.cfg, nil, nil, s.logger)
	logger := s.logger.With().Str("session", session.ID()).Str("remote", r.RemoteAddr).Logger()
	logger.Debug().Msg("websocket connection established")

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if errors.Is(err, websocket.ErrReadLimit) {
				logger.Warn().Int("limit", maxLineSize).Msg("websocket message too large")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug().Err(err).Msg("websocket read error")
			}
			return
		}
		if msgType != websocket.TextMessage {
			logger.Warn().Int("type", msgType).Msg("ignoring non text message")
			continue
		}

		result, running := session.Eval(string(data))
		if !running {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
			if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
				logger.Debug().Err(err).Msg("websocket close")
			}
			return
		}
		if result == "" {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(s.cfg.Prompt+result)); err != nil {
			logger.Debug().Err(err).Msg("websocket write error")
			return
		}
	}
}

// Package server exposes the engine over HTTP and websockets.
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/foxzool/reversi/internal/board"
	"github.com/foxzool/reversi/internal/book"
	"github.com/foxzool/reversi/internal/engine"
)

// Server wires the engine, opening book and broadcast hub behind a
// chi router. One search runs at a time; concurrent search requests
// queue on the mutex.
type Server struct {
	engine *engine.Engine
	book   *book.Book
	hub    *Hub

	searchMu sync.Mutex
}

// New creates a server around an engine and an optional book.
func New(e *engine.Engine, b *book.Book) *Server {
	return &Server{
		engine: e,
		book:   b,
		hub:    NewHub(),
	}
}

// Hub returns the websocket hub so callers can run it.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Post("/api/search", s.handleSearch)
	r.Get("/api/moves", s.handleMoves)
	r.Post("/api/apply", s.handleApply)
	r.Get("/api/cache/tt", s.handleCacheStatus)
	r.Get("/ws/search", s.hub.ServeWS)

	return r
}

type searchRequest struct {
	Board      string `json:"board"`
	Depth      int    `json:"depth,omitempty"`
	MoveTimeMs int    `json:"moveTimeMs,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

type searchResponse struct {
	Move     string `json:"move"`
	Score    int    `json:"score"`
	Depth    int    `json:"depth"`
	Nodes    uint64 `json:"nodes"`
	Elapsed  string `json:"elapsed"`
	TimedOut bool   `json:"timedOut"`
	Book     bool   `json:"book"`
}

// handleSearch searches a position. Difficulty, when given, supplies
// the limits and the book flag; explicit depth/time override it.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	pos, err := board.ParseBoard(req.Board)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limits := engine.SearchLimits{Depth: req.Depth}
	useBook := false
	if req.Difficulty != "" {
		d, err := engine.ParseDifficulty(req.Difficulty)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		params := engine.DifficultySettings[d]
		limits = engine.SearchLimits{Depth: params.Depth, MoveTime: params.MoveTime}
		useBook = params.UseBook
	}
	if req.Depth > 0 {
		limits.Depth = req.Depth
	}
	if req.MoveTimeMs > 0 {
		limits.MoveTime = time.Duration(req.MoveTimeMs) * time.Millisecond
	}

	if useBook && s.book != nil {
		if m, ok := s.book.Probe(pos); ok {
			writeJSON(w, http.StatusOK, searchResponse{Move: m.String(), Book: true})
			return
		}
	}

	s.searchMu.Lock()
	defer s.searchMu.Unlock()

	s.engine.OnInfo = func(info engine.SearchInfo) {
		if s.hub.HasClients() {
			s.hub.Publish(searchEvent{Event: "info", Info: &info, Moves: moveStrings(info.PV)})
		}
	}
	defer func() { s.engine.OnInfo = nil }()

	start := time.Now()
	result := s.engine.Search(pos, limits)
	log.Info().Msgf("search done: move=%s score=%d depth=%d nodes=%d in %s",
		result.Move, result.Score, result.Depth, result.Nodes, time.Since(start).Round(time.Millisecond))

	resp := searchResponse{
		Move:     result.Move.String(),
		Score:    result.Score,
		Depth:    result.Depth,
		Nodes:    result.Nodes,
		Elapsed:  result.Elapsed.String(),
		TimedOut: result.TimedOut,
	}
	s.hub.Publish(searchEvent{Event: "result", Moves: []string{resp.Move}})
	writeJSON(w, http.StatusOK, resp)
}

type movesResponse struct {
	SideToMove string   `json:"sideToMove"`
	Moves      []string `json:"moves"`
	Terminal   bool     `json:"terminal"`
}

// handleMoves lists the legal moves of the side to move.
func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	pos, err := board.ParseBoard(r.URL.Query().Get("board"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, movesResponse{
		SideToMove: pos.SideToMove.String(),
		Moves:      moveStrings(pos.LegalMoveList(pos.SideToMove)),
		Terminal:   pos.IsTerminal(),
	})
}

type applyRequest struct {
	Board string `json:"board"`
	Move  string `json:"move"`
}

type applyResponse struct {
	Board    string `json:"board"`
	Flipped  int    `json:"flipped"`
	Terminal bool   `json:"terminal"`
	Winner   string `json:"winner,omitempty"`
	Black    int    `json:"black"`
	White    int    `json:"white"`
}

// handleApply plays one move (or a forced pass) and returns the
// resulting position.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	pos, err := board.ParseBoard(req.Board)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	move, err := board.ParseMove(req.Move)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	undo := pos.MakeMove(move)
	if !undo.Valid {
		writeError(w, http.StatusUnprocessableEntity, board.ErrInvalidMove.Error())
		return
	}

	resp := applyResponse{
		Board:    board.FormatBoard(pos),
		Flipped:  undo.Flipped.PopCount(),
		Terminal: pos.IsTerminal(),
		Black:    pos.CountDiscs(board.Black),
		White:    pos.CountDiscs(board.White),
	}
	if resp.Terminal {
		if winner, ok := pos.Winner(); ok {
			resp.Winner = winner.String()
		} else {
			resp.Winner = "draw"
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type cacheStatusResponse struct {
	Entries  uint64  `json:"entries"`
	HashFull int     `json:"hashFullPermille"`
	HitRate  float64 `json:"hitRatePercent"`
}

// handleCacheStatus reports transposition table usage.
func (s *Server) handleCacheStatus(w http.ResponseWriter, r *http.Request) {
	tt := s.engine.Table()
	writeJSON(w, http.StatusOK, cacheStatusResponse{
		Entries:  tt.Size(),
		HashFull: tt.HashFull(),
		HitRate:  tt.HitRate(),
	})
}

func moveStrings(moves []board.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Msgf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

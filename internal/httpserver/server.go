// internal/httpserver/server.go
//
// HTTP server wiring for the cryptogram backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, logging).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: POST /game/new, POST /game/input, POST /game/restart,
//     GET /game/{id}, DELETE /game/{id}.
//   - Daily endpoint: POST /daily/new (see routes_daily.go).
//   - Game tokens (JWT) so clients can address their game without an ID.
//
// Notes:
//   - Every input request carries one keystroke; the response holds the
//     controller's outcome and the re-rendered board.
//   - Rejected keystrokes are not errors: they return 200 with accepted=false.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cryptogram/internal/cipher"
	"github.com/robalobadob/cryptogram/internal/config"
	"github.com/robalobadob/cryptogram/internal/game"
	"github.com/robalobadob/cryptogram/internal/input"
	"github.com/robalobadob/cryptogram/internal/messages"
	"github.com/robalobadob/cryptogram/internal/store"
)

// maxMessageRunes bounds client-supplied messages.
const maxMessageRunes = 2000

// Server bundles router, game store and message source.
type Server struct {
	r        *chi.Mux
	store    store.Store
	messages *messages.Set
	cfg      config.Config
	newGen   func() *cipher.Generator
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, msgs *messages.Set) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		messages: msgs,
		cfg:      cfg,
		now:      time.Now,
	}
	s.newGen = func() *cipher.Generator {
		g := cipher.NewGenerator()
		g.MaxAttempts = cfg.MaxAttempts
		return g
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFor(cfg.ClientOrigin))       // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"cryptogram","endpoints":["/health","POST /game/new","POST /game/input","POST /game/restart","GET /game/{id}","POST /daily/new"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "games": s.store.Len()})
	})

	s.r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/input", s.handleInput)
		r.Post("/restart", s.handleRestart)
		r.Get("/{id}", s.handleGetGame)
		r.Delete("/{id}", s.handleDeleteGame)
	})
	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Message string `json:"message"` // optional; defaults to the configured message
}
type newGameRes struct {
	GameID string     `json:"gameId"`
	Token  string     `json:"token"`
	Board  game.Board `json:"board"`
}

// handleNewGame enciphers a message into a new game and hands out its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	msg := req.Message
	if msg == "" {
		msg = s.messages.Default()
	}
	if utf8.RuneCountInString(msg) > maxMessageRunes {
		writeError(w, http.StatusBadRequest, "message_too_long")
		return
	}

	g, tok, ok := s.startGame(w, r, msg, s.newGen(), "")
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, Token: tok, Board: g.Board()})
}

// startGame creates, stores and hands out a token for a new game. A
// non-empty daily date key marks the game as that day's puzzle.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, msg string, gen *cipher.Generator, daily string) (*game.Game, string, bool) {
	g, err := game.New(msg, gen)
	if err != nil {
		if errors.Is(err, game.ErrInvalidMessage) {
			writeError(w, http.StatusBadRequest, "invalid_message")
			return nil, "", false
		}
		log.Error().Err(err).Msg("new game")
		writeError(w, http.StatusInternalServerError, "cipher_failed")
		return nil, "", false
	}
	g.Daily = daily
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return nil, "", false
	}

	tok, exp, err := s.signToken(g.ID)
	if err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return nil, "", false
	}
	s.setTokenCookie(w, tok, exp)

	log.Info().Str("gameId", g.ID).Int("runes", utf8.RuneCountInString(msg)).Msg("game started")
	return g, tok, true
}

// inputReq/Res payloads for POST /game/input.
type inputReq struct {
	GameID string `json:"gameId"`
	Key    string `json:"key"`   // DOM-style key name or a single character
	Paste  bool   `json:"paste"` // clipboard insertion
	Slot   *int   `json:"slot"`  // originating editable position, optional
}
type inputRes struct {
	Outcome input.Outcome `json:"outcome"`
	Board   game.Board    `json:"board"`
}

// handleInput routes one keystroke through the game's active listener.
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, ok := s.resolveGame(w, r, req.GameID)
	if !ok {
		return
	}

	ev := input.ParseKey(req.Key, req.Paste)
	if req.Slot != nil {
		ev = ev.At(*req.Slot)
	}
	out, board := g.DispatchAndRender(ev)
	log.Debug().Str("gameId", g.ID).Stringer("kind", ev.Kind).Bool("accepted", out.Accepted).Int("focus", out.Focus).Msg("input")
	_ = json.NewEncoder(w).Encode(inputRes{Outcome: out, Board: board})
}

// restartReq is the payload for POST /game/restart.
type restartReq struct {
	GameID string `json:"gameId"`
}
type boardRes struct {
	Board game.Board `json:"board"`
}

// handleRestart re-enciphers the game's message with a fresh cipher.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req restartReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	g, ok := s.resolveGame(w, r, req.GameID)
	if !ok {
		return
	}
	if err := g.Restart(); err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("restart game")
		writeError(w, http.StatusInternalServerError, "cipher_failed")
		return
	}
	log.Info().Str("gameId", g.ID).Int("restarts", g.Restarts()).Msg("game restarted")
	_ = json.NewEncoder(w).Encode(boardRes{Board: g.Board()})
}

// handleGetGame returns the current board.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.resolveGame(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(boardRes{Board: g.Board()})
}

// handleDeleteGame drops a game from the store. Only the holder of the
// game's token may delete it.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tok := bearerOrCookie(r)
	if tok == "" {
		writeError(w, http.StatusUnauthorized, "missing_token")
		return
	}
	gid, err := s.parseToken(tok)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return
	}
	if gid != id {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	log.Info().Str("gameId", id).Msg("game deleted")
	w.WriteHeader(http.StatusNoContent)
}

// resolveGame looks up the game named by id, falling back to the request's
// token. It writes the error response itself.
func (s *Server) resolveGame(w http.ResponseWriter, r *http.Request, id string) (*game.Game, bool) {
	if id == "" {
		tok := bearerOrCookie(r)
		if tok == "" {
			writeError(w, http.StatusBadRequest, "missing_game")
			return nil, false
		}
		var err error
		if id, err = s.parseToken(tok); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return nil, false
		}
	}
	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return g, true
}

// writeError writes a {"error": code} body with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

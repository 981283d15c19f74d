// internal/httpserver/routes_daily.go
//
// HTTP route for the daily cryptogram.
//   - POST /daily/new → start today's puzzle (same message and cipher for
//     every player on a given UTC date).
//
// A caller whose token already names today's daily game gets that game back
// instead of a fresh one. The date lives on the stored game, so pruning or
// deleting the game forgets it too. Daily games are otherwise ordinary
// games: input, restart and lookup go through /game/*.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cryptogram/internal/daily"
	"github.com/robalobadob/cryptogram/internal/game"
)

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
	})
}

// dailyRes is returned by /daily/new.
type dailyRes struct {
	GameID string     `json:"gameId"`
	Date   string     `json:"date"`
	Token  string     `json:"token,omitempty"`
	Resume bool       `json:"resume"`
	Board  game.Board `json:"board"`
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	p := daily.For(s.now(), s.cfg.DailySalt, s.messages.Len())

	if g := s.currentDaily(r, p.Date); g != nil {
		_ = json.NewEncoder(w).Encode(dailyRes{GameID: g.ID, Date: p.Date, Resume: true, Board: g.Board()})
		return
	}

	g, tok, ok := s.startGame(w, r, s.messages.At(p.Index), p.Generator(s.cfg.MaxAttempts), p.Date)
	if !ok {
		return
	}
	log.Info().Str("gameId", g.ID).Str("date", p.Date).Int("message", p.Index).Msg("daily started")
	_ = json.NewEncoder(w).Encode(dailyRes{GameID: g.ID, Date: p.Date, Token: tok, Board: g.Board()})
}

// currentDaily returns the caller's stored daily game for date, if the
// request token names one.
func (s *Server) currentDaily(r *http.Request, date string) *game.Game {
	tok := bearerOrCookie(r)
	if tok == "" {
		return nil
	}
	id, err := s.parseToken(tok)
	if err != nil {
		return nil
	}
	g, err := s.store.Get(r.Context(), id)
	if err != nil || g.Daily != date {
		return nil
	}
	return g
}

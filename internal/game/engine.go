// internal/game/engine.go
//
// Game controller for a single cryptogram.
// Responsibilities:
//   - Build a fresh cipher and puzzle session on start and on every restart.
//   - Own the active input listener; restart detaches it before a new
//     session/listener pair is attached, all under one lock.
//   - Route keystrokes to the current listener only.
//   - Expose the board view for rendering.
//
// Notes:
//   - There is no win detection: players judge completion themselves.
package game

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cryptogram/internal/cipher"
	"github.com/robalobadob/cryptogram/internal/input"
	"github.com/robalobadob/cryptogram/internal/puzzle"
)

// ErrInvalidMessage is returned for empty or non-UTF-8 messages.
var ErrInvalidMessage = errors.New("game: empty or invalid message")

// New starts a game for message using gen for derangements.
func New(message string, gen *cipher.Generator) (*Game, error) {
	if message == "" || !utf8.ValidString(message) {
		return nil, ErrInvalidMessage
	}
	g := &Game{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: time.Now().UTC(),
		gen:       gen,
	}
	if err := g.start(); err != nil {
		return nil, err
	}
	return g, nil
}

// Restart replaces the session wholesale with a freshly enciphered one.
// On failure the previous session stays attached.
func (g *Game) Restart() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.start(); err != nil {
		return err
	}
	g.restarts++
	return nil
}

// start builds the cipher first so a generation failure leaves the
// current listener in place. Callers hold g.mu (or own g exclusively).
func (g *Game) start() error {
	c, err := cipher.New(g.gen)
	if err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("generate cipher")
		return err
	}
	g.detach()
	g.session = puzzle.New(g.Message, c)
	g.controller = input.NewController(g.session)
	g.attach(g.controller.Handle)
	log.Debug().Str("gameId", g.ID).Int("editable", g.session.Editable()).Msg("session started")
	return nil
}

func (g *Game) detach() { g.listener = nil }

func (g *Game) attach(l Listener) { g.listener = l }

// Dispatch feeds one keystroke to the active listener.
func (g *Game) Dispatch(e input.Event) input.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listener == nil {
		return input.Outcome{Focus: -1}
	}
	return g.listener(e)
}

// Board renders the current session.
func (g *Game) Board() Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board()
}

// DispatchAndRender applies e and returns the outcome with the resulting board.
func (g *Game) DispatchAndRender(e input.Event) (input.Outcome, Board) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := input.Outcome{Focus: -1}
	if g.listener != nil {
		out = g.listener(e)
	}
	return out, g.board()
}

// Session returns the current session. Callers must not mutate it while
// the game is shared.
func (g *Game) Session() *puzzle.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// Restarts returns how many times the game has been restarted.
func (g *Game) Restarts() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.restarts
}

func (g *Game) board() Board {
	b := Board{GameID: g.ID, Focus: -1, Restarts: g.restarts}
	if pos, ok := g.session.Focused(); ok {
		b.Focus = pos
	}
	slots := g.session.Slots()
	b.Tiles = make([]Tile, 0, len(slots))
	pos := 0
	for _, s := range slots {
		t := Tile{Glyph: string(s.Glyph), Editable: s.Editable}
		if s.Glyph == ' ' {
			t.Glyph = NBSP
		}
		if s.Editable {
			t.Position = pos
			pos++
			if s.Value != puzzle.Empty {
				t.Value = string(rune(s.Value))
			}
		}
		b.Tiles = append(b.Tiles, t)
	}
	return b
}

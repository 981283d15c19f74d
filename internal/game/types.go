// internal/game/types.go
//
// Core type definitions for the cryptogram game controller.
// Defines:
//   - Tile:  one rendered character of the enciphered message.
//   - Board: the render view of a game (tiles + focus).
//   - Game:  a restartable puzzle with its active input listener.

package game

import (
	"sync"
	"time"

	"github.com/robalobadob/cryptogram/internal/cipher"
	"github.com/robalobadob/cryptogram/internal/input"
	"github.com/robalobadob/cryptogram/internal/puzzle"
)

// NBSP is shown for space glyphs so tiles keep their width.
const NBSP = "\u00a0"

// Tile is one rendered character of the board.
type Tile struct {
	Glyph    string `json:"glyph"`           // ciphertext letter or fixed glyph
	Value    string `json:"value,omitempty"` // guessed letter (editable tiles only)
	Editable bool   `json:"editable"`
	Position int    `json:"position"` // editable position; meaningful when Editable
}

// Board is what the render layer reads after every event.
type Board struct {
	GameID   string `json:"gameId"`
	Tiles    []Tile `json:"tiles"`
	Focus    int    `json:"focus"` // editable position; -1 when nothing is editable
	Restarts int    `json:"restarts"`
}

// Listener consumes keystrokes for the session it was built for.
type Listener func(input.Event) input.Outcome

// Game holds one puzzle and the listener wired to its current session.
type Game struct {
	ID        string    // Unique game identifier (UUID).
	Message   string    // Plaintext message; re-enciphered on every restart.
	CreatedAt time.Time // When the game was first started.
	Daily     string    // Date key (YYYY-MM-DD) of a daily puzzle; empty otherwise.

	mu         sync.Mutex
	gen        *cipher.Generator
	session    *puzzle.Session
	controller *input.Controller
	listener   Listener // nil while detached
	restarts   int
}

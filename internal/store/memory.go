// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Games are ephemeral: nothing survives a restart of the process.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Remembers when each game was last touched so idle games can be pruned.
//   - Errors are returned for missing game IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/cryptogram/internal/game"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines the lookup interface for live games.
type Store interface {
	// Save adds or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID and marks it as recently used.
	// Returns ErrNotFound if the game is unknown.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete removes a game; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Prune drops games not touched since cutoff and returns how many went.
	Prune(ctx context.Context, cutoff time.Time) int

	// Len reports the number of live games.
	Len() int
}

type entry struct {
	game    *game.Game
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex     // guards games map
	games map[string]entry // keyed by Game.ID
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{games: make(map[string]entry), now: now}
}

// Save adds or updates the game in the map.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = entry{game: g, touched: m.now()}
	return nil
}

// Get looks up a game by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.touched = m.now()
	m.games[id] = e
	return e.game, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) Prune(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if e.touched.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

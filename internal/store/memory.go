// internal/store/memory.go
//
// In-memory session store for rounds served over HTTP.
// The core game is single-owner and not concurrency safe, so every access
// to a stored *game.Game goes through Update/View, which run under the
// store's lock.
//
// Characteristics:
//   - Rounds keyed by Game.ID().
//   - Each entry remembers when it was last touched; Prune drops idle ones.
//   - State is lost when the process restarts (persistence is out of scope).

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/guessnum/internal/game"
)

// ErrNotFound is returned for unknown (or pruned) round IDs.
var ErrNotFound = errors.New("round not found")

// Store defines the session interface used by the HTTP layer.
type Store interface {
	// Save adds or replaces a round.
	Save(ctx context.Context, g *game.Game) error

	// Update runs fn on the round with exclusive access.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete removes a round. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Prune removes rounds not touched since before and reports how many went.
	Prune(ctx context.Context, before time.Time) int

	// Len reports the number of stored rounds.
	Len() int
}

type entry struct {
	g       *game.Game
	touched time.Time
}

// memory is a map-based Store guarded by a single mutex.
type memory struct {
	mu    sync.Mutex
	games map[string]*entry
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{games: make(map[string]*entry), now: now}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID()] = &entry{g: g, touched: m.now()}
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	e.touched = m.now()
	return fn(e.g)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) Prune(ctx context.Context, before time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if ctx.Err() != nil {
			break
		}
		if e.touched.Before(before) {
			delete(m.games, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.games)
}

// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for live rounds; finished rounds are summarized to SQL elsewhere.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex; Update holds the write lock while the
//     callback runs, so guesses against one round are serialized.
//   - Optional TTL eviction of rounds not touched within the window.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/internal/game"
)

var ErrNotFound = errors.New("round not found")

// Store defines the persistence interface for live rounds.
type Store interface {
	// Save persists or updates a round.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a round by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update runs fn against the stored round under exclusive access.
	// Errors from fn are returned unchanged.
	Update(ctx context.Context, id string, fn func(*game.Game) error) error
}

type entry struct {
	g       *game.Game
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[string]*entry
	ttl   time.Duration
	now   func() time.Time
}

// MemoryOption configures NewMemoryStore.
type MemoryOption func(*memory)

// WithTTL evicts rounds idle for longer than d. Zero disables eviction.
func WithTTL(d time.Duration) MemoryOption { return func(m *memory) { m.ttl = d } }

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption { return func(m *memory) { m.now = now } }

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(opts ...MemoryOption) Store {
	m := &memory{games: make(map[string]*entry), now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	m.games[g.ID] = &entry{g: g, touched: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.games[id]
	if !ok || m.expired(e) {
		return nil, ErrNotFound
	}
	return e.g, nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Game) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok || m.expired(e) {
		return ErrNotFound
	}
	e.touched = m.now()
	return fn(e.g)
}

func (m *memory) expired(e *entry) bool {
	return m.ttl > 0 && m.now().Sub(e.touched) > m.ttl
}

// sweepLocked drops expired entries. Caller holds the write lock.
func (m *memory) sweepLocked() {
	if m.ttl <= 0 {
		return
	}
	for id, e := range m.games {
		if m.expired(e) {
			delete(m.games, id)
		}
	}
}

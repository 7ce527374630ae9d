// internal/store/memory.go
//
// In-memory session store for live Clue games.
//
// Characteristics:
//   - Sessions keyed by game ID in a map guarded by an RWMutex.
//   - Each Session carries its own mutex and its own seeded *rand.Rand, so
//     commands against one game are serialised without blocking the others
//     and a seed replays the same opponent behaviour.
//   - Every session has an owner (player id); callers look games up by id and
//     check ownership themselves, List filters by owner.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/robalobadob/clue/internal/game"
)

// ErrGameNotFound is returned for unknown session ids.
var ErrGameNotFound = errors.New("game not found")

// Session is one live game plus what is needed to keep playing it.
type Session struct {
	ID        string
	Owner     string
	Seed      int64
	Daily     string // date key for daily cases, empty otherwise
	CreatedAt time.Time
	Game      *game.Game
	RNG       *rand.Rand
	Recorded  bool // result written to history

	mu sync.Mutex
}

// Lock serialises commands on the session.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// NewSession wraps g with an rng seeded by seed.
func NewSession(owner string, seed int64, g *game.Game) *Session {
	return &Session{
		ID:        g.ID,
		Owner:     owner,
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
		Game:      g,
		RNG:       rand.New(rand.NewSource(seed)),
	}
}

// Store defines the session store.
type Store interface {
	// Create adds a session. A session with the same id is replaced.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by id, or ErrGameNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session, or returns ErrGameNotFound.
	Delete(ctx context.Context, id string) error

	// List returns owner's sessions, newest first.
	List(ctx context.Context, owner string) ([]*Session, error)
}

type memory struct {
	mu       sync.RWMutex        // guards sessions
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Create(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrGameNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memory) List(ctx context.Context, owner string) ([]*Session, error) {
	m.mu.RLock()
	out := []*Session{}
	for _, s := range m.sessions {
		if s.Owner == owner {
			out = append(out, s)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

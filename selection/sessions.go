package selection

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lakshay-nasa/city-scout/models"
)

var ErrSessionNotFound = errors.New("selection: session not found")

// Session binds one drafting session's selection to an opaque id.
type Session struct {
	ID        string
	CreatedAt time.Time
	*Selection
}

// Registry holds the live drafting sessions. Each session is driven by a
// single UI client, but requests can overlap, so access goes through a
// mutex.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Start creates an empty selection for a fresh session.
func (r *Registry) Start(profile models.Profile) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Selection: New(profile),
	}
	r.sessions[s.ID] = s
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// End discards the in-memory selection. The remote record, if one was
// created, stays where it is.
func (r *Registry) End(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

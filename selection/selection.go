package selection

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lakshay-nasa/city-scout/models"
)

// MaxPlaces bounds one trip's selection.
const MaxPlaces = 5

// ErrCapacityExceeded is returned by Add when the selection is full; the
// selection itself is left untouched.
var ErrCapacityExceeded = errors.New("selection: maximum places reached")

// NoticeKind mirrors the toast kinds the UI renders.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeWarn    NoticeKind = "warn"
)

// Notice is a user-visible outcome of a mutation. Mutations are never
// silent; the HTTP layer forwards these to the UI surface.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Selection is the ordered, capacity-bounded set of places picked during one
// drafting session, together with the user profile. In-memory only; the
// derived itinerary record is the only thing that persists. Safe for
// concurrent use: overlapping requests can carry the same session token.
type Selection struct {
	mu       sync.Mutex
	places   []models.Place
	profile  models.Profile
	recordID string
}

func New(profile models.Profile) *Selection {
	return &Selection{profile: profile}
}

// Add appends place at the end; insertion order is the display and export
// order. A full selection rejects the add without mutating state.
func (s *Selection) Add(place models.Place) (Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.places) >= MaxPlaces {
		return Notice{
			Kind:    NoticeWarn,
			Message: fmt.Sprintf("Maximum %d locations allowed for this trip!", MaxPlaces),
		}, ErrCapacityExceeded
	}

	s.places = append(s.places, place)
	return Notice{
		Kind:    NoticeSuccess,
		Message: fmt.Sprintf("Added %s to itinerary", place.Name),
	}, nil
}

// Remove drops the place at index. Out-of-range indexes are a no-op; no
// persisted identity depends on position, so nothing needs renumbering.
func (s *Selection) Remove(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.places) {
		return
	}
	s.places = append(s.places[:index], s.places[index+1:]...)
}

// Places returns a copy so downstream renders never alias live state.
func (s *Selection) Places() []models.Place {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Place, len(s.places))
	copy(out, s.places)
	return out
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.places)
}

func (s *Selection) Profile() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Selection) SetProfile(p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// RecordID is the opaque handle to the remote itinerary record; empty means
// no record exists (creation skipped or failed) and any later status
// transition must be skipped rather than attempted.
func (s *Selection) RecordID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordID
}

func (s *Selection) SetRecordID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordID = id
}

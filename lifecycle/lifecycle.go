// Package lifecycle owns the remote itinerary record: one document per
// drafting session, created as draft and finalized to exported. The record
// is a metadata side-channel for the change-stream watcher; both writes are
// single best-effort attempts and the caller decides whether a failure may
// interrupt the user flow (it never should).
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lakshay-nasa/city-scout/models"
)

// ErrNoRecord marks a transition attempted with no record handle, e.g. when
// creation failed earlier in the session. Callers skip the store write and
// surface a warning instead.
var ErrNoRecord = errors.New("lifecycle: no remote record for this session")

// SyncError wraps a failed write against the record store.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string {
	return "lifecycle: " + e.Op + ": " + e.Err.Error()
}

func (e *SyncError) Unwrap() error { return e.Err }

// collection is the slice of *mongo.Collection the store needs; tests
// substitute a fake.
type collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

// Store manages itinerary records in one Mongo collection.
type Store struct {
	col collection
}

func NewStore(col collection) *Store {
	return &Store{col: col}
}

// Create inserts a draft record carrying a snapshot of the current profile
// and places, and returns the id the store assigned. The snapshot is a
// copy; later selection or profile edits never reach it. On failure the
// session keeps going with an empty id.
func (s *Store) Create(ctx context.Context, profile models.Profile, places []models.Place) (string, error) {
	snapshot := make([]models.Place, len(places))
	copy(snapshot, places)

	rec := models.ItineraryRecord{
		Status:    models.StatusDraft,
		CreatedAt: time.Now().UTC(),
		User:      profile,
		Locations: snapshot,
	}

	res, err := s.col.InsertOne(ctx, rec)
	if err != nil {
		return "", &SyncError{Op: "create", Err: err}
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", &SyncError{Op: "create", Err: fmt.Errorf("unexpected inserted id %T", res.InsertedID)}
	}
	return oid.Hex(), nil
}

// Transition finalizes draft -> exported and stamps exportedAt. The status
// guard lives in the update filter, so the edge is monotonic: a second call
// matches nothing and is a harmless no-op, and a record can never end up
// between the two observable states.
func (s *Store) Transition(ctx context.Context, id string) error {
	if id == "" {
		return ErrNoRecord
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &SyncError{Op: "transition", Err: err}
	}

	filter := bson.M{"_id": oid, "status": models.StatusDraft}
	update := bson.M{"$set": bson.M{
		"status":     models.StatusExported,
		"exportedAt": time.Now().UTC(),
	}}

	if _, err := s.col.UpdateOne(ctx, filter, update); err != nil {
		return &SyncError{Op: "transition", Err: err}
	}
	// MatchedCount 0 means the record is already exported (or was never
	// created remotely); both are acceptable terminal outcomes.
	return nil
}

// Get fetches one record by id.
func (s *Store) Get(ctx context.Context, id string) (models.ItineraryRecord, error) {
	var rec models.ItineraryRecord

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return rec, &SyncError{Op: "get", Err: err}
	}
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		return rec, &SyncError{Op: "get", Err: err}
	}
	return rec, nil
}

package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lakshay-nasa/city-scout/models"
)

// fakeCollection applies draft->exported updates to an in-memory record the
// way the real collection would, including the status guard in the filter.
type fakeCollection struct {
	insertErr error
	updateErr error

	record  *models.ItineraryRecord
	updates int
}

func (f *fakeCollection) InsertOne(_ context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	rec := document.(models.ItineraryRecord)
	rec.ID = primitive.NewObjectID()
	f.record = &rec
	return &mongo.InsertOneResult{InsertedID: rec.ID}, nil
}

func (f *fakeCollection) UpdateOne(_ context.Context, filter interface{}, update interface{}, _ ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates++

	fl := filter.(bson.M)
	if f.record == nil || f.record.ID != fl["_id"].(primitive.ObjectID) || f.record.Status != fl["status"].(models.Status) {
		return &mongo.UpdateResult{MatchedCount: 0}, nil
	}

	set := update.(bson.M)["$set"].(bson.M)
	f.record.Status = set["status"].(models.Status)
	exportedAt := set["exportedAt"].(time.Time)
	f.record.ExportedAt = &exportedAt
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeCollection) FindOne(_ context.Context, _ interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	if f.record == nil {
		return mongo.NewSingleResultFromDocument(nil, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(*f.record, nil, nil)
}

func testPlaces() []models.Place {
	return []models.Place{
		{Name: "Eiffel Tower", PlaceID: "p123", Lat: 48.8584, Lng: 2.2945},
		{Name: "Dropped Pin", Lat: 48.85, Lng: 2.29},
	}
}

func TestCreateInsertsDraftSnapshot(t *testing.T) {
	col := &fakeCollection{}
	store := NewStore(col)

	places := testPlaces()
	id, err := store.Create(context.Background(), models.Profile{Name: "Lakshay Nasa"}, places)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("empty id returned")
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		t.Fatalf("id is not an object id hex: %q", id)
	}

	if col.record.Status != models.StatusDraft {
		t.Fatalf("new record status = %q, want draft", col.record.Status)
	}
	if col.record.CreatedAt.IsZero() {
		t.Fatal("createdAt not stamped")
	}
	if col.record.ExportedAt != nil {
		t.Fatal("exportedAt set on draft")
	}

	// the snapshot is a copy, not a live reference
	places[0].Name = "mutated"
	if col.record.Locations[0].Name != "Eiffel Tower" {
		t.Fatal("snapshot aliased the caller's slice")
	}
}

func TestCreateFailureIsSyncError(t *testing.T) {
	col := &fakeCollection{insertErr: errors.New("network down")}
	store := NewStore(col)

	id, err := store.Create(context.Background(), models.Profile{}, nil)
	if id != "" {
		t.Fatalf("failed create returned id %q", id)
	}
	var syncErr *SyncError
	if !errors.As(err, &syncErr) || syncErr.Op != "create" {
		t.Fatalf("expected create SyncError, got %v", err)
	}
}

func TestTransitionWithoutRecordIsSkipped(t *testing.T) {
	col := &fakeCollection{}
	store := NewStore(col)

	if err := store.Transition(context.Background(), ""); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}
	if col.updates != 0 {
		t.Fatal("transition with empty id hit the store")
	}
}

func TestCreateThenTransition(t *testing.T) {
	col := &fakeCollection{}
	store := NewStore(col)

	id, err := store.Create(context.Background(), models.Profile{Name: "N"}, testPlaces())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Transition(context.Background(), id); err != nil {
		t.Fatalf("transition: %v", err)
	}

	rec, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Status != models.StatusExported {
		t.Fatalf("status = %q, want exported", rec.Status)
	}
	if rec.ExportedAt == nil || rec.ExportedAt.Before(rec.CreatedAt) {
		t.Fatalf("exportedAt %v must be set and >= createdAt %v", rec.ExportedAt, rec.CreatedAt)
	}
}

func TestTransitionTwiceIsSafe(t *testing.T) {
	col := &fakeCollection{}
	store := NewStore(col)

	id, _ := store.Create(context.Background(), models.Profile{}, nil)
	if err := store.Transition(context.Background(), id); err != nil {
		t.Fatalf("first transition: %v", err)
	}
	first := *col.record.ExportedAt

	// second attempt matches nothing and must not error or revert
	if err := store.Transition(context.Background(), id); err != nil {
		t.Fatalf("second transition: %v", err)
	}
	if col.record.Status != models.StatusExported {
		t.Fatal("status reverted")
	}
	if !col.record.ExportedAt.Equal(first) {
		t.Fatal("exportedAt rewritten by duplicate transition")
	}
}

func TestTransitionStoreFailure(t *testing.T) {
	col := &fakeCollection{updateErr: errors.New("network down")}
	store := NewStore(col)

	err := store.Transition(context.Background(), primitive.NewObjectID().Hex())
	var syncErr *SyncError
	if !errors.As(err, &syncErr) || syncErr.Op != "transition" {
		t.Fatalf("expected transition SyncError, got %v", err)
	}
}

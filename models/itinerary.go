package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the lifecycle state of an itinerary record. The draft -> exported
// edge is the only legal transition; exported is terminal.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusExported Status = "exported"
)

// Place is one selected point of interest. Immutable once added to a
// selection; replacing one means remove + re-add.
type Place struct {
	PlaceID string  `json:"placeId,omitempty" bson:"placeId,omitempty"` // absent for manually dropped pins
	Name    string  `json:"name" bson:"name"`
	Lat     float64 `json:"lat" bson:"lat"`
	Lng     float64 `json:"lng" bson:"lng"`
	Photo   string  `json:"photo" bson:"photo"`
}

// Profile is the user identity stamped onto generated templates. Copied by
// value wherever it feeds a render, so later edits never rewrite an already
// rendered document.
type Profile struct {
	Name     string `json:"name" bson:"name"`
	Subtitle string `json:"subtitle" bson:"subtitle"`
	Avatar   string `json:"avatar,omitempty" bson:"avatar,omitempty"` // data URI
}

// ItineraryRecord is the persisted document for one drafting session. Field
// names match what the catalog watcher reads off the change stream.
type ItineraryRecord struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Status     Status             `json:"status" bson:"status"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	ExportedAt *time.Time         `json:"exportedAt,omitempty" bson:"exportedAt,omitempty"`
	User       Profile            `json:"user" bson:"user"`
	Locations  []Place            `json:"locations" bson:"locations"`
}

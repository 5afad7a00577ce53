package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryWantToWatch = "want-to-watch"
	CategoryWatching    = "watching"
	CategoryWatched     = "watched"
	CategoryDropped     = "dropped"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// WatchlistEntry es el documento de la colección watchlist.
// Índice único (user, movie): una entrada por usuario y película.
// A diferencia de las reviews, las entradas se borran de verdad
// (ningún agregado depende de ellas).
type WatchlistEntry struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Movie     primitive.ObjectID `json:"movie" bson:"movie"`
	Category  string             `json:"category" bson:"category"`
	Priority  string             `json:"priority" bson:"priority"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Watched   bool               `json:"watched" bson:"watched"`
	DateAdded time.Time          `json:"dateAdded" bson:"dateAdded"`

	MovieInfo *MovieSummary `json:"movieInfo,omitempty" bson:"-"`
}

type WatchlistAddRequest struct {
	MovieID  string `json:"movieId" validate:"required"`
	Category string `json:"category,omitempty" validate:"omitempty,oneof=want-to-watch watching watched dropped"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Notes    string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type WatchlistUpdateRequest struct {
	Category *string `json:"category,omitempty" validate:"omitempty,oneof=want-to-watch watching watched dropped"`
	Priority *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	Watched  *bool   `json:"watched,omitempty"`
}

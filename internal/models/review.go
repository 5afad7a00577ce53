package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review es el documento de la colección reviews. El índice único
// (user, movie) garantiza una review por usuario y película.
// helpfulBy y notHelpfulBy son disjuntos: un voto es excluyente.
type Review struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	User         primitive.ObjectID   `json:"user" bson:"user"`
	Movie        primitive.ObjectID   `json:"movie" bson:"movie"`
	Rating       float64              `json:"rating" bson:"rating"`
	Title        string               `json:"title,omitempty" bson:"title,omitempty"`
	ReviewText   string               `json:"reviewText" bson:"reviewText"`
	Spoilers     bool                 `json:"spoilers" bson:"spoilers"`
	HelpfulBy    []primitive.ObjectID `json:"-" bson:"helpfulBy"`
	NotHelpfulBy []primitive.ObjectID `json:"-" bson:"notHelpfulBy"`
	Helpful      int                  `json:"helpful" bson:"helpful"`
	NotHelpful   int                  `json:"notHelpful" bson:"notHelpful"`
	IsActive     bool                 `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`

	// Joins de lectura, no se persisten.
	Reviewer  *UserSummary  `json:"reviewer,omitempty" bson:"-"`
	MovieInfo *MovieSummary `json:"movieInfo,omitempty" bson:"-"`
}

type ReviewCreateRequest struct {
	Rating     float64 `json:"rating" validate:"required,gte=1,lte=5"`
	ReviewText string  `json:"reviewText" validate:"required,min=10,max=2000"`
	Title      string  `json:"title,omitempty" validate:"omitempty,max=100"`
	Spoilers   bool    `json:"spoilers"`
}

// Actualización parcial: solo los campos presentes se aplican.
type ReviewUpdateRequest struct {
	Rating     *float64 `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	ReviewText *string  `json:"reviewText,omitempty" validate:"omitempty,min=10,max=2000"`
	Title      *string  `json:"title,omitempty" validate:"omitempty,max=100"`
	Spoilers   *bool    `json:"spoilers,omitempty"`
}

// Body de POST /reviews/{id}/helpful. Puntero para distinguir
// "false" de campo ausente.
type VoteRequest struct {
	Helpful *bool `json:"helpful" validate:"required"`
}

type VoteCounts struct {
	Helpful    int `json:"helpful"`
	NotHelpful int `json:"notHelpful"`
}

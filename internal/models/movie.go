package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Géneros canónicos aceptados en alta/edición de películas.
var AllowedGenres = []string{
	"Action", "Adventure", "Animation", "Biography", "Comedy",
	"Crime", "Documentary", "Drama", "Family", "Fantasy",
	"History", "Horror", "Music", "Mystery", "Romance",
	"Sci-Fi", "Sport", "Thriller", "War", "Western",
}

func IsAllowedGenre(g string) bool {
	for _, v := range AllowedGenres {
		if v == g {
			return true
		}
	}
	return false
}

type CastMember struct {
	Name      string `json:"name" bson:"name"`
	Character string `json:"character,omitempty" bson:"character,omitempty"`
}

// Movie es el documento de la colección movies.
// averageRating y totalReviews son derivados: solo los escribe el
// agregador de ratings, nunca el cliente.
type Movie struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Overview      string             `json:"overview" bson:"overview"`
	Genres        []string           `json:"genres" bson:"genres"`
	ReleaseYear   int                `json:"releaseYear" bson:"releaseYear"`
	Director      string             `json:"director" bson:"director"`
	Cast          []CastMember       `json:"cast,omitempty" bson:"cast,omitempty"`
	Runtime       int                `json:"runtime,omitempty" bson:"runtime,omitempty"`
	PosterURL     string             `json:"posterUrl,omitempty" bson:"posterUrl,omitempty"`
	BackdropURL   string             `json:"backdropUrl,omitempty" bson:"backdropUrl,omitempty"`
	TrailerURL    string             `json:"trailerUrl,omitempty" bson:"trailerUrl,omitempty"`
	AverageRating float64            `json:"averageRating" bson:"averageRating"`
	TotalReviews  int64              `json:"totalReviews" bson:"totalReviews"`
	Featured      bool               `json:"featured" bson:"featured"`
	Trending      bool               `json:"trending" bson:"trending"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// MovieSummary es lo que se adjunta a reviews y watchlist en los listados.
type MovieSummary struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	Title         string             `json:"title" bson:"title"`
	PosterURL     string             `json:"posterUrl,omitempty" bson:"posterUrl,omitempty"`
	ReleaseYear   int                `json:"releaseYear" bson:"releaseYear"`
	Genres        []string           `json:"genres" bson:"genres"`
	AverageRating float64            `json:"averageRating" bson:"averageRating"`
}

// Payload para crear una película (solo admin).
type MovieCreateRequest struct {
	Title       string       `json:"title" validate:"required,max=200"`
	Overview    string       `json:"overview" validate:"required,min=10,max=2000"`
	Genres      []string     `json:"genres" validate:"required,min=1,dive,required"`
	ReleaseYear int          `json:"releaseYear" validate:"required,min=1888"`
	Director    string       `json:"director" validate:"required,max=100"`
	Cast        []CastMember `json:"cast,omitempty"`
	Runtime     int          `json:"runtime,omitempty" validate:"omitempty,min=1"`
	PosterURL   string       `json:"posterUrl,omitempty" validate:"omitempty,url"`
	BackdropURL string       `json:"backdropUrl,omitempty" validate:"omitempty,url"`
	TrailerURL  string       `json:"trailerUrl,omitempty" validate:"omitempty,url"`
	Featured    bool         `json:"featured"`
	Trending    bool         `json:"trending"`
}

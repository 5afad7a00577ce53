package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username       string             `json:"username" bson:"username"`
	Email          string             `json:"email" bson:"email"`
	PasswordHash   string             `json:"-" bson:"passwordHash"`
	Bio            string             `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfilePicture string             `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	FavoriteGenres []string           `json:"favoriteGenres,omitempty" bson:"favoriteGenres,omitempty"`
	IsAdmin        bool               `json:"isAdmin" bson:"isAdmin"`
	JoinDate       time.Time          `json:"joinDate" bson:"joinDate"`
}

// UserSummary es el join de lectura que acompaña a cada review.
type UserSummary struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	Username       string             `json:"username" bson:"username"`
	ProfilePicture string             `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
}

// UserProfile agrega al usuario sus contadores públicos.
type UserProfile struct {
	User
	ReviewCount    int64 `json:"reviewCount"`
	WatchlistCount int64 `json:"watchlistCount"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserUpdateRequest struct {
	Username       *string   `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Bio            *string   `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePicture *string   `json:"profilePicture,omitempty" validate:"omitempty,url"`
	FavoriteGenres *[]string `json:"favoriteGenres,omitempty"`
}

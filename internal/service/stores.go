package service

import (
	"context"

	"reelcritic/internal/models"
	"reelcritic/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interfaces de acceso a datos que consumen los servicios. Las
// implementaciones reales viven en internal/repository; los tests
// usan fakes en memoria.

type MovieStore interface {
	Insert(ctx context.Context, m *models.Movie) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error)
	FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.MovieSummary, error)
	Search(ctx context.Context, q, genre string, year int, p repository.ListParams) ([]models.Movie, int64, error)
	Featured(ctx context.Context, limit int) ([]models.Movie, error)
	Trending(ctx context.Context, limit int) ([]models.Movie, error)
	SetRatingStats(ctx context.Context, id primitive.ObjectID, avg float64, count int64) error
}

type ReviewStore interface {
	Insert(ctx context.Context, rev *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindByUserAndMovie(ctx context.Context, user, movie primitive.ObjectID) (*models.Review, error)
	ListByMovie(ctx context.Context, movie primitive.ObjectID, p repository.ListParams) ([]models.Review, int64, error)
	ListByUser(ctx context.Context, user primitive.ObjectID, p repository.ListParams) ([]models.Review, int64, error)
	ActiveRatings(ctx context.Context, movie primitive.ObjectID) ([]float64, error)
	Update(ctx context.Context, id primitive.ObjectID, set map[string]any) (*models.Review, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	SetVote(ctx context.Context, id, voter primitive.ObjectID, helpful bool) (*models.Review, error)
	CountActiveByUser(ctx context.Context, user primitive.ObjectID) (int64, error)
}

type WatchlistStore interface {
	Insert(ctx context.Context, e *models.WatchlistEntry) error
	FindByUserAndMovie(ctx context.Context, user, movie primitive.ObjectID) (*models.WatchlistEntry, error)
	Delete(ctx context.Context, user, movie primitive.ObjectID) (bool, error)
	Update(ctx context.Context, user, movie primitive.ObjectID, set map[string]any) (*models.WatchlistEntry, error)
	ListByUser(ctx context.Context, user primitive.ObjectID, category string, p repository.ListParams) ([]models.WatchlistEntry, int64, error)
	CountByUser(ctx context.Context, user primitive.ObjectID) (int64, error)
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set map[string]any) error
	FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error)
}

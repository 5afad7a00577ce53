package service

import (
	"context"
	"testing"

	"reelcritic/internal/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedMovie(t *testing.T, movies *fakeMovieStore, title string) primitive.ObjectID {
	t.Helper()
	m := &models.Movie{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Overview:    "una película de prueba con sinopsis suficiente",
		Genres:      []string{"Drama"},
		ReleaseYear: 2020,
		Director:    "Alguien",
	}
	require.NoError(t, movies.Insert(context.Background(), m))
	return m.ID
}

func seedReview(t *testing.T, reviews *fakeReviewStore, user, movie primitive.ObjectID, rating float64) primitive.ObjectID {
	t.Helper()
	rev := &models.Review{
		ID:         primitive.NewObjectID(),
		User:       user,
		Movie:      movie,
		Rating:     rating,
		ReviewText: "texto de review con largo suficiente",
		IsActive:   true,
	}
	require.NoError(t, reviews.Insert(context.Background(), rev))
	return rev.ID
}

func TestRecomputeRoundsToOneDecimal(t *testing.T) {
	ctx := context.Background()
	movies := newFakeMovieStore()
	reviews := newFakeReviewStore()
	svc := NewRatingService(reviews, movies)

	movieID := seedMovie(t, movies, "Whiplash")
	seedReview(t, reviews, primitive.NewObjectID(), movieID, 3.5)
	seedReview(t, reviews, primitive.NewObjectID(), movieID, 4)

	require.NoError(t, svc.Recompute(ctx, movieID))

	m, err := movies.FindByID(ctx, movieID)
	require.NoError(t, err)
	// (3.5+4)/2 = 3.75 → 3.8
	require.Equal(t, 3.8, m.AverageRating)
	require.Equal(t, int64(2), m.TotalReviews)
}

func TestRecomputeIgnoresInactiveReviews(t *testing.T) {
	ctx := context.Background()
	movies := newFakeMovieStore()
	reviews := newFakeReviewStore()
	svc := NewRatingService(reviews, movies)

	movieID := seedMovie(t, movies, "Heat")
	seedReview(t, reviews, primitive.NewObjectID(), movieID, 5)
	deleted := seedReview(t, reviews, primitive.NewObjectID(), movieID, 1)
	require.NoError(t, reviews.Deactivate(ctx, deleted))

	require.NoError(t, svc.Recompute(ctx, movieID))

	m, err := movies.FindByID(ctx, movieID)
	require.NoError(t, err)
	require.Equal(t, 5.0, m.AverageRating)
	require.Equal(t, int64(1), m.TotalReviews)
}

func TestRecomputeZeroCase(t *testing.T) {
	ctx := context.Background()
	movies := newFakeMovieStore()
	reviews := newFakeReviewStore()
	svc := NewRatingService(reviews, movies)

	movieID := seedMovie(t, movies, "Sin reviews")
	require.NoError(t, movies.SetRatingStats(ctx, movieID, 4.2, 3))

	require.NoError(t, svc.Recompute(ctx, movieID))

	m, err := movies.FindByID(ctx, movieID)
	require.NoError(t, err)
	require.Equal(t, 0.0, m.AverageRating)
	require.Equal(t, int64(0), m.TotalReviews)
}

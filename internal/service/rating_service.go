package service

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatingService es el agregador: mantiene averageRating/totalReviews de
// cada película consistentes con su set de reviews activas. Siempre
// recalcula desde cero sobre el set completo, nunca parchea el promedio
// de forma incremental, así no hay deriva acumulada.
type RatingService struct {
	reviews ReviewStore
	movies  MovieStore
}

func NewRatingService(r ReviewStore, m MovieStore) *RatingService {
	return &RatingService{reviews: r, movies: m}
}

// Recompute escanea las reviews activas de la película y escribe el
// promedio redondeado a un decimal y el conteo. Sin reviews activas
// escribe (0, 0).
func (s *RatingService) Recompute(ctx context.Context, movieID primitive.ObjectID) error {
	ratings, err := s.reviews.ActiveRatings(ctx, movieID)
	if err != nil {
		return err
	}

	var avg float64
	if len(ratings) > 0 {
		var sum float64
		for _, r := range ratings {
			sum += r
		}
		avg = math.Round(sum/float64(len(ratings))*10) / 10
	}

	return s.movies.SetRatingStats(ctx, movieID, avg, int64(len(ratings)))
}

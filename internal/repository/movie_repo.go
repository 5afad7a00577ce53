// internal/repository/movie_repo.go
package repository

import (
	"context"

	"reelcritic/internal/db"
	"reelcritic/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{col: db.DB().Collection("movies")}
}

func (r *MovieRepository) Insert(ctx context.Context, m *models.Movie) error {
	_, err := r.col.InsertOne(ctx, m)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *MovieRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error) {
	var m models.Movie
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &m, err
}

// FindSummaries trae de un solo viaje los resúmenes de las películas
// referenciadas en un listado (join de lectura).
func (r *MovieRepository) FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.MovieSummary, error) {
	out := make(map[primitive.ObjectID]models.MovieSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.M{
		"title": 1, "posterUrl": 1, "releaseYear": 1, "genres": 1, "averageRating": 1,
	})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var s models.MovieSummary
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	return out, cur.Err()
}

func (r *MovieRepository) Search(
	ctx context.Context,
	q, genre string,
	year int,
	p ListParams,
) ([]models.Movie, int64, error) {

	filter := bson.M{}

	if q != "" {
		// índice de texto sobre title/overview/genres/director
		filter["$text"] = bson.M{"$search": q}
	}
	if genre != "" {
		// genres es un array, esto busca que lo contenga
		filter["genres"] = genre
	}
	if year > 0 {
		filter["releaseYear"] = year
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, filter, p.findOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []models.Movie
	for cur.Next(ctx) {
		var m models.Movie
		if err := cur.Decode(&m); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, cur.Err()
}

func (r *MovieRepository) Featured(ctx context.Context, limit int) ([]models.Movie, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "averageRating", Value: -1}}).
		SetLimit(int64(limit))
	return r.findAll(ctx, bson.M{"featured": true}, opts)
}

func (r *MovieRepository) Trending(ctx context.Context, limit int) ([]models.Movie, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	return r.findAll(ctx, bson.M{"trending": true}, opts)
}

func (r *MovieRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Movie, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Movie
	for cur.Next(ctx) {
		var m models.Movie
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, cur.Err()
}

// SetRatingStats escribe el agregado derivado de la película.
// Solo el agregador de ratings llama aquí.
func (r *MovieRepository) SetRatingStats(ctx context.Context, id primitive.ObjectID, avg float64, count int64) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"averageRating": avg,
			"totalReviews":  count,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

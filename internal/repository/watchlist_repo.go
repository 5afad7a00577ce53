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

type WatchlistRepository struct {
	col *mongo.Collection
}

func NewWatchlistRepository() *WatchlistRepository {
	return &WatchlistRepository{col: db.DB().Collection("watchlist")}
}

func (r *WatchlistRepository) Insert(ctx context.Context, e *models.WatchlistEntry) error {
	_, err := r.col.InsertOne(ctx, e)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *WatchlistRepository) FindByUserAndMovie(ctx context.Context, user, movie primitive.ObjectID) (*models.WatchlistEntry, error) {
	var e models.WatchlistEntry
	err := r.col.FindOne(ctx, bson.M{"user": user, "movie": movie}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &e, err
}

// Delete borra la entrada de verdad (hard delete) y dice si existía.
func (r *WatchlistRepository) Delete(ctx context.Context, user, movie primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"user": user, "movie": movie})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *WatchlistRepository) Update(ctx context.Context, user, movie primitive.ObjectID, set map[string]any) (*models.WatchlistEntry, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var e models.WatchlistEntry
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"user": user, "movie": movie},
		bson.M{"$set": set},
		opts,
	).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &e, err
}

func (r *WatchlistRepository) ListByUser(ctx context.Context, user primitive.ObjectID, category string, p ListParams) ([]models.WatchlistEntry, int64, error) {
	filter := bson.M{"user": user}
	if category != "" {
		filter["category"] = category
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

	var out []models.WatchlistEntry
	for cur.Next(ctx) {
		var e models.WatchlistEntry
		if err := cur.Decode(&e); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, cur.Err()
}

func (r *WatchlistRepository) CountByUser(ctx context.Context, user primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"user": user})
}

package repository

import (
	"context"
	"time"

	"reelcritic/internal/db"
	"reelcritic/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{col: db.DB().Collection("reviews")}
}

func (r *ReviewRepository) Insert(ctx context.Context, rev *models.Review) error {
	_, err := r.col.InsertOne(ctx, rev)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *ReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var rev models.Review
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rev)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &rev, err
}

// FindByUserAndMovie busca la review activa del par (user, movie);
// una review soft-deleted no cuenta como duplicado.
func (r *ReviewRepository) FindByUserAndMovie(ctx context.Context, user, movie primitive.ObjectID) (*models.Review, error) {
	var rev models.Review
	err := r.col.FindOne(ctx, bson.M{"user": user, "movie": movie, "isActive": true}).Decode(&rev)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &rev, err
}

func (r *ReviewRepository) ListByMovie(ctx context.Context, movie primitive.ObjectID, p ListParams) ([]models.Review, int64, error) {
	return r.list(ctx, bson.M{"movie": movie, "isActive": true}, p)
}

func (r *ReviewRepository) ListByUser(ctx context.Context, user primitive.ObjectID, p ListParams) ([]models.Review, int64, error) {
	return r.list(ctx, bson.M{"user": user, "isActive": true}, p)
}

func (r *ReviewRepository) list(ctx context.Context, filter bson.M, p ListParams) ([]models.Review, int64, error) {
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, filter, p.findOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []models.Review
	for cur.Next(ctx) {
		var rev models.Review
		if err := cur.Decode(&rev); err != nil {
			return nil, 0, err
		}
		out = append(out, rev)
	}
	return out, total, cur.Err()
}

// ActiveRatings devuelve los ratings de todas las reviews activas de una
// película. El agregador recalcula desde cero con esta lista, no parchea.
func (r *ReviewRepository) ActiveRatings(ctx context.Context, movie primitive.ObjectID) ([]float64, error) {
	opts := options.Find().SetProjection(bson.M{"rating": 1})
	cur, err := r.col.Find(ctx, bson.M{"movie": movie, "isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []float64
	for cur.Next(ctx) {
		var doc struct {
			Rating float64 `bson:"rating"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.Rating)
	}
	return out, cur.Err()
}

// Update aplica un $set parcial y devuelve el documento ya actualizado.
func (r *ReviewRepository) Update(ctx context.Context, id primitive.ObjectID, set map[string]any) (*models.Review, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rev models.Review
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		opts,
	).Decode(&rev)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &rev, err
}

// Deactivate marca la review como inactiva (soft delete). El documento
// se conserva, pero sale del set activo que alimenta los agregados.
func (r *ReviewRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetVote mueve al votante a exactamente uno de los dos sets ($addToSet
// es idempotente, $pull lo saca del contrario) y refresca los contadores
// cacheados con el tamaño resultante de cada set.
func (r *ReviewRepository) SetVote(ctx context.Context, id, voter primitive.ObjectID, helpful bool) (*models.Review, error) {
	update := bson.M{
		"$addToSet": bson.M{"helpfulBy": voter},
		"$pull":     bson.M{"notHelpfulBy": voter},
	}
	if !helpful {
		update = bson.M{
			"$addToSet": bson.M{"notHelpfulBy": voter},
			"$pull":     bson.M{"helpfulBy": voter},
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rev models.Review
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&rev)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rev.Helpful = len(rev.HelpfulBy)
	rev.NotHelpful = len(rev.NotHelpfulBy)
	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"helpful":    rev.Helpful,
			"notHelpful": rev.NotHelpful,
			"updatedAt":  time.Now().UTC(),
		}},
	)
	return &rev, err
}

func (r *ReviewRepository) CountActiveByUser(ctx context.Context, user primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"user": user, "isActive": true})
}

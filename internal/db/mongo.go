package db

import (
	"context"
	"log"
	"time"

	"reelcritic/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoClient *mongo.Client
var mongoDB *mongo.Database

func InitMongo(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("[mongo] error conectando: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("[mongo] ping falló: %v", err)
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDB)
	log.Printf("[mongo] conectado a %s / DB=%s\n", cfg.MongoURI, cfg.MongoDB)
}

func DB() *mongo.Database {
	return mongoDB
}

// EnsureIndexes crea los índices que el modelo de datos necesita:
// unicidad (user, movie) en reviews y watchlist, índice de texto para
// búsqueda de películas y unicidad de username/email.
func EnsureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := mongoDB.Collection("movies").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "overview", Value: "text"},
			{Key: "genres", Value: "text"},
			{Key: "director", Value: "text"},
		}},
		{Keys: bson.D{{Key: "genres", Value: 1}}},
		{Keys: bson.D{{Key: "releaseYear", Value: 1}}},
		{Keys: bson.D{{Key: "averageRating", Value: -1}}},
	})
	if err != nil {
		log.Fatalf("[mongo] índices de movies: %v", err)
	}

	// Único solo sobre reviews activas: una review soft-deleted no debe
	// impedir que el usuario vuelva a reseñar la película.
	activeUnique := options.Index().
		SetUnique(true).
		SetPartialFilterExpression(bson.M{"isActive": true})

	_, err = mongoDB.Collection("reviews").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "movie", Value: 1}}, Options: activeUnique},
		{Keys: bson.D{{Key: "movie", Value: 1}, {Key: "isActive", Value: 1}}},
	})
	if err != nil {
		log.Fatalf("[mongo] índices de reviews: %v", err)
	}

	_, err = mongoDB.Collection("watchlist").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "movie", Value: 1}},
		Options: unique,
	})
	if err != nil {
		log.Fatalf("[mongo] índices de watchlist: %v", err)
	}

	_, err = mongoDB.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		log.Fatalf("[mongo] índices de users: %v", err)
	}
}

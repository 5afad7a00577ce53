package main

import (
	"context"
	"log"
	"net/http"

	_ "reelcritic/docs" // swagger docs

	"reelcritic/internal/cache"
	"reelcritic/internal/config"
	"reelcritic/internal/db"
	"reelcritic/internal/handler"
	"reelcritic/internal/repository"
	"reelcritic/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title ReelCritic API
// @version 1.0
// @description API de reviews de películas (Mongo, Redis)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	db.EnsureIndexes(context.Background())
	cache.InitRedis(cfg)

	// repos
	userRepo := repository.NewUserRepository()
	movieRepo := repository.NewMovieRepository()
	reviewRepo := repository.NewReviewRepository()
	watchlistRepo := repository.NewWatchlistRepository()

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	movieSvc := service.NewMovieService(movieRepo)
	// el agregador que mantiene averageRating/totalReviews
	ratingSvc := service.NewRatingService(reviewRepo, movieRepo)
	reviewSvc := service.NewReviewService(reviewRepo, movieRepo, userRepo, ratingSvc)
	watchlistSvc := service.NewWatchlistService(watchlistRepo, movieRepo)
	userSvc := service.NewUserService(userRepo, reviewRepo, watchlistRepo)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	movieH := handler.NewMovieHandler(movieSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	watchlistH := handler.NewWatchlistHandler(watchlistSvc)
	userH := handler.NewUserHandler(userSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	authMw := handler.JWTAuth(cfg.JWTSecret)

	// =============
	// Rutas públicas
	// =============
	r.Get("/api/health", handler.Health)

	r.Post("/api/auth/register", authH.Register)
	r.Post("/api/auth/login", authH.Login)

	r.Get("/api/movies", movieH.List)
	r.Get("/api/movies/featured", movieH.Featured)
	r.Get("/api/movies/trending", movieH.Trending)
	r.Get("/api/movies/{id}", movieH.Get)
	r.Get("/api/movies/{id}/reviews/live", reviewH.LiveFeed)

	r.Get("/api/reviews/movie/{movieId}", reviewH.ListForMovie)
	r.Get("/api/reviews/{id}", reviewH.Get)

	r.Get("/api/users/{id}", userH.GetProfile)
	r.Get("/api/users/{id}/reviews", reviewH.ListForUser)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Get("/api/auth/me", authH.Me)

		r.Post("/api/reviews/movie/{movieId}", reviewH.Create)
		r.Put("/api/reviews/{id}", reviewH.Update)
		r.Delete("/api/reviews/{id}", reviewH.Delete)
		r.Post("/api/reviews/{id}/helpful", reviewH.Vote)

		r.Put("/api/users/{id}", userH.UpdateProfile)

		r.Get("/api/users/{id}/watchlist", watchlistH.List)
		r.Post("/api/users/{id}/watchlist", watchlistH.Add)
		r.Put("/api/users/{id}/watchlist/{movieId}", watchlistH.Update)
		r.Delete("/api/users/{id}/watchlist/{movieId}", watchlistH.Remove)

		// ---- solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())
			r.Post("/api/movies", movieH.Create)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}

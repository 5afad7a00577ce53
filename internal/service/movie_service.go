// internal/service/movie_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"reelcritic/internal/cache"
	"reelcritic/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var movieSortFields = map[string]bool{
	"createdAt":     true,
	"title":         true,
	"releaseYear":   true,
	"averageRating": true,
	"totalReviews":  true,
}

const (
	homeListLimit = 6
	homeCacheTTL  = 60 // segundos
)

type MovieService struct {
	movies MovieStore
}

func NewMovieService(m MovieStore) *MovieService {
	return &MovieService{movies: m}
}

type MovieSearchOptions struct {
	Query string
	Genre string
	Year  int
	ListOptions
}

// List busca/lista películas paginadas. Con query usa el índice de
// texto (title/overview/genres/director); genre filtra por contención
// en el array y year por igualdad exacta.
func (s *MovieService) List(ctx context.Context, o MovieSearchOptions) ([]models.Movie, models.Pagination, error) {
	p := normalizeList(o.ListOptions, movieSortFields, "createdAt", 12, 50)

	movies, total, err := s.movies.Search(ctx, o.Query, o.Genre, o.Year, p)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return movies, models.NewPagination(p.Page, p.Limit, total), nil
}

func (s *MovieService) Get(ctx context.Context, id primitive.ObjectID) (*models.Movie, error) {
	m, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMovieNotFound
	}
	return m, nil
}

// Create da de alta una película (operación de admin). El validador de
// structs ya revisó los límites estáticos; acá van las reglas con
// estado: géneros canónicos y cota superior del año.
func (s *MovieService) Create(ctx context.Context, req *models.MovieCreateRequest) (*models.Movie, error) {
	for _, g := range req.Genres {
		if !models.IsAllowedGenre(g) {
			return nil, newValidationError("genres", fmt.Sprintf("invalid genre %q", g))
		}
	}
	if maxYear := time.Now().Year() + 2; req.ReleaseYear > maxYear {
		return nil, newValidationError("releaseYear", fmt.Sprintf("release year cannot exceed %d", maxYear))
	}

	now := time.Now().UTC()
	m := &models.Movie{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Overview:    req.Overview,
		Genres:      req.Genres,
		ReleaseYear: req.ReleaseYear,
		Director:    req.Director,
		Cast:        req.Cast,
		Runtime:     req.Runtime,
		PosterURL:   req.PosterURL,
		BackdropURL: req.BackdropURL,
		TrailerURL:  req.TrailerURL,
		Featured:    req.Featured,
		Trending:    req.Trending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// averageRating/totalReviews arrancan en cero y de ahí en adelante
	// los administra el agregador.

	if err := s.movies.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Featured devuelve hasta 6 destacadas ordenadas por rating. Va con
// cache Redis corto: es la consulta de portada.
func (s *MovieService) Featured(ctx context.Context) ([]models.Movie, error) {
	return s.cachedHomeList(ctx, "movies:featured", s.movies.Featured)
}

// Trending devuelve hasta 6 en tendencia por fecha de alta. El flag es
// manual, no se computa de actividad reciente.
func (s *MovieService) Trending(ctx context.Context) ([]models.Movie, error) {
	return s.cachedHomeList(ctx, "movies:trending", s.movies.Trending)
}

func (s *MovieService) cachedHomeList(ctx context.Context, key string, fetch func(context.Context, int) ([]models.Movie, error)) ([]models.Movie, error) {
	var cached []models.Movie
	if hit, err := cache.GetJSON(ctx, key, &cached); err != nil {
		log.Printf("[cache] lectura de %s falló: %v", key, err)
	} else if hit {
		return cached, nil
	}

	movies, err := fetch(ctx, homeListLimit)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, key, movies, homeCacheTTL); err != nil {
		log.Printf("[cache] escritura de %s falló: %v", key, err)
	}
	return movies, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"reelcritic/internal/models"
	"reelcritic/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WatchlistService struct {
	watchlist WatchlistStore
	movies    MovieStore
}

func NewWatchlistService(w WatchlistStore, m MovieStore) *WatchlistService {
	return &WatchlistService{watchlist: w, movies: m}
}

// Add agrega la película a la watchlist del usuario. Category y
// priority tienen defaults; el índice único (user, movie) corta el
// duplicado también en carrera.
func (s *WatchlistService) Add(ctx context.Context, userID, movieID primitive.ObjectID, req *models.WatchlistAddRequest) (*models.WatchlistEntry, error) {
	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	existing, err := s.watchlist.FindByUserAndMovie(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEntry
	}

	category := req.Category
	if category == "" {
		category = models.CategoryWantToWatch
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	e := &models.WatchlistEntry{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Movie:     movieID,
		Category:  category,
		Priority:  priority,
		Notes:     req.Notes,
		Watched:   category == models.CategoryWatched,
		DateAdded: time.Now().UTC(),
	}

	if err := s.watchlist.Insert(ctx, e); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}

	s.attachMovies(ctx, nil, e)
	return e, nil
}

// Remove borra la entrada de verdad: ningún agregado depende de ella.
func (s *WatchlistService) Remove(ctx context.Context, userID, movieID primitive.ObjectID) error {
	deleted, err := s.watchlist.Delete(ctx, userID, movieID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return nil
}

func (s *WatchlistService) Update(ctx context.Context, userID, movieID primitive.ObjectID, req *models.WatchlistUpdateRequest) (*models.WatchlistEntry, error) {
	set := map[string]any{}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Priority != nil {
		set["priority"] = *req.Priority
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}
	if req.Watched != nil {
		set["watched"] = *req.Watched
	}
	if len(set) == 0 {
		e, err := s.watchlist.FindByUserAndMovie(ctx, userID, movieID)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, ErrEntryNotFound
		}
		s.attachMovies(ctx, nil, e)
		return e, nil
	}

	e, err := s.watchlist.Update(ctx, userID, movieID, set)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEntryNotFound
	}

	s.attachMovies(ctx, nil, e)
	return e, nil
}

// List pagina la watchlist del usuario, opcionalmente filtrada por
// categoría, ordenada por fecha de alta descendente, con el resumen de
// cada película adjunto.
func (s *WatchlistService) List(ctx context.Context, userID primitive.ObjectID, category string, page, limit int) ([]models.WatchlistEntry, models.Pagination, error) {
	p := normalizeList(
		ListOptions{Page: page, Limit: limit, SortBy: "dateAdded"},
		map[string]bool{"dateAdded": true}, "dateAdded", 10, 50,
	)

	entries, total, err := s.watchlist.ListByUser(ctx, userID, category, p)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	s.attachMovies(ctx, entries)
	return entries, models.NewPagination(p.Page, p.Limit, total), nil
}

func (s *WatchlistService) attachMovies(ctx context.Context, entries []models.WatchlistEntry, extra ...*models.WatchlistEntry) {
	ids := make([]primitive.ObjectID, 0, len(entries)+len(extra))
	for i := range entries {
		ids = append(ids, entries[i].Movie)
	}
	for _, e := range extra {
		ids = append(ids, e.Movie)
	}

	summaries, err := s.movies.FindSummaries(ctx, ids)
	if err != nil {
		return
	}

	for i := range entries {
		if ms, ok := summaries[entries[i].Movie]; ok {
			m := ms
			entries[i].MovieInfo = &m
		}
	}
	for _, e := range extra {
		if ms, ok := summaries[e.Movie]; ok {
			m := ms
			e.MovieInfo = &m
		}
	}
}

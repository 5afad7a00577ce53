package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"reelcritic/internal/models"
	"reelcritic/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fakes en memoria de los stores. Replican las reglas que en producción
// pone Mongo: índices únicos (user, movie), $set parcial, paginación
// skip/limit.

// ---------- movies ----------

type fakeMovieStore struct {
	mu     sync.Mutex
	movies map[primitive.ObjectID]*models.Movie

	failSetStats bool // simula store caído en el write del agregado
}

func newFakeMovieStore() *fakeMovieStore {
	return &fakeMovieStore{movies: map[primitive.ObjectID]*models.Movie{}}
}

func (f *fakeMovieStore) Insert(_ context.Context, m *models.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.movies[m.ID] = &cp
	return nil
}

func (f *fakeMovieStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.movies[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMovieStore) FindSummaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.MovieSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[primitive.ObjectID]models.MovieSummary{}
	for _, id := range ids {
		if m, ok := f.movies[id]; ok {
			out[id] = models.MovieSummary{
				ID:            m.ID,
				Title:         m.Title,
				PosterURL:     m.PosterURL,
				ReleaseYear:   m.ReleaseYear,
				Genres:        m.Genres,
				AverageRating: m.AverageRating,
			}
		}
	}
	return out, nil
}

func (f *fakeMovieStore) Search(_ context.Context, q, genre string, year int, p repository.ListParams) ([]models.Movie, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []models.Movie
	for _, m := range f.movies {
		if q != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(q)) {
			continue
		}
		if genre != "" && !contains(m.Genres, genre) {
			continue
		}
		if year > 0 && m.ReleaseYear != year {
			continue
		}
		matched = append(matched, *m)
	}

	sortMovies(matched, p.SortBy, p.SortOrder)
	total := int64(len(matched))
	return paginate(matched, p), total, nil
}

func (f *fakeMovieStore) Featured(_ context.Context, limit int) ([]models.Movie, error) {
	return f.flagged(func(m *models.Movie) bool { return m.Featured }, "averageRating", limit), nil
}

func (f *fakeMovieStore) Trending(_ context.Context, limit int) ([]models.Movie, error) {
	return f.flagged(func(m *models.Movie) bool { return m.Trending }, "createdAt", limit), nil
}

func (f *fakeMovieStore) flagged(keep func(*models.Movie) bool, sortBy string, limit int) []models.Movie {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Movie
	for _, m := range f.movies {
		if keep(m) {
			out = append(out, *m)
		}
	}
	sortMovies(out, sortBy, "desc")
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeMovieStore) SetRatingStats(_ context.Context, id primitive.ObjectID, avg float64, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSetStats {
		return context.DeadlineExceeded
	}
	m, ok := f.movies[id]
	if !ok {
		return nil
	}
	m.AverageRating = avg
	m.TotalReviews = count
	return nil
}

// ---------- reviews ----------

type fakeReviewStore struct {
	mu      sync.Mutex
	reviews map[primitive.ObjectID]*models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: map[primitive.ObjectID]*models.Review{}}
}

func (f *fakeReviewStore) Insert(_ context.Context, rev *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// índice único parcial (user, movie, isActive:true)
	for _, ex := range f.reviews {
		if ex.IsActive && ex.User == rev.User && ex.Movie == rev.Movie {
			return repository.ErrDuplicateKey
		}
	}
	cp := *rev
	f.reviews[rev.ID] = &cp
	return nil
}

func (f *fakeReviewStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rev, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *rev
	return &cp, nil
}

func (f *fakeReviewStore) FindByUserAndMovie(_ context.Context, user, movie primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rev := range f.reviews {
		if rev.IsActive && rev.User == user && rev.Movie == movie {
			cp := *rev
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewStore) ListByMovie(_ context.Context, movie primitive.ObjectID, p repository.ListParams) ([]models.Review, int64, error) {
	return f.list(func(r *models.Review) bool { return r.Movie == movie }, p)
}

func (f *fakeReviewStore) ListByUser(_ context.Context, user primitive.ObjectID, p repository.ListParams) ([]models.Review, int64, error) {
	return f.list(func(r *models.Review) bool { return r.User == user }, p)
}

func (f *fakeReviewStore) list(keep func(*models.Review) bool, p repository.ListParams) ([]models.Review, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []models.Review
	for _, rev := range f.reviews {
		if rev.IsActive && keep(rev) {
			matched = append(matched, *rev)
		}
	}

	asc := p.SortOrder == "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch p.SortBy {
		case "rating":
			less = matched[i].Rating < matched[j].Rating
		case "helpful":
			less = matched[i].Helpful < matched[j].Helpful
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	return paginate(matched, p), total, nil
}

func (f *fakeReviewStore) ActiveRatings(_ context.Context, movie primitive.ObjectID) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []float64
	for _, rev := range f.reviews {
		if rev.IsActive && rev.Movie == movie {
			out = append(out, rev.Rating)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) Update(_ context.Context, id primitive.ObjectID, set map[string]any) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rev, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	for k, v := range set {
		switch k {
		case "rating":
			rev.Rating = v.(float64)
		case "reviewText":
			rev.ReviewText = v.(string)
		case "title":
			rev.Title = v.(string)
		case "spoilers":
			rev.Spoilers = v.(bool)
		case "updatedAt":
			rev.UpdatedAt = v.(time.Time)
		}
	}
	cp := *rev
	return &cp, nil
}

func (f *fakeReviewStore) Deactivate(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rev, ok := f.reviews[id]; ok {
		rev.IsActive = false
	}
	return nil
}

func (f *fakeReviewStore) SetVote(_ context.Context, id, voter primitive.ObjectID, helpful bool) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rev, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	if helpful {
		rev.HelpfulBy = addToSet(rev.HelpfulBy, voter)
		rev.NotHelpfulBy = pull(rev.NotHelpfulBy, voter)
	} else {
		rev.NotHelpfulBy = addToSet(rev.NotHelpfulBy, voter)
		rev.HelpfulBy = pull(rev.HelpfulBy, voter)
	}
	rev.Helpful = len(rev.HelpfulBy)
	rev.NotHelpful = len(rev.NotHelpfulBy)
	cp := *rev
	return &cp, nil
}

func (f *fakeReviewStore) CountActiveByUser(_ context.Context, user primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, rev := range f.reviews {
		if rev.IsActive && rev.User == user {
			n++
		}
	}
	return n, nil
}

// ---------- watchlist ----------

type fakeWatchlistStore struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]*models.WatchlistEntry
}

func newFakeWatchlistStore() *fakeWatchlistStore {
	return &fakeWatchlistStore{entries: map[primitive.ObjectID]*models.WatchlistEntry{}}
}

func (f *fakeWatchlistStore) Insert(_ context.Context, e *models.WatchlistEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.entries {
		if ex.User == e.User && ex.Movie == e.Movie {
			return repository.ErrDuplicateKey
		}
	}
	cp := *e
	f.entries[e.ID] = &cp
	return nil
}

func (f *fakeWatchlistStore) FindByUserAndMovie(_ context.Context, user, movie primitive.ObjectID) (*models.WatchlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.User == user && e.Movie == movie {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeWatchlistStore) Delete(_ context.Context, user, movie primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, e := range f.entries {
		if e.User == user && e.Movie == movie {
			delete(f.entries, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWatchlistStore) Update(_ context.Context, user, movie primitive.ObjectID, set map[string]any) (*models.WatchlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.User != user || e.Movie != movie {
			continue
		}
		for k, v := range set {
			switch k {
			case "category":
				e.Category = v.(string)
			case "priority":
				e.Priority = v.(string)
			case "notes":
				e.Notes = v.(string)
			case "watched":
				e.Watched = v.(bool)
			}
		}
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeWatchlistStore) ListByUser(_ context.Context, user primitive.ObjectID, category string, p repository.ListParams) ([]models.WatchlistEntry, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []models.WatchlistEntry
	for _, e := range f.entries {
		if e.User != user {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		matched = append(matched, *e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].DateAdded.After(matched[j].DateAdded)
	})
	total := int64(len(matched))
	return paginate(matched, p), total, nil
}

func (f *fakeWatchlistStore) CountByUser(_ context.Context, user primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, e := range f.entries {
		if e.User == user {
			n++
		}
	}
	return n, nil
}

// ---------- users ----------

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserStore) Insert(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.users {
		if ex.Username == u.Username || ex.Email == u.Email {
			return repository.ErrDuplicateKey
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return f.findBy(func(u *models.User) bool { return u.Email == email })
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return f.findBy(func(u *models.User) bool { return u.Username == username })
}

func (f *fakeUserStore) findBy(keep func(*models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if keep(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) UpdateByID(_ context.Context, id primitive.ObjectID, set map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil
	}
	for k, v := range set {
		switch k {
		case "username":
			u.Username = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "profilePicture":
			u.ProfilePicture = v.(string)
		case "favoriteGenres":
			u.FavoriteGenres = v.([]string)
		}
	}
	return nil
}

func (f *fakeUserStore) FindSummaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[primitive.ObjectID]models.UserSummary{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = models.UserSummary{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}
		}
	}
	return out, nil
}

// ---------- helpers ----------

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, v := range set {
		if v == id {
			return set
		}
	}
	return append(set, id)
}

func pull(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func paginate[T any](items []T, p repository.ListParams) []T {
	skip := (p.Page - 1) * p.Limit
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if len(items) > p.Limit {
		items = items[:p.Limit]
	}
	return items
}

func sortMovies(movies []models.Movie, sortBy, order string) {
	asc := order == "asc"
	sort.SliceStable(movies, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "title":
			less = movies[i].Title < movies[j].Title
		case "releaseYear":
			less = movies[i].ReleaseYear < movies[j].ReleaseYear
		case "averageRating":
			less = movies[i].AverageRating < movies[j].AverageRating
		case "totalReviews":
			less = movies[i].TotalReviews < movies[j].TotalReviews
		default:
			less = movies[i].CreatedAt.Before(movies[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})
}

package service

import (
	"context"
	"errors"
	"log"
	"time"

	"reelcritic/internal/models"
	"reelcritic/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var reviewSortFields = map[string]bool{
	"createdAt": true,
	"rating":    true,
	"helpful":   true,
}

type ReviewService struct {
	reviews ReviewStore
	movies  MovieStore
	users   UserStore
	ratings *RatingService
}

func NewReviewService(r ReviewStore, m MovieStore, u UserStore, agg *RatingService) *ReviewService {
	return &ReviewService{
		reviews: r,
		movies:  m,
		users:   u,
		ratings: agg,
	}
}

// Create da de alta la review del usuario para la película. El chequeo
// previo de duplicado da el error amable; el índice único (user, movie)
// resuelve la carrera entre dos creates concurrentes y el perdedor
// también recibe Conflict.
func (s *ReviewService) Create(ctx context.Context, userID, movieID primitive.ObjectID, req *models.ReviewCreateRequest) (*models.Review, error) {
	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	existing, err := s.reviews.FindByUserAndMovie(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateReview
	}

	now := time.Now().UTC()
	rev := &models.Review{
		ID:           primitive.NewObjectID(),
		User:         userID,
		Movie:        movieID,
		Rating:       req.Rating,
		Title:        req.Title,
		ReviewText:   req.ReviewText,
		Spoilers:     req.Spoilers,
		HelpfulBy:    []primitive.ObjectID{},
		NotHelpfulBy: []primitive.ObjectID{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.reviews.Insert(ctx, rev); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	s.recompute(ctx, movieID)
	s.attachReviewers(ctx, []models.Review{}, rev)
	return rev, nil
}

// Update aplica los campos presentes. Solo el dueño puede editar.
// El agregador corre únicamente si el rating cambió de valor.
func (s *ReviewService) Update(ctx context.Context, reviewID, actingUserID primitive.ObjectID, req *models.ReviewUpdateRequest) (*models.Review, error) {
	rev, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev == nil || !rev.IsActive {
		return nil, ErrReviewNotFound
	}
	if rev.User != actingUserID {
		return nil, ErrNotOwner
	}

	set := map[string]any{}
	ratingChanged := false
	if req.Rating != nil {
		set["rating"] = *req.Rating
		ratingChanged = *req.Rating != rev.Rating
	}
	if req.ReviewText != nil {
		set["reviewText"] = *req.ReviewText
	}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Spoilers != nil {
		set["spoilers"] = *req.Spoilers
	}
	if len(set) == 0 {
		s.attachReviewers(ctx, []models.Review{}, rev)
		return rev, nil
	}
	set["updatedAt"] = time.Now().UTC()

	updated, err := s.reviews.Update(ctx, reviewID, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrReviewNotFound
	}

	if ratingChanged {
		s.recompute(ctx, rev.Movie)
	}
	s.attachReviewers(ctx, []models.Review{}, updated)
	return updated, nil
}

// Delete desactiva la review (soft delete). Dueño o admin. El movieID
// se captura antes de tocar nada para disparar el agregador después.
func (s *ReviewService) Delete(ctx context.Context, reviewID, actingUserID primitive.ObjectID, actingIsAdmin bool) error {
	rev, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rev == nil || !rev.IsActive {
		return ErrReviewNotFound
	}
	if rev.User != actingUserID && !actingIsAdmin {
		return ErrNotOwner
	}

	movieID := rev.Movie

	if err := s.reviews.Deactivate(ctx, reviewID); err != nil {
		return err
	}

	s.recompute(ctx, movieID)
	return nil
}

// Vote registra el voto útil/no útil del usuario. Idempotente: repetir
// el mismo voto no cambia nada, votar lo contrario lo mueve de set.
// No toca el agregador, los votos no afectan al promedio.
func (s *ReviewService) Vote(ctx context.Context, reviewID, voterID primitive.ObjectID, helpful bool) (*models.VoteCounts, error) {
	rev, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev == nil || !rev.IsActive {
		return nil, ErrReviewNotFound
	}

	updated, err := s.reviews.SetVote(ctx, reviewID, voterID, helpful)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrReviewNotFound
	}

	return &models.VoteCounts{Helpful: updated.Helpful, NotHelpful: updated.NotHelpful}, nil
}

// Get devuelve una review activa con los joins de usuario y película.
func (s *ReviewService) Get(ctx context.Context, reviewID primitive.ObjectID) (*models.Review, error) {
	rev, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev == nil || !rev.IsActive {
		return nil, ErrReviewNotFound
	}

	s.attachReviewers(ctx, []models.Review{}, rev)
	if summaries, err := s.movies.FindSummaries(ctx, []primitive.ObjectID{rev.Movie}); err == nil {
		if ms, ok := summaries[rev.Movie]; ok {
			rev.MovieInfo = &ms
		}
	}
	return rev, nil
}

// ListForMovie lista reviews activas de una película, paginadas, con el
// resumen público del autor adjunto (join de lectura en batch).
func (s *ReviewService) ListForMovie(ctx context.Context, movieID primitive.ObjectID, o ListOptions) ([]models.Review, models.Pagination, error) {
	p := normalizeList(o, reviewSortFields, "createdAt", 10, 50)

	revs, total, err := s.reviews.ListByMovie(ctx, movieID, p)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	s.attachReviewers(ctx, revs)
	return revs, models.NewPagination(p.Page, p.Limit, total), nil
}

// ListForUser lista las reviews activas de un usuario con el resumen de
// cada película.
func (s *ReviewService) ListForUser(ctx context.Context, userID primitive.ObjectID, o ListOptions) ([]models.Review, models.Pagination, error) {
	p := normalizeList(o, reviewSortFields, "createdAt", 10, 50)

	revs, total, err := s.reviews.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	ids := make([]primitive.ObjectID, 0, len(revs))
	for i := range revs {
		ids = append(ids, revs[i].Movie)
	}
	if summaries, err := s.movies.FindSummaries(ctx, ids); err == nil {
		for i := range revs {
			if ms, ok := summaries[revs[i].Movie]; ok {
				m := ms
				revs[i].MovieInfo = &m
			}
		}
	}

	return revs, models.NewPagination(p.Page, p.Limit, total), nil
}

// attachReviewers adjunta username/profilePicture de los autores.
// Un fallo del join no tumba el listado, solo queda sin adjunto.
func (s *ReviewService) attachReviewers(ctx context.Context, revs []models.Review, extra ...*models.Review) {
	ids := make([]primitive.ObjectID, 0, len(revs)+len(extra))
	for i := range revs {
		ids = append(ids, revs[i].User)
	}
	for _, r := range extra {
		ids = append(ids, r.User)
	}

	summaries, err := s.users.FindSummaries(ctx, ids)
	if err != nil {
		log.Printf("[reviews] join de usuarios falló: %v", err)
		return
	}

	for i := range revs {
		if us, ok := summaries[revs[i].User]; ok {
			u := us
			revs[i].Reviewer = &u
		}
	}
	for _, r := range extra {
		if us, ok := summaries[r.User]; ok {
			u := us
			r.Reviewer = &u
		}
	}
}

// recompute dispara el agregador tras una mutación ya persistida. Si
// falla, la review quedó guardada igual y el agregado puede quedar
// stale hasta el próximo trigger; solo se deja constancia en el log.
func (s *ReviewService) recompute(ctx context.Context, movieID primitive.ObjectID) {
	if err := s.ratings.Recompute(ctx, movieID); err != nil {
		log.Printf("[aggregator] recompute de %s falló: %v", movieID.Hex(), err)
	}
}

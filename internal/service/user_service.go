package service

import (
	"context"
	"errors"
	"regexp"

	"reelcritic/internal/models"
	"reelcritic/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type UserService struct {
	users     UserStore
	reviews   ReviewStore
	watchlist WatchlistStore
}

func NewUserService(u UserStore, r ReviewStore, w WatchlistStore) *UserService {
	return &UserService{users: u, reviews: r, watchlist: w}
}

// GetProfile devuelve el perfil público con contadores de reviews
// activas y watchlist.
func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	reviewCount, err := s.reviews.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	watchlistCount, err := s.watchlist.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{
		User:           *u,
		ReviewCount:    reviewCount,
		WatchlistCount: watchlistCount,
	}, nil
}

// UpdateProfile actualiza campos opcionales del perfil. El handler ya
// verificó que el actor es el propio usuario. Username choca contra
// otros usuarios → Conflict.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *models.UserUpdateRequest) (*models.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	set := map[string]any{}

	if req.Username != nil {
		if !usernameRe.MatchString(*req.Username) {
			return nil, newValidationError("username", "username can only contain letters, numbers, and underscores")
		}
		existing, err := s.users.FindByUsername(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, ErrUsernameTaken
		}
		set["username"] = *req.Username
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.ProfilePicture != nil {
		set["profilePicture"] = *req.ProfilePicture
	}
	if req.FavoriteGenres != nil {
		for _, g := range *req.FavoriteGenres {
			if !models.IsAllowedGenre(g) {
				return nil, newValidationError("favoriteGenres", "invalid genre "+g)
			}
		}
		set["favoriteGenres"] = *req.FavoriteGenres
	}

	if len(set) == 0 {
		return u, nil
	}

	if err := s.users.UpdateByID(ctx, userID, set); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// carrera contra el índice único de username
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return s.users.FindByID(ctx, userID)
}

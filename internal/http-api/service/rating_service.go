package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mimo/internal/cache"
	"mimo/internal/http-api/dto"
	"mimo/internal/http-api/models"
	"mimo/internal/http-api/repository"
	"mimo/pkg/pagination"
)

type RatingService interface {
	List(ctx context.Context, movieID int64, params pagination.Params) (*dto.PaginatedResponse[dto.RatingResponse], error)
	Get(ctx context.Context, movieID, ratingID int64) (*dto.RatingResponse, error)
	Create(ctx context.Context, userID, movieID int64, rating float64, comment *string) (*dto.RatingResponse, error)
	Update(ctx context.Context, userID, movieID, ratingID int64, changes RatingChanges) (*dto.RatingResponse, error)
	Delete(ctx context.Context, userID, movieID, ratingID int64) error
}

// RatingChanges is a partial rating update. CommentSet with a nil Comment
// clears the comment.
type RatingChanges struct {
	Rating     *float64
	Comment    *string
	CommentSet bool
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	movieRepo  repository.MovieRepository
	cache      cache.Store
	logger     *slog.Logger
}

func NewRatingService(ratingRepo repository.RatingRepository, movieRepo repository.MovieRepository, store cache.Store, logger *slog.Logger) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		movieRepo:  movieRepo,
		cache:      store,
		logger:     logger,
	}
}

func (s *ratingService) List(ctx context.Context, movieID int64, params pagination.Params) (*dto.PaginatedResponse[dto.RatingResponse], error) {
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return nil, err
	}

	ratings, total, err := s.ratingRepo.ListByMovie(ctx, movieID, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	data := make([]dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		data = append(data, *dto.FromModelToRatingResponse(&ratings[i]))
	}
	return dto.NewPaginatedResponse(data, params, total), nil
}

func (s *ratingService) Get(ctx context.Context, movieID, ratingID int64) (*dto.RatingResponse, error) {
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return nil, err
	}

	rating, err := s.findUnderMovie(ctx, movieID, ratingID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToRatingResponse(rating), nil
}

func (s *ratingService) Create(ctx context.Context, userID, movieID int64, value float64, comment *string) (*dto.RatingResponse, error) {
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return nil, err
	}

	existing, err := s.ratingRepo.GetByUserAndMovie(ctx, userID, movieID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRated
	}

	rating := &models.Rating{
		MovieID: movieID,
		UserID:  userID,
		Rating:  value,
		Comment: normalizeComment(comment),
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		// lost a race against a concurrent create for the same pair
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyRated
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}

	s.invalidate(ctx, movieID)
	return dto.FromModelToRatingResponse(rating), nil
}

func (s *ratingService) Update(ctx context.Context, userID, movieID, ratingID int64, changes RatingChanges) (*dto.RatingResponse, error) {
	rating, err := s.ownedRating(ctx, userID, movieID, ratingID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any, 2)
	if changes.Rating != nil {
		fields["rating"] = *changes.Rating
	}
	if changes.CommentSet {
		fields["comment"] = normalizeComment(changes.Comment)
	}

	if err := s.ratingRepo.Update(ctx, rating.ID, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}

	updated, err := s.ratingRepo.GetByID(ctx, rating.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, movieID)
	return dto.FromModelToRatingResponse(updated), nil
}

func (s *ratingService) Delete(ctx context.Context, userID, movieID, ratingID int64) error {
	rating, err := s.ownedRating(ctx, userID, movieID, ratingID)
	if err != nil {
		return err
	}

	if err := s.ratingRepo.Delete(ctx, rating.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRatingNotFound
		}
		return err
	}

	s.invalidate(ctx, movieID)
	return nil
}

// ownedRating resolves a rating for mutation: movie, then rating, then owner.
func (s *ratingService) ownedRating(ctx context.Context, userID, movieID, ratingID int64) (*models.Rating, error) {
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return nil, err
	}
	rating, err := s.findUnderMovie(ctx, movieID, ratingID)
	if err != nil {
		return nil, err
	}
	if rating.UserID != userID {
		return nil, ErrForbidden
	}
	return rating, nil
}

func (s *ratingService) ensureMovie(ctx context.Context, movieID int64) error {
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMovieNotFound
		}
		return err
	}
	return nil
}

func (s *ratingService) findUnderMovie(ctx context.Context, movieID, ratingID int64) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByIDAndMovie(ctx, ratingID, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) invalidate(ctx context.Context, movieID int64) {
	if s.cache == nil {
		return
	}
	// the write is already committed, so a departed client must not skip this
	if err := cache.Invalidate(context.WithoutCancel(ctx), s.cache, cache.MovieKey(movieID)); err != nil {
		s.logger.Warn("movie_cache_invalidate_failed", "movie_id", movieID, "error", err.Error())
	}
}

// normalizeComment stores empty comments as NULL.
func normalizeComment(comment *string) *string {
	if comment == nil || *comment == "" {
		return nil
	}
	c := *comment
	return &c
}

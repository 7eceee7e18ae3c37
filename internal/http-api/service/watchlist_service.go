package service

import (
	"context"
	"errors"
	"fmt"

	"mimo/internal/http-api/dto"
	"mimo/internal/http-api/models"
	"mimo/internal/http-api/repository"
	"mimo/pkg/pagination"
)

type WatchlistService interface {
	List(ctx context.Context, callerID, userID int64, params pagination.Params) (*dto.PaginatedResponse[dto.WatchlistItemResponse], error)
	Add(ctx context.Context, callerID, userID, movieID int64, watched bool) (*dto.WatchlistItemResponse, error)
	SetWatched(ctx context.Context, callerID, userID, itemID int64, watched bool) (*dto.WatchlistItemResponse, error)
	Remove(ctx context.Context, callerID, userID, itemID int64) error
}

type watchlistService struct {
	repo      repository.WatchlistRepository
	userRepo  repository.UserRepository
	movieRepo repository.MovieRepository
}

func NewWatchlistService(repo repository.WatchlistRepository, userRepo repository.UserRepository, movieRepo repository.MovieRepository) WatchlistService {
	return &watchlistService{
		repo:      repo,
		userRepo:  userRepo,
		movieRepo: movieRepo,
	}
}

func (s *watchlistService) List(ctx context.Context, callerID, userID int64, params pagination.Params) (*dto.PaginatedResponse[dto.WatchlistItemResponse], error) {
	if err := s.authorize(ctx, callerID, userID); err != nil {
		return nil, err
	}

	entries, total, err := s.repo.ListByUser(ctx, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	data := make([]dto.WatchlistItemResponse, 0, len(entries))
	for i := range entries {
		data = append(data, *dto.FromModelToWatchlistItemResponse(&entries[i]))
	}
	return dto.NewPaginatedResponse(data, params, total), nil
}

func (s *watchlistService) Add(ctx context.Context, callerID, userID, movieID int64, watched bool) (*dto.WatchlistItemResponse, error) {
	if err := s.authorize(ctx, callerID, userID); err != nil {
		return nil, err
	}

	movie, err := s.movieRepo.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	existing, err := s.repo.GetByUserAndMovie(ctx, userID, movieID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyInWatchlist
	}

	item := &models.WatchlistItem{
		UserID:  userID,
		MovieID: movieID,
		Watched: watched,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyInWatchlist
		}
		return nil, fmt.Errorf("add to watchlist: %w", err)
	}

	return dto.FromModelToWatchlistItemResponse(&models.WatchlistEntry{
		ID:        item.ID,
		UserID:    item.UserID,
		MovieID:   item.MovieID,
		Title:     movie.Title,
		Watched:   item.Watched,
		CreatedAt: item.CreatedAt,
	}), nil
}

func (s *watchlistService) SetWatched(ctx context.Context, callerID, userID, itemID int64, watched bool) (*dto.WatchlistItemResponse, error) {
	item, err := s.ownedItem(ctx, callerID, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateWatched(ctx, item.ID, watched); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWatchlistItemNotFound
		}
		return nil, err
	}

	entry, err := s.repo.GetEntry(ctx, item.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWatchlistItemNotFound
		}
		return nil, err
	}
	return dto.FromModelToWatchlistItemResponse(entry), nil
}

func (s *watchlistService) Remove(ctx context.Context, callerID, userID, itemID int64) error {
	item, err := s.ownedItem(ctx, callerID, userID, itemID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, item.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWatchlistItemNotFound
		}
		return err
	}
	return nil
}

// authorize checks that the target user exists before checking the caller
// owns it, so unknown users are reported as missing rather than forbidden.
func (s *watchlistService) authorize(ctx context.Context, callerID, userID int64) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if callerID != userID {
		return ErrForbidden
	}
	return nil
}

func (s *watchlistService) ownedItem(ctx context.Context, callerID, userID, itemID int64) (*models.WatchlistItem, error) {
	if err := s.authorize(ctx, callerID, userID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetByIDAndUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWatchlistItemNotFound
		}
		return nil, err
	}
	return item, nil
}

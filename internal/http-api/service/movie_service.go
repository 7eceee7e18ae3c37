package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mimo/internal/cache"
	"mimo/internal/http-api/dto"
	"mimo/internal/http-api/models"
	"mimo/internal/http-api/repository"
	"mimo/pkg/pagination"

	"golang.org/x/sync/singleflight"
)

// sharedQueryTimeout bounds a repository call that is shared by several
// requests and no longer follows any single caller's deadline.
const sharedQueryTimeout = 10 * time.Second

type MovieService interface {
	List(ctx context.Context, params pagination.Params) (*dto.PaginatedResponse[dto.MovieResponse], error)
	Get(ctx context.Context, id int64) (*dto.MovieResponse, error)
}

type movieService struct {
	repo   repository.MovieRepository
	cache  cache.Store
	ttl    time.Duration
	logger *slog.Logger
	sf     singleflight.Group
}

// NewMovieService caches single movie aggregates in store for ttl. A nil
// store or a non-positive ttl disables caching.
func NewMovieService(repo repository.MovieRepository, store cache.Store, ttl time.Duration, logger *slog.Logger) MovieService {
	return &movieService{
		repo:   repo,
		cache:  store,
		ttl:    ttl,
		logger: logger,
	}
}

type moviePage struct {
	movies []models.MovieWithRating
	total  int64
}

func (s *movieService) List(ctx context.Context, params pagination.Params) (*dto.PaginatedResponse[dto.MovieResponse], error) {
	key := fmt.Sprintf("list:%d:%d", params.Limit, params.Offset())
	v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
		movies, total, err := s.repo.ListWithRating(ctx, params.Limit, params.Offset())
		if err != nil {
			return nil, err
		}
		return moviePage{movies: movies, total: total}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	page := v.(moviePage)
	data := make([]dto.MovieResponse, 0, len(page.movies))
	for i := range page.movies {
		data = append(data, *dto.FromModelToMovieResponse(&page.movies[i]))
	}
	return dto.NewPaginatedResponse(data, params, page.total), nil
}

func (s *movieService) Get(ctx context.Context, id int64) (*dto.MovieResponse, error) {
	key := cache.MovieKey(id)

	if s.cachingEnabled() {
		var cached models.MovieWithRating
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("movie_cache_read_failed", "movie_id", id, "error", err.Error())
		}
		if hit {
			return dto.FromModelToMovieResponse(&cached), nil
		}
	}

	v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
		// the generation must be read before the aggregate it guards
		gen, canFill := s.generation(ctx, id, key)
		movie, err := s.repo.GetWithRating(ctx, id)
		if err != nil {
			return nil, err
		}
		if canFill {
			s.fill(ctx, id, key, gen, movie)
		}
		return movie, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}

	return dto.FromModelToMovieResponse(v.(*models.MovieWithRating)), nil
}

// shared runs fn once per key across concurrent callers. fn gets a context
// detached from the caller that started it, so one client hanging up does
// not fail the others; each caller still stops waiting when its own ctx ends.
func (s *movieService) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := s.sf.DoChan(key, func() (any, error) {
		queryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedQueryTimeout)
		defer cancel()
		return fn(queryCtx)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *movieService) generation(ctx context.Context, id int64, key string) (int64, bool) {
	if !s.cachingEnabled() {
		return 0, false
	}
	gen, err := cache.Generation(ctx, s.cache, key)
	if err != nil {
		s.logger.Warn("movie_cache_read_failed", "movie_id", id, "error", err.Error())
		return 0, false
	}
	return gen, true
}

func (s *movieService) fill(ctx context.Context, id int64, key string, gen int64, movie *models.MovieWithRating) {
	kept, err := cache.Fill(ctx, s.cache, key, gen, movie, s.ttl)
	if err != nil {
		s.logger.Warn("movie_cache_write_failed", "movie_id", id, "error", err.Error())
		return
	}
	if !kept {
		s.logger.Debug("movie_cache_fill_skipped", "movie_id", id, "generation", gen)
	}
}

func (s *movieService) cachingEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

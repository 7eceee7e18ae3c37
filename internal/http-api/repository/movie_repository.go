package repository

import (
	"context"
	"fmt"

	"mimo/internal/http-api/models"

	"gorm.io/gorm"
)

type MovieRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	ListWithRating(ctx context.Context, limit, offset int) ([]models.MovieWithRating, int64, error)
	GetWithRating(ctx context.Context, id int64) (*models.MovieWithRating, error)
	Create(ctx context.Context, movie *models.Movie) error
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.WithContext(ctx).First(&movie, id).Error; err != nil {
		return nil, translate(err)
	}
	return &movie, nil
}

// withRating selects movies joined with the mean of their ratings.
func (r *movieRepository) withRating(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("movies AS m").
		Select("m.id, m.title, m.genre, m.duration, AVG(r.rating) AS rating").
		Joins("LEFT JOIN ratings AS r ON r.movie_id = m.id").
		Group("m.id")
}

// ListWithRating returns one page of movies and the total number of movies.
func (r *movieRepository) ListWithRating(ctx context.Context, limit, offset int) ([]models.MovieWithRating, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	var movies []models.MovieWithRating
	if err := r.withRating(ctx).
		Order("m.id").
		Limit(limit).
		Offset(offset).
		Scan(&movies).Error; err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}

	return movies, total, nil
}

func (r *movieRepository) GetWithRating(ctx context.Context, id int64) (*models.MovieWithRating, error) {
	var movies []models.MovieWithRating
	if err := r.withRating(ctx).
		Where("m.id = ?", id).
		Scan(&movies).Error; err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	if len(movies) == 0 {
		return nil, ErrNotFound
	}
	return &movies[0], nil
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(movie).Error; err != nil {
		return fmt.Errorf("create movie: %w", translate(err))
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"mimo/internal/http-api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Rating, error)
	GetByIDAndMovie(ctx context.Context, id, movieID int64) (*models.Rating, error)
	GetByUserAndMovie(ctx context.Context, userID, movieID int64) (*models.Rating, error)
	ListByMovie(ctx context.Context, movieID int64, limit, offset int) ([]models.Rating, int64, error)
	Create(ctx context.Context, rating *models.Rating) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) GetByID(ctx context.Context, id int64) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		return nil, translate(err)
	}
	return &rating, nil
}

// GetByIDAndMovie only matches a rating that belongs to movieID.
func (r *ratingRepository) GetByIDAndMovie(ctx context.Context, id, movieID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("id = ? AND movie_id = ?", id, movieID).
		First(&rating).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rating, nil
}

func (r *ratingRepository) GetByUserAndMovie(ctx context.Context, userID, movieID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&rating).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rating, nil
}

func (r *ratingRepository) ListByMovie(ctx context.Context, movieID int64, limit, offset int) ([]models.Rating, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("movie_id = ?", movieID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count ratings: %w", err)
	}

	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error; err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}

	return ratings, total, nil
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update applies fields to the rating. A nil comment value clears it.
func (r *ratingRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update rating %d: %w", id, translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Rating{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete rating %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

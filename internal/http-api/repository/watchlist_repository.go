package repository

import (
	"context"
	"fmt"

	"mimo/internal/http-api/models"

	"gorm.io/gorm"
)

type WatchlistRepository interface {
	GetByIDAndUser(ctx context.Context, id, userID int64) (*models.WatchlistItem, error)
	GetByUserAndMovie(ctx context.Context, userID, movieID int64) (*models.WatchlistItem, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.WatchlistEntry, int64, error)
	GetEntry(ctx context.Context, id int64) (*models.WatchlistEntry, error)
	Create(ctx context.Context, item *models.WatchlistItem) error
	UpdateWatched(ctx context.Context, id int64, watched bool) error
	Delete(ctx context.Context, id int64) error
}

type watchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) GetByIDAndUser(ctx context.Context, id, userID int64) (*models.WatchlistItem, error) {
	var item models.WatchlistItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *watchlistRepository) GetByUserAndMovie(ctx context.Context, userID, movieID int64) (*models.WatchlistItem, error) {
	var item models.WatchlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *watchlistRepository) entries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("watchlist_items AS w").
		Select("w.id, w.user_id, w.movie_id, COALESCE(m.title, '') AS title, w.watched, w.created_at").
		Joins("LEFT JOIN movies AS m ON m.id = w.movie_id")
}

func (r *watchlistRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.WatchlistEntry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.WatchlistItem{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count watchlist: %w", err)
	}

	var entries []models.WatchlistEntry
	if err := r.entries(ctx).
		Where("w.user_id = ?", userID).
		Order("w.id").
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("list watchlist: %w", err)
	}

	return entries, total, nil
}

func (r *watchlistRepository) GetEntry(ctx context.Context, id int64) (*models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	if err := r.entries(ctx).
		Where("w.id = ?", id).
		Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("get watchlist item %d: %w", id, err)
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return &entries[0], nil
}

func (r *watchlistRepository) Create(ctx context.Context, item *models.WatchlistItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *watchlistRepository) UpdateWatched(ctx context.Context, id int64, watched bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.WatchlistItem{}).
		Where("id = ?", id).
		Update("watched", watched)
	if result.Error != nil {
		return fmt.Errorf("update watchlist item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *watchlistRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.WatchlistItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete watchlist item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

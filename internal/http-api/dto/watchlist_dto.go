package dto

import (
	"time"

	"mimo/internal/http-api/models"
)

type CreateWatchlistItemRequest struct {
	MovieID *int64 `json:"movieId" binding:"required,gt=0"`
	Watched *bool  `json:"watched"`
}

type UpdateWatchlistItemRequest struct {
	Watched *bool `json:"watched" binding:"required"`
}

type WatchlistItemResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	MovieID   int64     `json:"movieId"`
	Title     string    `json:"title"`
	Watched   bool      `json:"watched"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromModelToWatchlistItemResponse(entry *models.WatchlistEntry) *WatchlistItemResponse {
	return &WatchlistItemResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		MovieID:   entry.MovieID,
		Title:     entry.Title,
		Watched:   entry.Watched,
		CreatedAt: entry.CreatedAt,
	}
}

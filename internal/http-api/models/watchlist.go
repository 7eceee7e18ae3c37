package models

import "time"

type WatchlistItem struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_watchlist_user_movie,priority:1"`
	MovieID   int64     `json:"movie_id" gorm:"not null;uniqueIndex:idx_watchlist_user_movie,priority:2"`
	Watched   bool      `json:"watched" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}

// WatchlistEntry is a watchlist item enriched with its movie title.
type WatchlistEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	Title     string    `json:"title"`
	Watched   bool      `json:"watched"`
	CreatedAt time.Time `json:"created_at"`
}

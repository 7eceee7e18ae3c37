package models

import "time"

type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	MovieID   int64     `json:"movie_id" gorm:"not null;uniqueIndex:idx_ratings_user_movie,priority:2"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_ratings_user_movie,priority:1"`
	Rating    float64   `json:"rating" gorm:"type:double precision;not null"`
	Comment   *string   `json:"comment" gorm:"type:varchar(500)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Rating) TableName() string {
	return "ratings"
}

package models

type Movie struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title    string `json:"title" gorm:"type:varchar(255);not null"`
	Genre    string `json:"genre" gorm:"type:varchar(100);not null"`
	Duration int    `json:"duration" gorm:"not null"`
}

func (Movie) TableName() string {
	return "movies"
}

// MovieWithRating is a movie joined with the mean of its ratings.
// Rating is nil when the movie has not been rated.
type MovieWithRating struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Genre    string   `json:"genre"`
	Duration int      `json:"duration"`
	Rating   *float64 `json:"rating"`
}

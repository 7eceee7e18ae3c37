package dto

import "mimo/internal/http-api/models"

// MovieResponse carries the mean rating, null when the movie is unrated.
type MovieResponse struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Genre    string   `json:"genre"`
	Duration int      `json:"duration"`
	Rating   *float64 `json:"rating"`
}

func FromModelToMovieResponse(movie *models.MovieWithRating) *MovieResponse {
	return &MovieResponse{
		ID:       movie.ID,
		Title:    movie.Title,
		Genre:    movie.Genre,
		Duration: movie.Duration,
		Rating:   movie.Rating,
	}
}

// Package seed loads a fixed demo dataset: three users with known API keys,
// a movie catalogue, and a handful of ratings and watchlist entries.
package seed

import (
	"context"
	"fmt"

	"mimo/internal/http-api/models"

	"gorm.io/gorm"
)

type Summary struct {
	Users          []models.User
	Movies         int
	Ratings        int
	WatchlistItems int
}

var users = []models.User{
	{Username: "john_doe", Email: "john@example.com", APIKey: "api_key_john_12345"},
	{Username: "jane_smith", Email: "jane@example.com", APIKey: "api_key_jane_67890"},
	{Username: "bob_wilson", Email: "bob@example.com", APIKey: "api_key_bob_11111"},
}

var movies = []models.Movie{
	{Title: "Inception", Genre: "Sci-Fi", Duration: 148},
	{Title: "The Dark Knight", Genre: "Action", Duration: 152},
	{Title: "Pulp Fiction", Genre: "Crime", Duration: 154},
	{Title: "The Matrix", Genre: "Sci-Fi", Duration: 136},
	{Title: "Forrest Gump", Genre: "Drama", Duration: 142},
	{Title: "The Shawshank Redemption", Genre: "Drama", Duration: 142},
	{Title: "Fight Club", Genre: "Drama", Duration: 139},
	{Title: "Goodfellas", Genre: "Crime", Duration: 146},
	{Title: "The Godfather", Genre: "Crime", Duration: 175},
	{Title: "Interstellar", Genre: "Sci-Fi", Duration: 169},
	{Title: "Gladiator", Genre: "Action", Duration: 155},
	{Title: "The Silence of the Lambs", Genre: "Thriller", Duration: 118},
	{Title: "Schindler's List", Genre: "Drama", Duration: 195},
	{Title: "Saving Private Ryan", Genre: "War", Duration: 169},
	{Title: "The Green Mile", Genre: "Drama", Duration: 189},
	{Title: "Jurassic Park", Genre: "Sci-Fi", Duration: 127},
	{Title: "Titanic", Genre: "Romance", Duration: 194},
	{Title: "The Lion King", Genre: "Animation", Duration: 88},
	{Title: "Back to the Future", Genre: "Sci-Fi", Duration: 116},
	{Title: "Terminator 2", Genre: "Action", Duration: 137},
	{Title: "Alien", Genre: "Horror", Duration: 117},
	{Title: "The Departed", Genre: "Crime", Duration: 151},
	{Title: "Django Unchained", Genre: "Western", Duration: 165},
	{Title: "Whiplash", Genre: "Drama", Duration: 107},
	{Title: "Parasite", Genre: "Thriller", Duration: 132},
}

// indexes into users and movies
type ratingRow struct {
	user, movie int
	rating      float64
	comment     string
}

var ratings = []ratingRow{
	{0, 0, 4.5, "Incredible movie, very complex"},
	{0, 1, 5.0, "The best Batman movie"},
	{0, 3, 4.0, ""},
	{1, 0, 4.0, "Very good but confusing at times"},
	{1, 2, 4.5, "Tarantino at his best"},
	{1, 4, 5.0, "It made me cry"},
	{1, 5, 5.0, "A masterpiece"},
	{2, 1, 4.5, ""},
	{2, 6, 4.0, "You do not talk about fight club"},
	{2, 8, 5.0, "I'm gonna make him an offer he can't refuse"},
}

type watchlistRow struct {
	user, movie int
	watched     bool
}

var watchlist = []watchlistRow{
	{0, 2, false}, {0, 5, true}, {0, 9, false},
	{1, 1, false}, {1, 6, false}, {1, 8, true},
	{2, 0, true}, {2, 3, false}, {2, 4, false},
}

// Run inserts the dataset in one transaction. Existing rows are expected to
// have been cleared by the caller.
func Run(ctx context.Context, db *gorm.DB) (*Summary, error) {
	u := make([]models.User, len(users))
	copy(u, users)
	m := make([]models.Movie, len(movies))
	copy(m, movies)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return fmt.Errorf("create users: %w", err)
		}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("create movies: %w", err)
		}

		rs := make([]models.Rating, 0, len(ratings))
		for _, r := range ratings {
			row := models.Rating{UserID: u[r.user].ID, MovieID: m[r.movie].ID, Rating: r.rating}
			if r.comment != "" {
				comment := r.comment
				row.Comment = &comment
			}
			rs = append(rs, row)
		}
		if err := tx.Create(&rs).Error; err != nil {
			return fmt.Errorf("create ratings: %w", err)
		}

		items := make([]models.WatchlistItem, 0, len(watchlist))
		for _, w := range watchlist {
			items = append(items, models.WatchlistItem{UserID: u[w.user].ID, MovieID: m[w.movie].ID, Watched: w.watched})
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("create watchlist items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Summary{
		Users:          u,
		Movies:         len(m),
		Ratings:        len(ratings),
		WatchlistItems: len(watchlist),
	}, nil
}

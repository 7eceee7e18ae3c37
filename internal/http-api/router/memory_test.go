package router_test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"mimo/internal/http-api/models"
	"mimo/internal/http-api/repository"
)

// memStore backs the repository interfaces with maps so the full stack can
// be exercised without Postgres.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]models.User
	movies    map[int64]models.Movie
	ratings   map[int64]models.Rating
	watchlist map[int64]models.WatchlistItem
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[int64]models.User{},
		movies:    map[int64]models.Movie{},
		ratings:   map[int64]models.Rating{},
		watchlist: map[int64]models.WatchlistItem{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func page[T any](rows []T, limit, offset int) []T {
	if offset < 0 || offset >= len(rows) {
		return []T{}
	}
	rest := rows[offset:]
	if limit < len(rest) {
		rest = rest[:limit]
	}
	return rest
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type memMovies struct{ *memStore }

func (r memMovies) GetByID(_ context.Context, id int64) (*models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r memMovies) aggregate(m models.Movie) models.MovieWithRating {
	var sum float64
	var n int
	for _, rt := range r.ratings {
		if rt.MovieID == m.ID {
			sum += rt.Rating
			n++
		}
	}
	out := models.MovieWithRating{ID: m.ID, Title: m.Title, Genre: m.Genre, Duration: m.Duration}
	if n > 0 {
		avg := sum / float64(n)
		out.Rating = &avg
	}
	return out
}

func (r memMovies) ListWithRating(_ context.Context, limit, offset int) ([]models.MovieWithRating, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.MovieWithRating, 0, len(r.movies))
	for _, id := range sortedIDs(r.movies) {
		all = append(all, r.aggregate(r.movies[id]))
	}
	return page(all, limit, offset), int64(len(all)), nil
}

func (r memMovies) GetWithRating(_ context.Context, id int64) (*models.MovieWithRating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	agg := r.aggregate(m)
	return &agg, nil
}

func (r memMovies) Create(_ context.Context, movie *models.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	movie.ID = r.id()
	r.movies[movie.ID] = *movie
	return nil
}

type memRatings struct{ *memStore }

func (r memRatings) GetByID(_ context.Context, id int64) (*models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.ratings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rt, nil
}

func (r memRatings) GetByIDAndMovie(ctx context.Context, id, movieID int64) (*models.Rating, error) {
	rt, err := r.GetByID(ctx, id)
	if err != nil || rt.MovieID != movieID {
		return nil, repository.ErrNotFound
	}
	return rt, nil
}

func (r memRatings) GetByUserAndMovie(_ context.Context, userID, movieID int64) (*models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range r.ratings {
		if rt.UserID == userID && rt.MovieID == movieID {
			return &rt, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memRatings) ListByMovie(_ context.Context, movieID int64, limit, offset int) ([]models.Rating, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.Rating
	for _, id := range sortedIDs(r.ratings) {
		if r.ratings[id].MovieID == movieID {
			all = append(all, r.ratings[id])
		}
	}
	return page(all, limit, offset), int64(len(all)), nil
}

func (r memRatings) Create(_ context.Context, rating *models.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range r.ratings {
		if rt.UserID == rating.UserID && rt.MovieID == rating.MovieID {
			return repository.ErrDuplicate
		}
	}
	rating.ID = r.id()
	rating.CreatedAt = time.Now().UTC()
	r.ratings[rating.ID] = *rating
	return nil
}

func (r memRatings) Update(_ context.Context, id int64, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.ratings[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["rating"]; ok {
		rt.Rating = v.(float64)
	}
	if v, ok := fields["comment"]; ok {
		rt.Comment = v.(*string)
	}
	r.ratings[id] = rt
	return nil
}

func (r memRatings) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ratings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.ratings, id)
	return nil
}

type memWatchlist struct{ *memStore }

func (r memWatchlist) GetByIDAndUser(_ context.Context, id, userID int64) (*models.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.watchlist[id]
	if !ok || w.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (r memWatchlist) GetByUserAndMovie(_ context.Context, userID, movieID int64) (*models.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.watchlist {
		if w.UserID == userID && w.MovieID == movieID {
			return &w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memWatchlist) entry(w models.WatchlistItem) models.WatchlistEntry {
	return models.WatchlistEntry{
		ID:        w.ID,
		UserID:    w.UserID,
		MovieID:   w.MovieID,
		Title:     r.movies[w.MovieID].Title,
		Watched:   w.Watched,
		CreatedAt: w.CreatedAt,
	}
}

func (r memWatchlist) ListByUser(_ context.Context, userID int64, limit, offset int) ([]models.WatchlistEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.WatchlistEntry
	for _, id := range sortedIDs(r.watchlist) {
		if w := r.watchlist[id]; w.UserID == userID {
			all = append(all, r.entry(w))
		}
	}
	return page(all, limit, offset), int64(len(all)), nil
}

func (r memWatchlist) GetEntry(_ context.Context, id int64) (*models.WatchlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.watchlist[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e := r.entry(w)
	return &e, nil
}

func (r memWatchlist) Create(_ context.Context, item *models.WatchlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.watchlist {
		if w.UserID == item.UserID && w.MovieID == item.MovieID {
			return repository.ErrDuplicate
		}
	}
	item.ID = r.id()
	item.CreatedAt = time.Now().UTC()
	r.watchlist[item.ID] = *item
	return nil
}

func (r memWatchlist) UpdateWatched(_ context.Context, id int64, watched bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.watchlist[id]
	if !ok {
		return repository.ErrNotFound
	}
	w.Watched = watched
	r.watchlist[id] = w
	return nil
}

func (r memWatchlist) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.watchlist[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.watchlist, id)
	return nil
}

type memUsers struct{ *memStore }

func (r memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) GetByAPIKey(_ context.Context, apiKey string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.APIKey == apiKey {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.id()
	r.users[user.ID] = *user
	return nil
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

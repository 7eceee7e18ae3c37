package repository_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"mimo/database"
	"mimo/database/seed"
	"mimo/internal/config"
	"mimo/internal/http-api/models"
	"mimo/internal/http-api/repository"

	"github.com/stretchr/testify/suite"
)

// RepositoryIntegrationTestSuite runs the GORM repositories against a real
// Postgres. Set TEST_DATABASE_URL to a disposable database to enable it.
type RepositoryIntegrationTestSuite struct {
	suite.Suite
	db        *database.DB
	movies    repository.MovieRepository
	ratings   repository.RatingRepository
	watchlist repository.WatchlistRepository
	users     repository.UserRepository
	summary   *seed.Summary
}

func TestRepositoryIntegration(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository integration tests")
	}
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DATABASE_URL")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		GoEnv:          "test",
		DatabaseURL:    dsn,
		DBMaxOpenConns: 5,
		DBMaxIdleConns: 2,
		DBConnLifetime: time.Minute,
	}

	s.Require().NoError(database.MigrateUp(dsn, "schema_migrations", logger))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := database.Connect(ctx, cfg, logger)
	s.Require().NoError(err)
	s.db = db

	s.movies = repository.NewMovieRepository(db.Gorm)
	s.ratings = repository.NewRatingRepository(db.Gorm)
	s.watchlist = repository.NewWatchlistRepository(db.Gorm)
	s.users = repository.NewUserRepository(db.Gorm)
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
}

// SetupTest restores the seeded dataset before each test.
func (s *RepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.db.Reset(ctx))
	summary, err := seed.Run(ctx, s.db.Gorm)
	s.Require().NoError(err)
	s.summary = summary
}

func (s *RepositoryIntegrationTestSuite) TestListWithRatingAggregates() {
	ctx := context.Background()

	rows, total, err := s.movies.ListWithRating(ctx, 3, 0)
	s.Require().NoError(err)
	s.Equal(int64(s.summary.Movies), total)
	s.Require().Len(rows, 3)

	s.Equal("Inception", rows[0].Title)
	s.Require().NotNil(rows[0].Rating)
	s.InDelta(4.25, *rows[0].Rating, 1e-9)

	// The Dark Knight: 5.0 and 4.5
	s.Require().NotNil(rows[1].Rating)
	s.InDelta(4.75, *rows[1].Rating, 1e-9)

	last, _, err := s.movies.ListWithRating(ctx, 1, s.summary.Movies-1)
	s.Require().NoError(err)
	s.Require().Len(last, 1)
	s.Nil(last[0].Rating)

	beyond, _, err := s.movies.ListWithRating(ctx, 10, 100)
	s.Require().NoError(err)
	s.Empty(beyond)
}

func (s *RepositoryIntegrationTestSuite) TestGetWithRating() {
	ctx := context.Background()

	m, err := s.movies.GetWithRating(ctx, 1)
	s.Require().NoError(err)
	s.Require().NotNil(m.Rating)
	s.InDelta(4.25, *m.Rating, 1e-9)

	_, err = s.movies.GetWithRating(ctx, 99999)
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *RepositoryIntegrationTestSuite) TestIDsBeyondInt32AreNotFound() {
	ctx := context.Background()
	const id = int64(3_000_000_000)

	_, err := s.movies.GetByID(ctx, id)
	s.ErrorIs(err, repository.ErrNotFound)
	_, err = s.movies.GetWithRating(ctx, id)
	s.ErrorIs(err, repository.ErrNotFound)
	_, err = s.ratings.GetByIDAndMovie(ctx, id, 1)
	s.ErrorIs(err, repository.ErrNotFound)
	_, err = s.users.GetByID(ctx, id)
	s.ErrorIs(err, repository.ErrNotFound)
	_, err = s.watchlist.GetByIDAndUser(ctx, id, s.summary.Users[0].ID)
	s.ErrorIs(err, repository.ErrNotFound)

	rows, total, err := s.watchlist.ListByUser(ctx, id, 10, 0)
	s.Require().NoError(err)
	s.Zero(total)
	s.Empty(rows)
}

func (s *RepositoryIntegrationTestSuite) TestRatingUniquePerUserAndMovie() {
	ctx := context.Background()
	john := s.summary.Users[0]

	err := s.ratings.Create(ctx, &models.Rating{UserID: john.ID, MovieID: 1, Rating: 3})
	s.ErrorIs(err, repository.ErrDuplicate)

	r := &models.Rating{UserID: john.ID, MovieID: 25, Rating: 3.5}
	s.Require().NoError(s.ratings.Create(ctx, r))
	s.NotZero(r.ID)
	s.False(r.CreatedAt.IsZero())

	found, err := s.ratings.GetByUserAndMovie(ctx, john.ID, 25)
	s.Require().NoError(err)
	s.Equal(r.ID, found.ID)
}

func (s *RepositoryIntegrationTestSuite) TestRatingUpdateAndDelete() {
	ctx := context.Background()
	john := s.summary.Users[0]

	r, err := s.ratings.GetByUserAndMovie(ctx, john.ID, 1)
	s.Require().NoError(err)

	_, err = s.ratings.GetByIDAndMovie(ctx, r.ID, 2)
	s.ErrorIs(err, repository.ErrNotFound)

	s.Require().NoError(s.ratings.Update(ctx, r.ID, map[string]any{"rating": 2.0, "comment": nil}))
	got, err := s.ratings.GetByID(ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(2.0, got.Rating)
	s.Nil(got.Comment)

	s.Require().NoError(s.ratings.Delete(ctx, r.ID))
	s.ErrorIs(s.ratings.Delete(ctx, r.ID), repository.ErrNotFound)
	s.ErrorIs(s.ratings.Update(ctx, r.ID, map[string]any{"rating": 1.0}), repository.ErrNotFound)

	list, total, err := s.ratings.ListByMovie(ctx, 1, 10, 0)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Len(list, 1)
}

func (s *RepositoryIntegrationTestSuite) TestWatchlistLifecycle() {
	ctx := context.Background()
	john := s.summary.Users[0]

	entries, total, err := s.watchlist.ListByUser(ctx, john.ID, 10, 0)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(entries, 3)
	s.Equal("Pulp Fiction", entries[0].Title)

	err = s.watchlist.Create(ctx, &models.WatchlistItem{UserID: john.ID, MovieID: entries[0].MovieID})
	s.ErrorIs(err, repository.ErrDuplicate)

	item := &models.WatchlistItem{UserID: john.ID, MovieID: 20}
	s.Require().NoError(s.watchlist.Create(ctx, item))

	s.Require().NoError(s.watchlist.UpdateWatched(ctx, item.ID, true))
	entry, err := s.watchlist.GetEntry(ctx, item.ID)
	s.Require().NoError(err)
	s.True(entry.Watched)
	s.Equal("Terminator 2", entry.Title)

	_, err = s.watchlist.GetByIDAndUser(ctx, item.ID, s.summary.Users[1].ID)
	s.ErrorIs(err, repository.ErrNotFound)

	s.Require().NoError(s.watchlist.Delete(ctx, item.ID))
	s.ErrorIs(s.watchlist.Delete(ctx, item.ID), repository.ErrNotFound)
}

func (s *RepositoryIntegrationTestSuite) TestUserLookups() {
	ctx := context.Background()

	u, err := s.users.GetByAPIKey(ctx, "api_key_jane_67890")
	s.Require().NoError(err)
	s.Equal("jane_smith", u.Username)

	_, err = s.users.GetByAPIKey(ctx, "missing")
	s.ErrorIs(err, repository.ErrNotFound)

	u, err = s.users.GetByUsername(ctx, "bob_wilson")
	s.Require().NoError(err)
	s.Equal("bob@example.com", u.Email)
}

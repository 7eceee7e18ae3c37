// Package router assembles the gin engine: middleware chain, route groups
// and the 404 fallback.
package router

import (
	"fmt"
	"log/slog"
	"net/http"

	"mimo/internal/http-api/dto"
	"mimo/internal/http-api/handler"
	"mimo/internal/http-api/middleware"
	"mimo/internal/http-api/response"
	"mimo/internal/http-api/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Movies     service.MovieService
	Ratings    service.RatingService
	Watchlist  service.WatchlistService
	Identities service.IdentityService
	DB         handler.Pinger
}

type Options struct {
	handler.Options
	Gzip           bool
	RateLimitRPS   float64
	RateLimitBurst int
}

// New builds the HTTP API. Middleware runs in this order: request id,
// request log, panic recovery, compression, content negotiation, rate limit.
func New(svc Services, opts Options) (*gin.Engine, error) {
	dto.RegisterValidators()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
		opts.Logger = logger
	}

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	if opts.Gzip {
		r.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	r.Use(middleware.RespondTo("application/json"))
	if opts.RateLimitRPS > 0 {
		limit, err := middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst, logger)
		if err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		r.Use(limit)
	}

	auth := middleware.APIKeyAuth(svc.Identities, logger)

	handler.NewHealthHandler(svc.DB, opts.Options).RegisterRoutes(r.Group("/health"))

	movies := r.Group("/movies")
	handler.NewMovieHandler(svc.Movies, opts.Options).RegisterRoutes(movies)
	handler.NewRatingHandler(svc.Ratings, opts.Options).RegisterRoutes(movies, auth)

	watchlist := r.Group("/watchlist", auth)
	handler.NewWatchlistHandler(svc.Watchlist, opts.Options).RegisterRoutes(watchlist)

	r.NoRoute(func(c *gin.Context) {
		response.Message(c, http.StatusNotFound, response.MsgNotFound)
	})

	return r, nil
}

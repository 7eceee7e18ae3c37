package handler

import (
	"fmt"
	"net/http"

	"mimo/internal/http-api/dto"
	"mimo/internal/http-api/response"
	"mimo/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	base
	svc service.RatingService
}

// NewRatingHandler answers service errors as {"message": ...}.
func NewRatingHandler(svc service.RatingService, opts Options) *RatingHandler {
	b := newBase(opts)
	b.key = response.KeyMessage
	return &RatingHandler{base: b, svc: svc}
}

// RegisterRoutes mounts the rating routes under a movie group; auth guards
// the mutating ones.
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/:movieId/ratings", h.List)
	rg.GET("/:movieId/ratings/:ratingId", h.Get)
	rg.POST("/:movieId/ratings", auth, h.Create)
	rg.PATCH("/:movieId/ratings/:ratingId", auth, h.Update)
	rg.DELETE("/:movieId/ratings/:ratingId", auth, h.Delete)
}

func (h *RatingHandler) List(c *gin.Context) {
	movieID, ok := h.pathID(c, "movieId", service.ErrMovieNotFound)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	resp, err := h.svc.List(ctx, movieID, h.page(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RatingHandler) Get(c *gin.Context) {
	movieID, ok := h.pathID(c, "movieId", service.ErrMovieNotFound)
	if !ok {
		return
	}
	ratingID, ok := h.pathID(c, "ratingId", service.ErrRatingNotFound)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	rating, err := h.svc.Get(ctx, movieID, ratingID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *RatingHandler) Create(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.CreateRatingRequest
	if !bindJSON(c, &req) {
		return
	}

	movieID, ok := h.pathID(c, "movieId", service.ErrMovieNotFound)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	rating, err := h.svc.Create(ctx, userID, movieID, *req.Rating, req.Comment)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/movies/%d/ratings/%d", movieID, rating.ID))
	c.JSON(http.StatusCreated, rating)
}

func (h *RatingHandler) Update(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.UpdateRatingRequest
	if !bindJSON(c, &req) {
		return
	}
	if details := req.Validate(); len(details) > 0 {
		response.Validation(c, details)
		return
	}

	movieID, ok := h.pathID(c, "movieId", service.ErrMovieNotFound)
	if !ok {
		return
	}
	ratingID, ok := h.pathID(c, "ratingId", service.ErrRatingNotFound)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	rating, err := h.svc.Update(ctx, userID, movieID, ratingID, service.RatingChanges{
		Rating:     req.Rating,
		Comment:    req.Comment.Value,
		CommentSet: req.Comment.Set,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *RatingHandler) Delete(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}
	movieID, ok := h.pathID(c, "movieId", service.ErrMovieNotFound)
	if !ok {
		return
	}
	ratingID, ok := h.pathID(c, "ratingId", service.ErrRatingNotFound)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, userID, movieID, ratingID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

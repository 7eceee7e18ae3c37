package handler

import (
	"net/http"

	"mimo/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	base
	svc service.MovieService
}

func NewMovieHandler(svc service.MovieService, opts Options) *MovieHandler {
	return &MovieHandler{base: newBase(opts), svc: svc}
}

func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:movieId", h.Get)
}

// List returns one page of movies with their average rating
func (h *MovieHandler) List(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	resp, err := h.svc.List(ctx, h.page(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns a single movie with its average rating
func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "movieId", service.ErrMovieNotFound)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	movie, err := h.svc.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

package handler

import (
	"fmt"
	"net/http"

	"mimo/internal/http-api/dto"
	"mimo/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type WatchlistHandler struct {
	base
	svc service.WatchlistService
}

func NewWatchlistHandler(svc service.WatchlistService, opts Options) *WatchlistHandler {
	return &WatchlistHandler{base: newBase(opts), svc: svc}
}

// RegisterRoutes expects rg to be guarded by API key auth already.
func (h *WatchlistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:userId", h.List)
	rg.POST("/:userId/items", h.Add)
	rg.PATCH("/:userId/items/:itemId", h.Update)
	rg.DELETE("/:userId/items/:itemId", h.Remove)
}

func (h *WatchlistHandler) List(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "userId", service.ErrUserNotFound)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	resp, err := h.svc.List(ctx, callerID, userID, h.page(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WatchlistHandler) Add(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.CreateWatchlistItemRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := h.pathID(c, "userId", service.ErrUserNotFound)
	if !ok {
		return
	}

	watched := false
	if req.Watched != nil {
		watched = *req.Watched
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	item, err := h.svc.Add(ctx, callerID, userID, *req.MovieID, watched)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/watchlist/%d/items/%d", userID, item.ID))
	c.JSON(http.StatusCreated, item)
}

func (h *WatchlistHandler) Update(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.UpdateWatchlistItemRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := h.pathID(c, "userId", service.ErrUserNotFound)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId", service.ErrWatchlistItemNotFound)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	item, err := h.svc.SetWatched(ctx, callerID, userID, itemID, *req.Watched)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *WatchlistHandler) Remove(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "userId", service.ErrUserNotFound)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId", service.ErrWatchlistItemNotFound)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.svc.Remove(ctx, callerID, userID, itemID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

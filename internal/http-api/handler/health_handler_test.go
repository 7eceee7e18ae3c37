package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"mimo/internal/http-api/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func setupHealthRouter(p handler.Pinger) *gin.Engine {
	r := gin.New()
	handler.NewHealthHandler(p, testOptions()).RegisterRoutes(r.Group("/health"))
	return r
}

func TestHealth_Live(t *testing.T) {
	r := setupHealthRouter(pingFunc(func(context.Context) error { return errors.New("down") }))

	w := doRequest(r, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealth_Ready(t *testing.T) {
	w := doRequest(setupHealthRouter(pingFunc(func(context.Context) error { return nil })), http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(setupHealthRouter(pingFunc(func(context.Context) error { return errors.New("down") })), http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"down"`)
}

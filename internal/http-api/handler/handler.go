package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"mimo/internal/http-api/dto"
	"mimo/internal/http-api/middleware"
	"mimo/internal/http-api/response"
	"mimo/internal/http-api/service"
	"mimo/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Options are shared by every handler.
type Options struct {
	// Timeout bounds the store work of one request.
	Timeout      time.Duration
	DefaultLimit int
	Logger       *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = pagination.DefaultLimit
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

type base struct {
	opts Options
	// key selects the field carrying service error text
	key response.Key
}

func newBase(opts Options) base {
	return base{opts: opts.withDefaults(), key: response.KeyError}
}

func (b base) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), b.opts.Timeout)
}

func (b base) page(c *gin.Context) pagination.Params {
	return pagination.Parse(c.Query("page"), c.Query("limit"), b.opts.DefaultLimit)
}

func (b base) fail(c *gin.Context, err error) {
	response.ErrorAs(c, b.opts.Logger, b.key, err)
}

// pathID reads an integer path parameter. Values without a leading integer
// are answered with notFound, the same as an unknown id.
func (b base) pathID(c *gin.Context, name string, notFound error) (int64, bool) {
	id, ok := pagination.ParseInt(c.Param(name))
	if !ok {
		b.fail(c, notFound)
		return 0, false
	}
	return id, true
}

// caller returns the authenticated user id.
func (b base) caller(c *gin.Context) (int64, bool) {
	id, ok := middleware.IdentityFrom(c.Request.Context())
	if !ok {
		b.fail(c, service.ErrUnauthorized)
		return 0, false
	}
	return id.UserID, true
}

// bindJSON decodes and validates the request body into dst, answering 422
// with field details or 400 for unparseable JSON.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if errors.Is(err, io.EOF) {
		// empty body, report what is missing
		err = binding.Validator.ValidateStruct(dst)
	}
	if err == nil {
		return true
	}

	details, ferr := dto.FieldErrors(err)
	if ferr != nil {
		response.Message(c, http.StatusBadRequest, response.MsgMalformedJSON)
		return false
	}
	response.Validation(c, details)
	return false
}

package dto

import "mimo/pkg/pagination"

// PaginatedResponse is the envelope of every list endpoint.
type PaginatedResponse[T any] struct {
	Data       []T             `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

func NewPaginatedResponse[T any](data []T, params pagination.Params, total int64) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return &PaginatedResponse[T]{
		Data:       data,
		Pagination: pagination.NewMeta(params, total),
	}
}

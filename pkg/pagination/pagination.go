// Package pagination turns raw page/limit query values into bounded store
// parameters and builds the pagination block returned with every list.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultLimit is used when the caller does not configure one.
const DefaultLimit = 10

// Params is a validated (page, limit) pair. Page and Limit are always >= 1.
type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination block of a list response.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Parse converts raw query values into Params.
//
// Absent or non-numeric pages become 1 and anything below 1 is clamped to 1.
// Absent, non-numeric, zero or negative limits become defaultLimit. There is
// no upper bound on limit: a client may request arbitrarily large pages.
func Parse(rawPage, rawLimit string, defaultLimit int) Params {
	if defaultLimit < 1 {
		defaultLimit = DefaultLimit
	}

	page := 1
	if p, ok := ParseInt(rawPage); ok && p > 1 {
		page = clampInt(p)
	}

	limit := defaultLimit
	if l, ok := ParseInt(rawLimit); ok && l > 0 {
		limit = clampInt(l)
	}

	return Params{Page: page, Limit: limit}
}

const maxInt = int(^uint(0) >> 1)

// Offset is the number of rows to skip for the current page. It saturates at
// the largest int instead of wrapping, so far pages come back empty.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > maxInt/p.Limit {
		return maxInt
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total / limit).
func TotalPages(total int64, limit int) int64 {
	if limit < 1 || total <= 0 {
		return 0
	}
	return (total-1)/int64(limit) + 1
}

// NewMeta builds the response metadata for a page of a collection holding
// total items.
func NewMeta(p Params, total int64) Meta {
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: TotalPages(total, p.Limit),
	}
}

// ParseInt reads a leading base-10 integer the way query strings and path
// segments are read by the API: leading whitespace and a sign are accepted and
// anything after the digits is ignored, so "12abc" yields 12. It reports false
// when no digits are found or the value does not fit in an int64.
func ParseInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func clampInt(v int64) int {
	if v > int64(maxInt) {
		return maxInt
	}
	return int(v)
}

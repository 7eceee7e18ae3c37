package service

import "errors"

// Kind classifies a service failure. The handler layer maps each kind to
// exactly one HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
	KindUnprocessable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindUnprocessable:
		return "unprocessable"
	default:
		return "internal"
	}
}

// Error is an expected failure with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	ErrMovieNotFound         = newError(KindNotFound, "Movie not found")
	ErrRatingNotFound        = newError(KindNotFound, "Rating not found")
	ErrUserNotFound          = newError(KindNotFound, "User not found")
	ErrWatchlistItemNotFound = newError(KindNotFound, "Watchlist item not found")
	ErrUnauthorized          = newError(KindUnauthorized, "Unauthorized")
	ErrForbidden             = newError(KindForbidden, "Forbidden")
	ErrAlreadyRated          = newError(KindConflict, "User has already rated this movie")
	ErrAlreadyInWatchlist    = newError(KindConflict, "Movie already in watchlist")
)

// KindOf reports the kind of err, KindInternal for anything unexpected.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

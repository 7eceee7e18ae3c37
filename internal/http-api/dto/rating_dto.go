package dto

import (
	"bytes"
	"encoding/json"
	"time"
	"unicode/utf8"

	"mimo/internal/http-api/models"
)

const MaxCommentLength = 500

type CreateRatingRequest struct {
	Rating  *float64 `json:"rating" binding:"required,gte=1,lte=5,halfstep"`
	Comment *string  `json:"comment" binding:"omitempty,max=500"`
}

// UpdateRatingRequest is a partial update. Comment distinguishes an absent
// key from an explicit null, which clears the stored comment.
type UpdateRatingRequest struct {
	Rating  *float64       `json:"rating" binding:"omitempty,gte=1,lte=5,halfstep"`
	Comment OptionalString `json:"comment"`
}

// Validate covers the rules the tag validator cannot express.
func (r *UpdateRatingRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Rating == nil && !r.Comment.Set {
		errs = append(errs, FieldError{Field: "body", Message: "must contain at least one of [rating, comment]"})
	}
	if r.Comment.Value != nil && utf8.RuneCountInString(*r.Comment.Value) > MaxCommentLength {
		errs = append(errs, FieldError{Field: "comment", Message: "must be at most 500 characters long"})
	}
	return errs
}

// OptionalString records whether its JSON key was present at all.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

type RatingResponse struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movieId"`
	UserID    int64     `json:"userId"`
	Rating    float64   `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromModelToRatingResponse(rating *models.Rating) *RatingResponse {
	return &RatingResponse{
		ID:        rating.ID,
		MovieID:   rating.MovieID,
		UserID:    rating.UserID,
		Rating:    rating.Rating,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
	}
}

package models

import "errors"

var (
	ErrMissingFields = errors.New("required fields are missing")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

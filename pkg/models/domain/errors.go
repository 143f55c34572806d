package domain

import "errors"

var (
	// ErrDataUnavailable is returned when the record store cannot be reached or read.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrSerialization is returned when a document or one of its images cannot be encoded.
	ErrSerialization = errors.New("serialization error")
	// ErrValidation is returned for malformed input such as an inverted date range.
	ErrValidation = errors.New("validation error")
)

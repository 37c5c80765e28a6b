package models

import "errors"

// Validation and calculation precondition errors. The error text is part of
// the API contract: handlers return it verbatim as the "error" field of a
// 400 response.
var (
	ErrEmptyUserID           = errors.New("user_id must not be empty")
	ErrInvalidMode           = errors.New("invalid mode")
	ErrNegativeDistance      = errors.New("negative distance")
	ErrOccupancyBelowMinimum = errors.New("occupancy below minimum")
)

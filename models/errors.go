package models

import "errors"

var (
	// Capacity errors
	ErrInvalidTarget    = errors.New("reservation target not found")
	ErrCapacityExceeded = errors.New("not enough capacity left on target")

	// Offer errors
	ErrOfferOverlap = errors.New("offer window overlaps an accepted offer")

	// Cascade errors
	ErrPartialCascade = errors.New("cascade partially completed, retry to resume")

	// General errors
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrLockTimeout  = errors.New("timed out waiting for target lock")
)

package models

import "errors"

// Custom errors
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrInvalidID           = errors.New("invalid ID format")
	ErrInsufficientSample  = errors.New("insufficient sample size")
	ErrNumericInstability  = errors.New("numeric instability in fit")
	ErrInvariantViolation  = errors.New("model invariant violated")
	ErrBetAlreadyGraded    = errors.New("bet already graded")
)

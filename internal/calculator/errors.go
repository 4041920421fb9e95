package calculator

import "errors"

var (
	// ErrInvalidSeries reports an empty, unordered-with-duplicates or malformed price series.
	ErrInvalidSeries = errors.New("invalid series")

	// ErrInsufficientData reports a computation that needs at least one bar but got none.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParams reports a non-positive indicator period or multiplier.
	ErrInvalidParams = errors.New("invalid indicator parameters")
)

package poa

import "errors"

var (
	// ErrInvalidInput is returned for an empty sequence list, a zero-length
	// sequence, an unknown alignment mode, or a non-positive maximum
	// consensus length
	ErrInvalidInput = errors.New("invalid input")

	// ErrTableTooLarge is returned before allocating an alignment table
	// whose cell count exceeds the configured bound
	ErrTableTooLarge = errors.New("alignment table too large")

	// ErrScoreOverflow is returned when the scoring parameters could push
	// an accumulated path score past the range of the score accumulator
	ErrScoreOverflow = errors.New("score overflow")
)

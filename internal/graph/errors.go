package graph

import "errors"

var (
	// ErrInvalidCount indicates a non-positive entity count.
	ErrInvalidCount = errors.New("graph: entity count must be positive")

	// ErrInvalidBounds indicates a canvas region without area.
	ErrInvalidBounds = errors.New("graph: bounds must have positive width and height")

	// ErrUnknownVariant indicates a variant name outside network/chip.
	ErrUnknownVariant = errors.New("graph: unknown variant")
)

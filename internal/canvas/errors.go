package canvas

import "errors"

// Failures are expected, user-facing states; none of them change the canvas.
var (
	ErrCapacityExceeded   = errors.New("canvas: capacity exceeded")
	ErrNoFreeSlot         = errors.New("canvas: no free slot")
	ErrUnknownCombination = errors.New("canvas: unknown combination")
	ErrUnknownElement     = errors.New("canvas: unknown element")
	ErrUnknownInstance    = errors.New("canvas: unknown instance")
)

package engine

import (
	"errors"
	"fmt"
)

// ErrNotMounted indicates a headless run against an animation that has no
// live loop.
var ErrNotMounted = errors.New("engine: animation not mounted")

// FrameError wraps the failure that killed an animation's loop.
type FrameError struct {
	Frame   uint64
	Epoch   string
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (epoch %s): %v", e.Frame, e.Epoch, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}

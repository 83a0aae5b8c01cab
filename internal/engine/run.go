package engine

import (
	"context"

	"github.com/san-kum/qnet/internal/frame"
)

// Run drives a mounted animation without a display: it flushes q n times,
// calling each (when non-nil) after every frame. It stops early on context
// cancellation, on a loop fault or when each fails.
func Run(ctx context.Context, a *Animation, q *frame.Queue, n int, each func(i int) error) error {
	if !a.Running() {
		return ErrNotMounted
	}
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		q.Flush()
		if err := a.Err(); err != nil {
			return err
		}
		if each != nil {
			if err := each(i); err != nil {
				return err
			}
		}
	}
	return nil
}

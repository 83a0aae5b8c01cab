// Package tui streams frames to a plain terminal with ANSI escapes, for
// terminals and pipes where the interactive view cannot run.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/qnet/internal/engine"
	"github.com/san-kum/qnet/internal/frame"
	"github.com/san-kum/qnet/internal/viz"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Streamer writes one braille frame per display frame to w.
type Streamer struct {
	w         io.Writer
	frameRate int
	color     bool
	Surface   *viz.BrailleSurface
}

// NewStreamer returns a streamer whose Surface accepts drawing in a
// logicalW x logicalH plane. With color false frames carry no styling.
func NewStreamer(w io.Writer, frameRate, logicalW, logicalH int, color bool) *Streamer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &Streamer{
		w:         w,
		frameRate: frameRate,
		color:     color,
		Surface:   viz.NewBrailleSurface(width, height, logicalW, logicalH),
	}
}

// Run flushes q at the frame rate and prints every frame until ctx is
// done, the loop faults or n frames have been drawn (n <= 0 runs forever).
func (s *Streamer) Run(ctx context.Context, a *engine.Animation, q *frame.Queue, n int) error {
	if !a.Running() {
		return engine.ErrNotMounted
	}
	fmt.Fprint(s.w, hideCursor)
	defer fmt.Fprint(s.w, showCursor)

	ticker := time.NewTicker(time.Second / time.Duration(s.frameRate))
	defer ticker.Stop()

	for i := 0; n <= 0 || i < n; i++ {
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		q.Flush()
		if err := a.Err(); err != nil {
			return err
		}
		if err := s.render(a); err != nil {
			return err
		}
	}
	return nil
}

func (s *Streamer) render(a *engine.Animation) error {
	var b strings.Builder
	b.WriteString(clearScreen)
	ep := a.Epoch()
	b.WriteString(fmt.Sprintf("  %s  entities=%d  frame=%d\n", a.Variant(), ep.Len(), a.Frames()))
	b.WriteString("  " + strings.Repeat("-", s.Surface.Width) + "\n")

	body := s.Surface.Plain()
	if s.color {
		body = s.Surface.String()
	}
	for _, row := range strings.Split(strings.TrimSuffix(body, "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", s.Surface.Width) + "\n")
	metrics := "  "
	for _, m := range a.Metrics() {
		metrics += fmt.Sprintf("%s=%.2f ", m.Name(), m.Value())
	}
	b.WriteString(metrics + "\n")

	_, err := io.WriteString(s.w, b.String())
	return err
}

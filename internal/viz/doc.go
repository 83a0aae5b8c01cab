// Package viz hosts the animation engine in a terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one animation beside the dashboard panel
//   - [BrailleSurface]: render.Surface drawing onto braille cells
//   - [NewLauncher]: menu for picking a preset before going live
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume animation
//	V/Tab - Switch between network and chip views
//	C     - Type a new entity count, Enter to apply
//	R     - Re-seed with the current count
//	S     - Save the current epoch as SVG
//	T     - Cycle color themes
//	?     - Show help overlay
//
// # Frames
//
// Every TickMsg flushes the shared frame queue once. Pausing simply stops
// flushing; the pending frame request stays queued until resumed.
package viz

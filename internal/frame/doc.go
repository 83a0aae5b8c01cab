// Package frame provides the cooperative per-frame scheduling used by the
// animation engine.
//
// A [Scheduler] arranges for a callback to run "soon" (on the next display
// refresh) and can cancel it. [Queue] is the host-driven implementation:
// terminal, window and headless hosts call [Queue.Flush] once per refresh,
// and tests flush it by hand to count ticks.
//
// [Loop] turns a tick function into a self-rescheduling animation loop with
// guaranteed teardown: after [Loop.Stop] returns no further tick runs, even
// if a frame had already been requested.
package frame

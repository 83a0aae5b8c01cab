// Package engine owns a running graph animation: the current epoch, the
// frame loop driving it and the reconfiguration path that replaces it.
//
// An [Animation] is created for one variant (network or chip) against a
// render surface and a frame scheduler:
//
//	q := frame.NewQueue()
//	anim := engine.New(graph.Network, surface, q, engine.WithCount(500))
//	anim.Mount()
//	for running {
//		q.Flush() // once per display refresh
//	}
//	anim.Unmount()
//
// Every tick fades the previous frame, draws connections, draws entities,
// advances motion and requests the next frame, in that order.
// [Animation.SetEntityCount] stops the current loop before generating a
// new epoch, so two generations never render interleaved frames.
//
// # Thread Safety
//
// Animation is NOT thread-safe. Mount, Unmount, SetEntityCount and the
// scheduler's flush must all run on the host's frame goroutine.
package engine

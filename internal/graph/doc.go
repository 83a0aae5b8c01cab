// Package graph holds the entity model and the randomized topology
// generator shared by the network and chip views.
//
// An [Epoch] is one complete generation of entities and connections. It is
// produced in a single call to [Generate] and replaced wholesale when the
// entity count changes:
//
//   - [Entity]: positioned node carrying a strength (network) or a kind (chip)
//   - [Connection]: undirected edge between two distinct entities
//   - [Epoch]: snapshot owning entities, connections and adjacency
//
// # Example
//
//	rng := rand.New(rand.NewSource(seed))
//	ep, err := graph.Generate(rng, graph.Network, 50, graph.Bounds{Width: 1920, Height: 1080})
//
// # Thread Safety
//
// Epochs are NOT thread-safe. The animation loop owns the current epoch and
// mutates positions in place from a single goroutine.
package graph

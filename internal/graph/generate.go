package graph

import (
	"math/rand"

	"github.com/google/uuid"
)

const (
	minLinks = 1
	maxLinks = 3
)

// Generate builds a fresh epoch of count entities inside b.
//
// Each entity draws k in [1,3] and attempts k links to uniformly random
// entities. Self links and links already present in the source's adjacency
// are dropped without a retry, so realized degree may fall short of k and
// isolated entities are possible.
func Generate(rng *rand.Rand, v Variant, count int, b Bounds) (*Epoch, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	if !b.Valid() {
		return nil, ErrInvalidBounds
	}
	if v != Network && v != Chip {
		return nil, ErrUnknownVariant
	}

	ep := &Epoch{
		ID:          uuid.New().String(),
		Variant:     v,
		Bounds:      b,
		Entities:    make([]Entity, count),
		Connections: make([]Connection, 0, count*2),
		Adjacency:   make([][]int, count),
	}

	for i := range ep.Entities {
		e := Entity{
			ID:  i,
			Pos: Vec2{X: rng.Float64() * b.Width, Y: rng.Float64() * b.Height},
		}
		switch v {
		case Network:
			e.Strength = rng.Float64()
		case Chip:
			e.Kind = Kinds[rng.Intn(len(Kinds))]
		}
		ep.Entities[i] = e
	}

	for src := 0; src < count; src++ {
		k := minLinks + rng.Intn(maxLinks-minLinks+1)
		for j := 0; j < k; j++ {
			dst := rng.Intn(count)
			if dst == src || ep.Connected(src, dst) {
				continue
			}
			c := Connection{Source: src, Target: dst}
			if v == Network {
				c.Strength = rng.Float64()
			}
			ep.Connections = append(ep.Connections, c)
			ep.Adjacency[src] = append(ep.Adjacency[src], dst)
			ep.Adjacency[dst] = append(ep.Adjacency[dst], src)
		}
	}

	return ep, nil
}

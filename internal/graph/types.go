package graph

import (
	"fmt"
	"math"
	"strings"
)

type Variant string

const (
	Network Variant = "network"
	Chip    Variant = "chip"
)

func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case Network:
		return Network, nil
	case Chip:
		return Chip, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Kind is the component class of a chip entity.
type Kind int

const (
	Primary Kind = iota
	Memory
	IO
)

// Kinds is the closed set a chip entity's kind is drawn from.
var Kinds = [...]Kind{Primary, Memory, IO}

func (k Kind) String() string {
	switch k {
	case Primary:
		return "Primary"
	case Memory:
		return "Memory"
	case IO:
		return "IO"
	default:
		return "Unknown"
	}
}

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

type Bounds struct {
	Width  float64
	Height float64
}

func (b Bounds) Valid() bool {
	return b.Width > 0 && b.Height > 0 && !math.IsInf(b.Width, 0) && !math.IsInf(b.Height, 0)
}

func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

// Clamp pulls p back onto the region without preserving any velocity.
func (b Bounds) Clamp(p Vec2) Vec2 {
	return Vec2{X: clamp(p.X, 0, b.Width), Y: clamp(p.Y, 0, b.Height)}
}

func (b Bounds) Center() Vec2 {
	return Vec2{X: b.Width / 2, Y: b.Height / 2}
}

type Entity struct {
	ID       int
	Pos      Vec2
	Strength float64
	Kind     Kind
}

type Connection struct {
	Source   int
	Target   int
	Strength float64
}

// Epoch is one atomically replaced generation of entities and connections.
type Epoch struct {
	ID          string
	Variant     Variant
	Bounds      Bounds
	Entities    []Entity
	Connections []Connection
	// Adjacency[i] lists the ids connected to entity i, in both directions.
	Adjacency [][]int
}

func (e *Epoch) Len() int { return len(e.Entities) }

// Label is the display name of entity id in this epoch.
func (e *Epoch) Label(id int) string {
	if e.Variant == Chip {
		return fmt.Sprintf("comp-%d", id)
	}
	return fmt.Sprintf("node-%d", id)
}

func (e *Epoch) Degree(id int) int {
	if id < 0 || id >= len(e.Adjacency) {
		return 0
	}
	return len(e.Adjacency[id])
}

func (e *Epoch) Connected(a, b int) bool {
	if a < 0 || a >= len(e.Adjacency) {
		return false
	}
	for _, n := range e.Adjacency[a] {
		if n == b {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, used when a host needs a stable frame snapshot.
func (e *Epoch) Clone() *Epoch {
	c := &Epoch{
		ID:          e.ID,
		Variant:     e.Variant,
		Bounds:      e.Bounds,
		Entities:    make([]Entity, len(e.Entities)),
		Connections: make([]Connection, len(e.Connections)),
		Adjacency:   make([][]int, len(e.Adjacency)),
	}
	copy(c.Entities, e.Entities)
	copy(c.Connections, e.Connections)
	for i, adj := range e.Adjacency {
		c.Adjacency[i] = append([]int(nil), adj...)
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

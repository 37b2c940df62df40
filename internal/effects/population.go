// Package effects manages short-lived decorative entities: shooting stars and comets.
package effects

import (
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-orrery/internal/astro"
)

// Kind identifies a population.
type Kind int

const (
	KindShootingStar Kind = iota
	KindComet
)

// String returns the population name.
func (k Kind) String() string {
	switch k {
	case KindShootingStar:
		return "shooting-star"
	case KindComet:
		return "comet"
	default:
		return "unknown"
	}
}

// Edge is the named side of the view an entity enters from.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeLeft
	EdgeRight
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}

// Rand is the randomness the spawn policy draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Range is a half-open interval [Min, Max).
type Range struct {
	Min, Max float64
}

// Sample draws uniformly from the range.
func (r Range) Sample(rng Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// EdgeSpec gives the origin and velocity ranges for one entry edge.
type EdgeSpec struct {
	Edge    Edge
	X, Y, Z Range // Spawn position
	VX, VY  Range // Velocity per frame
	VZ      Range
}

// Variant is a cosmetic tag: it selects colour and size, nothing else.
type Variant struct {
	Name  string
	Color string
	Size  float64
}

// Bounds is the box an entity must stay inside, checked on X and Y.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Contains reports whether p lies inside the bounds. Non-finite points
// are never inside.
func (b Bounds) Contains(p astro.Vec3) bool {
	if !p.IsFinite() {
		return false
	}
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Spec parameterizes a population.
type Spec struct {
	Kind        Kind
	Edges       []EdgeSpec
	Variants    []Variant
	Tail        Range // Tail length in segments
	Bounds      Bounds
	Interval    time.Duration // Spawn policy cadence
	Probability float64       // Per-candidate acceptance
	Batch       int           // Candidates per spawn call
}

// Entity is one live transient.
type Entity struct {
	ID       uuid.UUID
	Kind     Kind
	Variant  Variant
	Edge     Edge
	Tail     int
	Origin   astro.Vec3
	Position astro.Vec3
	Velocity astro.Vec3
	Steps    int
}

// Population is the active pool for one kind of entity.
type Population struct {
	spec   Spec
	rng    Rand
	active []*Entity

	spawned int
	expired int
}

// NewPopulation creates an empty pool.
func NewPopulation(spec Spec, rng Rand) *Population {
	return &Population{spec: spec, rng: rng}
}

// Spec returns the population parameters.
func (p *Population) Spec() Spec {
	return p.spec
}

// SetRate replaces the spawn gate parameters.
func (p *Population) SetRate(probability float64, batch int) {
	p.spec.Probability = probability
	p.spec.Batch = batch
}

// Spawn runs the spawn policy once: up to Batch candidates, each accepted
// independently with Probability. Nothing spawns while paused. It returns
// the number of entities added.
func (p *Population) Spawn(paused bool) int {
	if paused || len(p.spec.Edges) == 0 {
		return 0
	}
	accepted := 0
	for i := 0; i < p.spec.Batch; i++ {
		if p.rng.Float64() >= p.spec.Probability {
			continue
		}
		p.active = append(p.active, p.create())
		accepted++
	}
	p.spawned += accepted
	return accepted
}

func (p *Population) create() *Entity {
	edge := p.spec.Edges[p.rng.IntN(len(p.spec.Edges))]

	var variant Variant
	if n := len(p.spec.Variants); n > 0 {
		variant = p.spec.Variants[p.rng.IntN(n)]
	}

	pos := astro.Vec3{
		X: edge.X.Sample(p.rng),
		Y: edge.Y.Sample(p.rng),
		Z: edge.Z.Sample(p.rng),
	}
	vel := astro.Vec3{
		X: edge.VX.Sample(p.rng),
		Y: edge.VY.Sample(p.rng),
		Z: edge.VZ.Sample(p.rng),
	}

	return &Entity{
		ID:       uuid.New(),
		Kind:     p.spec.Kind,
		Variant:  variant,
		Edge:     edge.Edge,
		Tail:     int(p.spec.Tail.Sample(p.rng)),
		Origin:   pos,
		Position: pos,
		Velocity: vel,
	}
}

// Step integrates every entity by one frame and drops those that left
// the bounds or went non-finite. Survivors keep their relative order.
// It returns the number of entities removed.
func (p *Population) Step() int {
	kept := make([]*Entity, 0, len(p.active))
	for _, e := range p.active {
		if !e.Velocity.IsFinite() {
			continue
		}
		e.Position = e.Position.Add(e.Velocity)
		e.Steps++
		if !p.spec.Bounds.Contains(e.Position) {
			continue
		}
		kept = append(kept, e)
	}
	removed := len(p.active) - len(kept)
	p.expired += removed
	p.active = kept
	return removed
}

// Active returns the live entities. The slice is replaced on every Step.
func (p *Population) Active() []*Entity {
	return p.active
}

// Len returns the number of live entities.
func (p *Population) Len() int {
	return len(p.active)
}

// Stats returns lifetime spawn and expiry counts.
func (p *Population) Stats() (spawned, expired int) {
	return p.spawned, p.expired
}

// Clear drops every live entity.
func (p *Population) Clear() {
	p.expired += len(p.active)
	p.active = nil
}

package effects

import (
	"time"
)

// Shooting star defaults.
const (
	ShootingStarInterval    = 400 * time.Millisecond
	ShootingStarProbability = 0.8
	ShootingStarBatch       = 3
)

// Comet defaults.
const (
	CometInterval    = 2500 * time.Millisecond
	CometProbability = 0.35
	CometBatch       = 1
)

// DefaultShootingStars returns the shooting star population parameters.
// Stars enter from the top, left or right and streak down across the view.
func DefaultShootingStars() Spec {
	return Spec{
		Kind: KindShootingStar,
		Edges: []EdgeSpec{
			{
				Edge: EdgeTop,
				X:    Range{-100, 100},
				Y:    Range{80, 100},
				Z:    Range{-100, 100},
				VX:   Range{2.2, 3.7},
				VY:   Range{-4.2, -3.2},
				VZ:   Range{1.2, 2.2},
			},
			{
				Edge: EdgeLeft,
				X:    Range{-140, -120},
				Y:    Range{0, 80},
				Z:    Range{-100, 100},
				VX:   Range{3.2, 4.7},
				VY:   Range{-3.2, -2.2},
				VZ:   Range{1.2, 2.2},
			},
			{
				Edge: EdgeRight,
				X:    Range{120, 140},
				Y:    Range{0, 80},
				Z:    Range{-100, 100},
				VX:   Range{-4.7, -3.2},
				VY:   Range{-3.2, -2.2},
				VZ:   Range{1.2, 2.2},
			},
		},
		Variants: []Variant{
			{Name: "pink", Color: "#ff99cc", Size: 0.6},
			{Name: "blue", Color: "#99ccff", Size: 0.6},
			{Name: "yellow", Color: "#ffff99", Size: 0.6},
			{Name: "green", Color: "#99ff99", Size: 0.6},
			{Name: "orange", Color: "#ffcc99", Size: 0.6},
			{Name: "violet", Color: "#cc99ff", Size: 0.6},
		},
		Tail:        Range{8, 16},
		Bounds:      Bounds{MinX: -150, MaxX: 150, MinY: -80, MaxY: 120},
		Interval:    ShootingStarInterval,
		Probability: ShootingStarProbability,
		Batch:       ShootingStarBatch,
	}
}

// DefaultComets returns the comet population parameters. Comets are
// rarer, faster and carry longer tails.
func DefaultComets() Spec {
	return Spec{
		Kind: KindComet,
		Edges: []EdgeSpec{
			{
				Edge: EdgeTop,
				X:    Range{-150, 150},
				Y:    Range{110, 140},
				Z:    Range{-100, 100},
				VX:   Range{3.5, 5.5},
				VY:   Range{-5.5, -4},
				VZ:   Range{0.5, 1.5},
			},
			{
				Edge: EdgeLeft,
				X:    Range{-240, -200},
				Y:    Range{20, 120},
				Z:    Range{-100, 100},
				VX:   Range{5, 7},
				VY:   Range{-3.5, -2},
				VZ:   Range{0.5, 1.5},
			},
		},
		Variants: []Variant{
			{Name: "ice", Color: "#ccf2ff", Size: 1.2},
			{Name: "dust", Color: "#ffe0b3", Size: 1.2},
			{Name: "ion", Color: "#99b3ff", Size: 1.2},
		},
		Tail:        Range{16, 30},
		Bounds:      Bounds{MinX: -260, MaxX: 260, MinY: -160, MaxY: 200},
		Interval:    CometInterval,
		Probability: CometProbability,
		Batch:       CometBatch,
	}
}

// Manager owns both transient populations.
type Manager struct {
	Stars  *Population
	Comets *Population
}

// NewManager creates a manager with the given population parameters
// sharing one random source.
func NewManager(stars, comets Spec, rng Rand) *Manager {
	return &Manager{
		Stars:  NewPopulation(stars, rng),
		Comets: NewPopulation(comets, rng),
	}
}

// NewDefaultManager creates a manager with the built-in populations.
func NewDefaultManager(rng Rand) *Manager {
	return NewManager(DefaultShootingStars(), DefaultComets(), rng)
}

// Population returns the pool for a kind, or nil.
func (m *Manager) Population(k Kind) *Population {
	switch k {
	case KindShootingStar:
		return m.Stars
	case KindComet:
		return m.Comets
	default:
		return nil
	}
}

// Spawn runs one kind's spawn policy.
func (m *Manager) Spawn(k Kind, paused bool) int {
	p := m.Population(k)
	if p == nil {
		return 0
	}
	return p.Spawn(paused)
}

// Step advances both populations by one frame and returns the number of
// entities removed.
func (m *Manager) Step() int {
	return m.Stars.Step() + m.Comets.Step()
}

// All returns every live entity, shooting stars first.
func (m *Manager) All() []*Entity {
	out := make([]*Entity, 0, m.Len())
	out = append(out, m.Stars.Active()...)
	return append(out, m.Comets.Active()...)
}

// Len returns the number of live entities.
func (m *Manager) Len() int {
	return m.Stars.Len() + m.Comets.Len()
}

// Clear drops every live entity.
func (m *Manager) Clear() {
	m.Stars.Clear()
	m.Comets.Clear()
}

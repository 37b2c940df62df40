// Package scene holds the mutable state of one running orrery.
package scene

import (
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/effects"
	"github.com/litescript/ls-orrery/internal/kinematics"
	"github.com/litescript/ls-orrery/internal/picking"
)

// State is everything a frame reads or writes. It is touched only from
// the UI event loop.
type State struct {
	Registry   *body.Registry
	Effects    *effects.Manager
	Tooltip    *picking.Tooltip
	Kinematics kinematics.Params

	Paused    bool
	Timestamp float64 // last simulated frame, ms since start
	Frames    uint64  // ticks processed, paused or not
}

// New assembles a scene and places every body at timestamp zero.
func New(r *body.Registry, fx *effects.Manager, tip *picking.Tooltip, p kinematics.Params) *State {
	s := &State{
		Registry:   r,
		Effects:    fx,
		Tooltip:    tip,
		Kinematics: p,
	}
	s.Advance(0)
	return s
}

// Advance moves every body to the given timestamp.
func (s *State) Advance(timestamp float64) {
	s.Timestamp = timestamp
	kinematics.Advance(s.Registry, timestamp, s.Kinematics)
}

// StepEffects integrates transients by one frame.
func (s *State) StepEffects() int {
	if s.Effects == nil {
		return 0
	}
	return s.Effects.Step()
}

// Spawn runs one population's spawn policy, gated by the pause flag.
func (s *State) Spawn(k effects.Kind) int {
	if s.Effects == nil {
		return 0
	}
	return s.Effects.Spawn(k, s.Paused)
}

// Pickable returns the bodies eligible for picking.
func (s *State) Pickable() []*body.Body {
	if s.Registry == nil {
		return nil
	}
	return s.Registry.Pickable()
}

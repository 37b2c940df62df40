package body

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// DefaultSelfRotation is the spin applied to every body per nominal frame.
// All bodies share it; spin is decoupled from orbital period.
const DefaultSelfRotation = 0.005

// Satellite is a decorative object orbiting a parent body (the shuttle).
type Satellite struct {
	Name         string
	Parent       *Body
	Radius       float64 // Orbit radius around the parent
	AngularSpeed float64 // Radians per scaled time unit
	Height       float64 // Vertical offset above the parent's orbit plane
	Tilt         float64 // Yaw correction applied after facing the parent

	// Updated every frame.
	Position astro.Vec3
	Yaw      float64
	Pitch    float64
}

// Ring is flat annulus geometry in the XZ plane. With a nil Parent it is
// centered on the star and serves as an orbit guide; otherwise it follows
// the parent's position.
type Ring struct {
	Parent *Body
	Inner  float64
	Outer  float64
	Color  string
}

// Guide reports whether the ring is an orbit guide.
func (r Ring) Guide() bool {
	return r.Parent == nil
}

// Center returns the ring's current world center.
func (r Ring) Center(star *Body) astro.Vec3 {
	if r.Parent != nil {
		return r.Parent.Position()
	}
	if star != nil {
		return star.Position()
	}
	return astro.Origin
}

// Registry owns every body and attachment in the scene.
type Registry struct {
	star       *Body
	planets    []*Body
	byName     map[string]*Body
	satellites []*Satellite
	rings      []Ring
}

var (
	ErrNoStar        = errors.New("catalog has no star")
	ErrMultipleStars = errors.New("catalog has more than one star")
)

// New builds a registry from catalog definitions. Exactly one star is
// required; it is pinned to the origin.
func New(defs []Def, selfRotation float64) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Body, len(defs))}

	for _, d := range defs {
		if d.Name == "" {
			return nil, errors.New("body with empty name")
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate body %q", d.Name)
		}
		if d.OrbitRadius < 0 || math.IsNaN(d.OrbitRadius) {
			return nil, fmt.Errorf("body %q: invalid orbit radius %v", d.Name, d.OrbitRadius)
		}

		info, _ := InfoFor(d.Name)
		b := &Body{
			Name:              d.Name,
			Kind:              d.Kind,
			Size:              d.Size,
			SelfRotationSpeed: selfRotation,
			Color:             d.Color,
			Info:              info,
		}

		switch d.Kind {
		case KindStar:
			if r.star != nil {
				return nil, ErrMultipleStars
			}
			r.star = b
		case KindPlanet:
			b.Orbit = Orbit{Radius: d.OrbitRadius, AngularSpeed: d.OrbitalSpeed}
			b.Transform.Position = astro.Vec3{X: d.OrbitRadius}
			r.planets = append(r.planets, b)
		default:
			return nil, fmt.Errorf("body %q: unknown kind %d", d.Name, d.Kind)
		}
		r.byName[d.Name] = b
	}

	if r.star == nil {
		return nil, ErrNoStar
	}

	for _, p := range r.planets {
		r.rings = append(r.rings, Ring{Inner: p.Orbit.Radius - 0.1, Outer: p.Orbit.Radius, Color: "255"})
	}
	return r, nil
}

// Default returns the registry for the built-in solar system, with
// Saturn's ring and the shuttle orbiting Earth.
func Default() *Registry {
	r, err := SolarSystem(DefaultSelfRotation)
	if err != nil {
		panic(err)
	}
	return r
}

// SolarSystem builds the built-in catalog with its attachments, spinning
// every body selfRotation radians per nominal frame.
func SolarSystem(selfRotation float64) (*Registry, error) {
	r, err := New(Catalog, selfRotation)
	if err != nil {
		return nil, err
	}
	if saturn, ok := r.Lookup("Saturn"); ok {
		r.AttachRing(Ring{Parent: saturn, Inner: 13, Outer: 15, Color: "180"})
	}
	if earth, ok := r.Lookup("Earth"); ok {
		r.AttachSatellite(&Satellite{
			Name:         "Shuttle",
			Parent:       earth,
			Radius:       8,
			AngularSpeed: 4,
			Height:       2,
			Tilt:         math.Pi / 2,
		})
	}
	return r, nil
}

// Star returns the system's star.
func (r *Registry) Star() *Body {
	return r.star
}

// Planets returns the planets in catalog order.
func (r *Registry) Planets() []*Body {
	return r.planets
}

// Bodies returns the star followed by every planet.
func (r *Registry) Bodies() []*Body {
	out := make([]*Body, 0, len(r.planets)+1)
	out = append(out, r.star)
	return append(out, r.planets...)
}

// Pickable returns the bodies eligible for pointer picking. Rings,
// satellites and transients are never pickable.
func (r *Registry) Pickable() []*Body {
	return r.Bodies()
}

// Lookup finds a body by name.
func (r *Registry) Lookup(name string) (*Body, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// AttachRing adds ring geometry to the scene.
func (r *Registry) AttachRing(ring Ring) {
	r.rings = append(r.rings, ring)
}

// Rings returns guide rings and attached rings.
func (r *Registry) Rings() []Ring {
	return r.rings
}

// AttachSatellite adds a decorative orbiter.
func (r *Registry) AttachSatellite(s *Satellite) {
	r.satellites = append(r.satellites, s)
}

// Satellites returns the decorative orbiters.
func (r *Registry) Satellites() []*Satellite {
	return r.satellites
}

// Package body holds the catalog of celestial bodies and their kinematic state.
package body

import (
	"fmt"

	"github.com/litescript/ls-orrery/internal/astro"
)

// Kind tags a body as the star or a planet.
type Kind int

const (
	KindStar Kind = iota
	KindPlanet
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStar:
		return "Star"
	case KindPlanet:
		return "Planet"
	default:
		return "Unknown"
	}
}

// Orbit holds circular orbit parameters. The zero value means "does not orbit".
type Orbit struct {
	Radius       float64 // Distance from the star in scene units
	AngularSpeed float64 // Radians per scaled time unit; sign gives direction
}

// Transform is the per-frame mutable state of a body.
type Transform struct {
	Position  astro.Vec3
	RotationY float64
}

// Body is a star or planet in the scene.
type Body struct {
	Name  string
	Kind  Kind
	Size  float64 // Visual radius in scene units
	Orbit Orbit

	// SelfRotationSpeed is the spin per nominal frame, in radians.
	SelfRotationSpeed float64

	Color string // lipgloss color for rendering
	Info  Info

	Transform Transform
}

// IsStar reports whether the body is the system's star.
func (b *Body) IsStar() bool {
	return b.Kind == KindStar
}

// Distance returns the orbit radius shown to the user.
func (b *Body) Distance() float64 {
	return b.Orbit.Radius
}

// Position returns the current position.
func (b *Body) Position() astro.Vec3 {
	return b.Transform.Position
}

// Summary returns the tooltip lines for the body: the common header
// followed by any body-specific facts.
func (b *Body) Summary() []string {
	lines := []string{
		b.Name,
		"Type: " + b.Kind.String(),
		"Size: " + formatNumber(b.Size),
		"Distance: " + formatNumber(b.Distance()),
	}
	return append(lines, b.Info.Lines()...)
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// Def describes a catalog entry before it becomes a live Body.
type Def struct {
	Name         string
	Kind         Kind
	Size         float64
	OrbitRadius  float64
	OrbitalSpeed float64
	Color        string
}

// Catalog is the default solar system.
var Catalog = []Def{
	{Name: "Sun", Kind: KindStar, Size: 20, Color: "220"},
	{Name: "Mercury", Kind: KindPlanet, Size: 2, OrbitRadius: 50, OrbitalSpeed: 2, Color: "248"},
	{Name: "Venus", Kind: KindPlanet, Size: 3, OrbitRadius: 60, OrbitalSpeed: 1.5, Color: "223"},
	{Name: "Earth", Kind: KindPlanet, Size: 4, OrbitRadius: 70, OrbitalSpeed: 1, Color: "39"},
	{Name: "Mars", Kind: KindPlanet, Size: 3.5, OrbitRadius: 80, OrbitalSpeed: 0.8, Color: "166"},
	{Name: "Jupiter", Kind: KindPlanet, Size: 10, OrbitRadius: 100, OrbitalSpeed: 0.7, Color: "180"},
	{Name: "Saturn", Kind: KindPlanet, Size: 8, OrbitRadius: 120, OrbitalSpeed: 0.6, Color: "222"},
	{Name: "Uranus", Kind: KindPlanet, Size: 6, OrbitRadius: 140, OrbitalSpeed: 0.5, Color: "123"},
	{Name: "Neptune", Kind: KindPlanet, Size: 5, OrbitRadius: 160, OrbitalSpeed: 0.4, Color: "69"},
}

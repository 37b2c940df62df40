// Package kinematics advances orbital and spin state as a pure function of time.
package kinematics

import (
	"math"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
)

// Params scales timestamps into orbital angles and spin.
type Params struct {
	// OrbitSpeedScale converts timestamp milliseconds into scaled time units.
	OrbitSpeedScale float64

	// NominalFrameMs is the frame length the per-frame spin is tuned for.
	NominalFrameMs float64
}

// DefaultParams returns the scale used by the scene: 1/1000 of a
// millisecond timestamp, spin tuned for a 60Hz display.
func DefaultParams() Params {
	return Params{
		OrbitSpeedScale: 0.001,
		NominalFrameMs:  1000.0 / 60.0,
	}
}

// NewParams builds parameters from an orbit scale and the nominal frame
// length.
func NewParams(orbitSpeedScale float64, nominalFrame time.Duration) Params {
	return Params{
		OrbitSpeedScale: orbitSpeedScale,
		NominalFrameMs:  float64(nominalFrame) / float64(time.Millisecond),
	}
}

// Angle returns the orbital angle at a timestamp.
func (p Params) Angle(timestamp, angularSpeed float64) float64 {
	return timestamp * p.OrbitSpeedScale * angularSpeed
}

// Spin returns the accumulated self-rotation at a timestamp for a body
// spinning perSpin radians every nominal frame.
func (p Params) Spin(timestamp, perSpin float64) float64 {
	if p.NominalFrameMs <= 0 {
		return 0
	}
	return timestamp / p.NominalFrameMs * perSpin
}

// OrbitPosition returns the point on a circular orbit around center.
func OrbitPosition(center astro.Vec3, radius, angle float64) astro.Vec3 {
	return astro.Vec3{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y,
		Z: center.Z + radius*math.Sin(angle),
	}
}

// Advance writes each body's transform for the given timestamp. It reads
// nothing but the timestamp and static parameters, so repeated calls with
// the same timestamp produce identical transforms.
func Advance(r *body.Registry, timestamp float64, p Params) {
	star := r.Star()
	star.Transform.Position = astro.Origin
	star.Transform.RotationY = p.Spin(timestamp, star.SelfRotationSpeed)

	center := star.Position()
	for _, planet := range r.Planets() {
		angle := p.Angle(timestamp, planet.Orbit.AngularSpeed)
		planet.Transform.Position = OrbitPosition(center, planet.Orbit.Radius, angle)
		planet.Transform.RotationY = p.Spin(timestamp, planet.SelfRotationSpeed)
	}

	for _, s := range r.Satellites() {
		AdvanceSatellite(s, timestamp, p)
	}
}

// AdvanceSatellite moves a satellite around its parent and turns it to
// face along its direction of travel: look at the parent, then apply the
// fixed tilt correction.
func AdvanceSatellite(s *body.Satellite, timestamp float64, p Params) {
	if s.Parent == nil {
		return
	}
	parent := s.Parent.Position()
	angle := p.Angle(timestamp, s.AngularSpeed)

	pos := OrbitPosition(parent, s.Radius, angle)
	pos.Y += s.Height
	s.Position = pos

	yaw, pitch := LookAt(pos, parent)
	s.Yaw = yaw + s.Tilt
	s.Pitch = pitch
}

// LookAt returns the yaw (about +Y, zero facing +Z) and pitch that point
// from one position toward another.
func LookAt(from, to astro.Vec3) (yaw, pitch float64) {
	d := to.Sub(from)
	yaw = math.Atan2(d.X, d.Z)
	pitch = math.Atan2(d.Y, math.Hypot(d.X, d.Z))
	return yaw, pitch
}

// Heading returns the horizontal unit direction for a yaw.
func Heading(yaw float64) astro.Vec3 {
	return astro.Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

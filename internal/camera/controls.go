package camera

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// Controls is a user camera controller updated once per frame.
type Controls interface {
	// Update applies pending input and reports whether the camera moved.
	Update() bool
}

// Orbit control defaults.
const (
	DefaultMinDistance = 12.0
	DefaultMaxDistance = 1000.0
	DefaultDamping     = 0.25
)

// minPolar keeps the camera off the poles, where the up vector degenerates.
const minPolar = 1e-6

// OrbitControls orbits a camera around its target with damped rotation
// and clamped zoom.
type OrbitControls struct {
	cam *Camera

	MinDistance float64
	MaxDistance float64
	Damping     float64 // fraction of pending rotation applied per update

	dTheta float64 // pending azimuth
	dPhi   float64 // pending polar
	scale  float64 // pending zoom factor
}

// NewOrbitControls attaches controls to a camera.
func NewOrbitControls(cam *Camera, minDist, maxDist, damping float64) *OrbitControls {
	if damping <= 0 || damping > 1 {
		damping = 1
	}
	return &OrbitControls{
		cam:         cam,
		MinDistance: minDist,
		MaxDistance: maxDist,
		Damping:     damping,
		scale:       1,
	}
}

// Camera returns the controlled camera.
func (o *OrbitControls) Camera() *Camera {
	return o.cam
}

// SetTarget moves the orbit center.
func (o *OrbitControls) SetTarget(t astro.Vec3) {
	o.cam.Target = t
}

// SetPosition moves the camera.
func (o *OrbitControls) SetPosition(p astro.Vec3) {
	o.cam.Position = p
}

// Rotate queues an orbit by the given azimuth and polar deltas in radians.
func (o *OrbitControls) Rotate(azimuth, polar float64) {
	o.dTheta += azimuth
	o.dPhi += polar
}

// Zoom queues a dolly. Factors below 1 move the camera closer.
func (o *OrbitControls) Zoom(factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	o.scale *= factor
}

// Stop discards pending input.
func (o *OrbitControls) Stop() {
	o.dTheta, o.dPhi, o.scale = 0, 0, 1
}

// Update applies a damped share of the pending rotation, the pending zoom
// and the distance limits.
func (o *OrbitControls) Update() bool {
	offset := o.cam.Position.Sub(o.cam.Target)
	radius := offset.Norm()
	if radius == 0 || !offset.IsFinite() {
		o.Stop()
		return false
	}
	if o.dTheta == 0 && o.dPhi == 0 && o.scale == 1 &&
		radius >= o.MinDistance && radius <= o.MaxDistance {
		return false
	}

	theta := math.Atan2(offset.X, offset.Z)
	phi := math.Acos(clamp(offset.Y/radius, -1, 1))

	theta += o.dTheta * o.Damping
	phi = clamp(phi+o.dPhi*o.Damping, minPolar, math.Pi-minPolar)
	radius = clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	o.dTheta *= 1 - o.Damping
	o.dPhi *= 1 - o.Damping
	if math.Abs(o.dTheta) < 1e-6 {
		o.dTheta = 0
	}
	if math.Abs(o.dPhi) < 1e-6 {
		o.dPhi = 0
	}
	o.scale = 1

	next := o.cam.Target.Add(astro.Vec3{
		X: radius * math.Sin(phi) * math.Sin(theta),
		Y: radius * math.Cos(phi),
		Z: radius * math.Sin(phi) * math.Cos(theta),
	})
	moved := next.Distance(o.cam.Position) > 1e-9
	o.cam.Position = next
	return moved
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return v
	}
	return math.Max(lo, math.Min(hi, v))
}

// Package camera provides the perspective camera, viewport mapping and
// damped orbit controls.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/astro"
)

// Defaults for the scene camera.
const (
	DefaultFovY          = 85.0
	DefaultNear          = 0.1
	DefaultFar           = 1000.0
	DefaultStartDistance = 100.0
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position astro.Vec3
	Target   astro.Vec3
	Up       astro.Vec3
	FovY     float64 // degrees
	Aspect   float64
	Near     float64
	Far      float64
}

// New returns a camera at (0, 0, distance) looking at the origin.
func New(fovY, near, far, distance float64) *Camera {
	return &Camera{
		Position: astro.Vec3{Z: distance},
		Up:       astro.Vec3{Y: 1},
		FovY:     fovY,
		Aspect:   1,
		Near:     near,
		Far:      far,
	}
}

// Default returns the scene's starting camera.
func Default() *Camera {
	return New(DefaultFovY, DefaultNear, DefaultFar, DefaultStartDistance)
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position.MGL(), c.Target.MGL(), c.Up.MGL())
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 || math.IsNaN(aspect) {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Ray is a half-line from Origin along the unit vector Dir.
type Ray struct {
	Origin astro.Vec3
	Dir    astro.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float64) astro.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// RayFromNDC casts a ray through normalized device coordinates in
// [-1, 1]. It reports false for coordinates outside the view or when the
// camera is degenerate.
func (c *Camera) RayFromNDC(x, y float64) (Ray, bool) {
	if math.IsNaN(x) || math.IsNaN(y) || x < -1 || x > 1 || y < -1 || y > 1 {
		return Ray{}, false
	}

	inv := c.ViewProjection().Inv()
	near, ok := unproject(inv, x, y, -1)
	if !ok {
		return Ray{}, false
	}
	far, ok := unproject(inv, x, y, 1)
	if !ok {
		return Ray{}, false
	}

	dir := far.Sub(near)
	if n := dir.Norm(); n == 0 || !dir.IsFinite() {
		return Ray{}, false
	}
	ray := Ray{Origin: c.Position, Dir: dir.Normalized()}
	if !ray.Origin.IsFinite() || !ray.Dir.IsFinite() {
		return Ray{}, false
	}
	return ray, true
}

func unproject(inv mgl64.Mat4, x, y, z float64) (astro.Vec3, bool) {
	v := inv.Mul4x1(mgl64.Vec4{x, y, z, 1})
	if v[3] == 0 || math.IsNaN(v[3]) {
		return astro.Vec3{}, false
	}
	p := astro.FromMGL(v.Vec3().Mul(1 / v[3]))
	return p, p.IsFinite()
}

// Projected is a world point mapped into normalized device coordinates.
type Projected struct {
	X, Y  float64 // NDC
	Depth float64 // distance from the camera
}

// Project maps a world point to NDC. It reports false for points behind
// the camera or beyond the clip planes.
func (c *Camera) Project(p astro.Vec3) (Projected, bool) {
	clip := c.ViewProjection().Mul4x1(p.MGL().Vec4(1))
	w := clip[3]
	if w <= 0 || math.IsNaN(w) {
		return Projected{}, false
	}
	z := clip[2] / w
	if z < -1 || z > 1 {
		return Projected{}, false
	}
	return Projected{
		X:     clip[0] / w,
		Y:     clip[1] / w,
		Depth: p.Distance(c.Position),
	}, true
}

// PixelScale returns how many NDC units a world length spans at the
// given distance, vertically.
func (c *Camera) PixelScale(distance float64) float64 {
	if distance <= 0 {
		return 0
	}
	return 1 / (distance * math.Tan(mgl64.DegToRad(c.FovY)/2))
}

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float64 {
	return c.Position.Distance(c.Target)
}

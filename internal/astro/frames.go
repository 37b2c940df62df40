// Package astro provides the vector math and sky catalog shared by the scene.
package astro

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 represents a 3D point or direction in scene units.
// Y is up; planets orbit in the XZ plane.
type Vec3 struct {
	X, Y, Z float64
}

// Origin is the scene origin, where the star sits.
var Origin = Vec3{}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the cross product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Distance returns the distance between two points.
func (v Vec3) Distance(u Vec3) float64 {
	return v.Sub(u).Norm()
}

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// MGL converts to a mathgl vector for matrix work.
func (v Vec3) MGL() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// FromMGL converts a mathgl vector back to a Vec3.
func FromMGL(m mgl64.Vec3) Vec3 {
	return Vec3{X: m[0], Y: m[1], Z: m[2]}
}

// Lerp linearly interpolates between a and b. t is not clamped.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: lerp(a.X, b.X, t),
		Y: lerp(a.Y, b.Y, t),
		Z: lerp(a.Z, b.Z, t),
	}
}

// Clamp01 clamps t into [0, 1].
func Clamp01(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

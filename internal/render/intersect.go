package render

import (
	"math"
	"sort"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/picking"
)

// Intersect tests the ray against each body's sphere and returns hits
// nearest first. Bodies at equal distance keep their input order.
func (t *Terminal) Intersect(ray camera.Ray, bodies []*body.Body) []picking.Hit {
	return Intersect(ray, bodies)
}

// Intersect is the sphere intersector used by Terminal.
func Intersect(ray camera.Ray, bodies []*body.Body) []picking.Hit {
	if !ray.Origin.IsFinite() || !ray.Dir.IsFinite() || ray.Dir.Norm() == 0 {
		return nil
	}
	dir := ray.Dir.Normalized()

	var hits []picking.Hit
	for _, b := range bodies {
		if b == nil {
			continue
		}
		d, ok := raySphere(ray.Origin.Sub(b.Position()), dir, b.Size)
		if !ok {
			continue
		}
		hits = append(hits, picking.Hit{
			Body:     b,
			Distance: d,
			Point:    ray.Origin.Add(dir.Scale(d)),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// raySphere returns the nearest non-negative distance along the unit
// direction dir at which a ray starting at oc (relative to the sphere
// center) meets a sphere of radius r.
func raySphere(oc, dir astro.Vec3, r float64) (float64, bool) {
	if r <= 0 {
		return 0, false
	}
	b := oc.Dot(dir)
	c := oc.Dot(oc) - r*r
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		// Origin inside the sphere.
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

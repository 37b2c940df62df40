// Package picking resolves the body under the pointer and drives the
// tooltip state machine.
package picking

import (
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/camera"
)

// Hit is one ray intersection.
type Hit struct {
	Body     *body.Body
	Distance float64 // along the ray
	Point    astro.Vec3
}

// Intersector tests a ray against a set of bodies and returns the hits
// nearest first.
type Intersector interface {
	Intersect(ray camera.Ray, bodies []*body.Body) []Hit
}

// Picker turns pointer cells into picked bodies.
type Picker struct {
	Camera      *camera.Camera
	Viewport    camera.Viewport
	Intersector Intersector
}

// Pick returns the nearest pickable body under the cell. An empty body
// set, a pointer outside the viewport or a degenerate ray is no hit.
func (p *Picker) Pick(col, row int, bodies []*body.Body) (*body.Body, bool) {
	if len(bodies) == 0 || p.Camera == nil || p.Intersector == nil {
		return nil, false
	}
	x, y, ok := p.Viewport.ToNDC(col, row)
	if !ok {
		return nil, false
	}
	ray, ok := p.Camera.RayFromNDC(x, y)
	if !ok {
		return nil, false
	}
	hits := p.Intersector.Intersect(ray, bodies)
	if len(hits) == 0 || hits[0].Body == nil {
		return nil, false
	}
	return hits[0].Body, true
}

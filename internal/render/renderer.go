package render

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/effects"
	"github.com/litescript/ls-orrery/internal/kinematics"
	"github.com/litescript/ls-orrery/internal/scene"
)

// SkyboxRadius is the distance of the background star shell from the camera.
const SkyboxRadius = 500.0

// Palette colours not carried by the scene.
const (
	colorRing      = "240"
	colorSkyBright = "250"
	colorSky       = "238"
	colorShuttle   = "255"
	colorMeridian  = "236"
	colorHighlight = "229"
)

// Options toggle optional layers.
type Options struct {
	Skybox bool
	Guides bool
}

// DefaultOptions draws every layer.
func DefaultOptions() Options {
	return Options{Skybox: true, Guides: true}
}

// Overlay paints screen-space elements over a finished scene.
type Overlay interface {
	Paint(c *Canvas)
}

// Terminal renders scenes into a character canvas. It implements the
// frame renderer and the picking intersector.
type Terminal struct {
	opts   Options
	vp     camera.Viewport
	canvas *Canvas
	stars  astro.StarCatalog
	frame  string

	// Highlight marks a body drawn in the highlight colour.
	Highlight *body.Body

	// Overlays are painted last, in order.
	Overlays []Overlay
}

// NewTerminal creates a renderer with an empty viewport.
func NewTerminal(opts Options) *Terminal {
	return &Terminal{
		opts:   opts,
		canvas: NewCanvas(0, 0),
		stars:  astro.DefaultStarCatalog(),
	}
}

// SetSize resizes the canvas.
func (t *Terminal) SetSize(w, h int) {
	t.vp = camera.Viewport{Width: w, Height: h}
	t.canvas.Resize(w, h)
}

// Viewport returns the current canvas area.
func (t *Terminal) Viewport() camera.Viewport {
	return t.vp
}

// Canvas exposes the last painted canvas.
func (t *Terminal) Canvas() *Canvas {
	return t.canvas
}

// Frame returns the last rendered frame.
func (t *Terminal) Frame() string {
	return t.frame
}

// Render paints the scene: skybox, orbit guides, attached rings, bodies,
// satellites and transients.
func (t *Terminal) Render(s *scene.State, cam *camera.Camera) {
	t.canvas.Clear()
	if !t.vp.Valid() || s == nil || cam == nil {
		t.frame = ""
		return
	}

	if t.opts.Skybox {
		t.drawSkybox(cam)
	}
	if s.Registry != nil {
		star := s.Registry.Star()
		for _, ring := range s.Registry.Rings() {
			if ring.Guide() && !t.opts.Guides {
				continue
			}
			t.drawRing(cam, ring, star)
		}
		for _, b := range s.Registry.Bodies() {
			t.drawBody(cam, b)
		}
		for _, sat := range s.Registry.Satellites() {
			t.drawSatellite(cam, sat)
		}
	}
	if s.Effects != nil {
		for _, e := range s.Effects.All() {
			t.drawTransient(cam, e)
		}
	}
	for _, o := range t.Overlays {
		o.Paint(t.canvas)
	}

	t.frame = t.canvas.String()
}

// project maps a world point to a cell.
func (t *Terminal) project(cam *camera.Camera, p astro.Vec3) (col, row int, depth float64, ok bool) {
	pr, ok := cam.Project(p)
	if !ok {
		return 0, 0, 0, false
	}
	col, row = t.vp.ToCell(pr.X, pr.Y)
	return col, row, pr.Depth, true
}

func (t *Terminal) drawSkybox(cam *camera.Camera) {
	for _, star := range t.stars.Stars {
		col, row, _, ok := t.project(cam, star.SkyboxPosition(cam.Position, SkyboxRadius))
		if !ok {
			continue
		}
		ch, color := skyGlyph(star.Mag)
		t.canvas.Background(col, row, ch, color)
	}
}

func skyGlyph(mag float64) (rune, string) {
	switch {
	case mag <= 1.0:
		return '∗', colorSkyBright
	case mag <= 2.5:
		return '·', colorSky
	default:
		return '˙', colorSky
	}
}

// ringSteps bounds how finely a circle is sampled.
const (
	minRingSteps = 48
	maxRingSteps = 720
)

func (t *Terminal) drawRing(cam *camera.Camera, ring body.Ring, star *body.Body) {
	center := ring.Center(star)
	radii := []float64{ring.Outer}
	if !ring.Guide() {
		// Fill the band with a few concentric samples.
		for r := ring.Inner; r < ring.Outer; r += 0.75 {
			radii = append(radii, r)
		}
	}

	color, glyph := colorRing, '·'
	if !ring.Guide() {
		glyph = '░'
		if ring.Color != "" {
			color = ring.Color
		}
	}

	for _, r := range radii {
		steps := int(2 * math.Pi * r * 1.5)
		steps = max(minRingSteps, min(maxRingSteps, steps))
		for i := 0; i < steps; i++ {
			theta := 2 * math.Pi * float64(i) / float64(steps)
			p := kinematics.OrbitPosition(center, r, theta)
			col, row, depth, ok := t.project(cam, p)
			if !ok {
				continue
			}
			t.canvas.Plot(col, row, glyph, color, depth)
		}
	}
}

// discRadius returns the projected radius of a sphere in rows and columns.
func (t *Terminal) discRadius(cam *camera.Camera, radius, distance float64) (rx, ry float64) {
	ndc := radius * cam.PixelScale(distance)
	ry = ndc * t.vp.CellsPerUnitY()
	aspect := cam.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	rx = ndc / aspect * t.vp.CellsPerUnitX()
	return rx, ry
}

func (t *Terminal) drawBody(cam *camera.Camera, b *body.Body) {
	col, row, depth, ok := t.project(cam, b.Position())
	if !ok {
		return
	}

	color := b.Color
	if b == t.Highlight {
		color = colorHighlight
	}

	rx, ry := t.discRadius(cam, b.Size, depth)
	if rx < 1 || ry < 0.5 {
		glyph := '•'
		if b.IsStar() {
			glyph = '☉'
		}
		t.canvas.PlotBold(col, row, glyph, color, depth-b.Size)
		return
	}

	// Spin marker: a meridian that sweeps across the disc with RotationY.
	meridian := math.Sin(b.Transform.RotationY)
	facing := math.Cos(b.Transform.RotationY) > 0

	fill := '●'
	if b.IsStar() {
		fill = '▓'
	}

	cx := float64(col) + 0.5
	cy := float64(row) + 0.5
	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			d2 := dx*dx + dy*dy
			if d2 > 1 {
				continue
			}
			// Front surface depth for the z-test.
			z := depth - b.Size*math.Sqrt(1-d2)

			ch, c := fill, color
			if facing && rx >= 3 && math.Abs(dx-meridian*math.Sqrt(1-dy*dy)) < 1/rx {
				ch, c = '│', colorMeridian
			}
			t.canvas.Plot(x, y, ch, c, z)
		}
	}
}

var headingGlyphs = []rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// arrowFor picks the arrow closest to a screen-space direction (x right,
// y up).
func arrowFor(dx, dy float64) rune {
	if dx == 0 && dy == 0 {
		return '◦'
	}
	a := math.Atan2(dy, dx)
	if a < 0 {
		a += 2 * math.Pi
	}
	i := int(math.Round(a/(math.Pi/4))) % len(headingGlyphs)
	return headingGlyphs[i]
}

func (t *Terminal) drawSatellite(cam *camera.Camera, s *body.Satellite) {
	col, row, depth, ok := t.project(cam, s.Position)
	if !ok {
		return
	}
	ahead := s.Position.Add(kinematics.Heading(s.Yaw))
	a, ok1 := cam.Project(s.Position)
	b, ok2 := cam.Project(ahead)
	glyph := '◦'
	if ok1 && ok2 {
		dx := (b.X - a.X) * t.vp.CellsPerUnitX()
		dy := (b.Y - a.Y) * t.vp.CellsPerUnitY() * camera.CellAspect
		glyph = arrowFor(dx, dy)
	}
	t.canvas.PlotBold(col, row, glyph, colorShuttle, depth-1)
}

// tailSpacing is the world distance between tail samples.
const tailSpacing = 1.7

func (t *Terminal) drawTransient(cam *camera.Camera, e *effects.Entity) {
	back := e.Velocity.Scale(-1).Normalized()
	if back.IsFinite() && back.Norm() > 0 {
		for i := e.Tail; i >= 1; i-- {
			p := e.Position.Add(back.Scale(float64(i) * tailSpacing))
			col, row, depth, ok := t.project(cam, p)
			if !ok {
				continue
			}
			ch := '·'
			if i <= e.Tail/3 {
				ch = '∙'
			}
			t.canvas.Plot(col, row, ch, e.Variant.Color, depth)
		}
	}

	col, row, depth, ok := t.project(cam, e.Position)
	if !ok {
		return
	}
	head := '✦'
	if e.Kind == effects.KindComet {
		head = '✹'
	}
	t.canvas.PlotBold(col, row, head, e.Variant.Color, depth-e.Variant.Size)
}

package render

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/effects"
	"github.com/litescript/ls-orrery/internal/kinematics"
	"github.com/litescript/ls-orrery/internal/picking"
	"github.com/litescript/ls-orrery/internal/scene"
)

func TestCanvasDepthTest(t *testing.T) {
	c := NewCanvas(4, 2)

	assert.True(t, c.Plot(1, 1, 'a', "1", 10))
	assert.False(t, c.Plot(1, 1, 'b', "1", 20), "farther loses")
	assert.True(t, c.Plot(1, 1, 'c', "1", 5), "nearer wins")
	assert.False(t, c.Plot(4, 0, 'x', "1", 0), "off canvas")

	assert.False(t, c.Background(1, 1, '*', "2"))
	assert.True(t, c.Background(0, 0, '*', "2"))
	assert.True(t, c.Plot(0, 0, 'd', "3", 1e9), "anything covers the background")

	assert.Equal(t, "d   \n c  ", c.Plain())
	assert.Equal(t, 'c', c.At(1, 1))
	assert.Equal(t, "1", c.ColorAt(1, 1))
	assert.Equal(t, rune(0), c.At(-1, 0))
	assert.Contains(t, c.String(), "d")

	c.Clear()
	assert.Equal(t, "    \n    ", c.Plain())
}

func TestIntersectNearestFirst(t *testing.T) {
	r := body.Default()
	kinematics.Advance(r, 0, kinematics.DefaultParams())

	// Along the orbit plane's X axis every body is in line.
	ray := camera.Ray{Origin: astro.Vec3{X: 200}, Dir: astro.Vec3{X: -1}}
	hits := Intersect(ray, r.Pickable())

	require.Len(t, hits, 9)
	assert.Equal(t, "Neptune", hits[0].Body.Name)
	assert.InDelta(t, 35, hits[0].Distance, 1e-9)
	assert.Equal(t, "Sun", hits[len(hits)-1].Body.Name)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i].Distance, hits[i-1].Distance)
	}
}

func TestIntersectSingle(t *testing.T) {
	r := body.Default()
	kinematics.Advance(r, 0, kinematics.DefaultParams())

	hits := Intersect(camera.Ray{Origin: astro.Vec3{X: 70, Z: 100}, Dir: astro.Vec3{Z: -1}}, r.Pickable())
	require.Len(t, hits, 1)
	assert.Equal(t, "Earth", hits[0].Body.Name)
	assert.InDelta(t, 96, hits[0].Distance, 1e-9)
	assert.InDelta(t, 4, hits[0].Point.Z, 1e-9)
}

func TestIntersectNoHit(t *testing.T) {
	r := body.Default()
	kinematics.Advance(r, 0, kinematics.DefaultParams())

	tests := []struct {
		name   string
		ray    camera.Ray
		bodies []*body.Body
	}{
		{"empty set", camera.Ray{Origin: astro.Vec3{Z: 100}, Dir: astro.Vec3{Z: -1}}, nil},
		{"zero direction", camera.Ray{Origin: astro.Vec3{Z: 100}}, r.Pickable()},
		{"pointing away", camera.Ray{Origin: astro.Vec3{Z: 100}, Dir: astro.Vec3{Z: 1}}, r.Pickable()},
		{"above everything", camera.Ray{Origin: astro.Vec3{Y: 50, Z: 100}, Dir: astro.Vec3{Z: -1}}, r.Pickable()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Intersect(tt.ray, tt.bodies))
		})
	}
}

func TestIntersectFromInside(t *testing.T) {
	r := body.Default()
	hits := Intersect(camera.Ray{Dir: astro.Vec3{Y: 1}}, []*body.Body{r.Star()})
	require.Len(t, hits, 1)
	assert.InDelta(t, 20, hits[0].Distance, 1e-9)
}

func newScene(fx *effects.Manager) *scene.State {
	return scene.New(body.Default(), fx, nil, kinematics.DefaultParams())
}

func newTerminal(opts Options) (*Terminal, *camera.Camera) {
	term := NewTerminal(opts)
	term.SetSize(80, 24)
	cam := camera.Default()
	cam.Aspect = term.Viewport().Aspect()
	return term, cam
}

func TestRenderSunDisc(t *testing.T) {
	term, cam := newTerminal(DefaultOptions())
	s := newScene(nil)

	term.Render(s, cam)
	require.NotEmpty(t, term.Frame())

	c := term.Canvas()
	assert.Equal(t, '▓', c.At(38, 11))
	assert.Equal(t, "220", c.ColorAt(38, 11))
	assert.Equal(t, ' ', c.At(0, 0), "corners stay empty")

	// Orbit guides are edge-on from the start position.
	assert.Equal(t, '·', c.At(2, 12))
}

func TestRenderPlanetGlyph(t *testing.T) {
	term, cam := newTerminal(Options{})
	s := newScene(nil)

	term.Render(s, cam)
	assert.Equal(t, '•', term.Canvas().At(58, 12))
	assert.Equal(t, "39", term.Canvas().ColorAt(58, 12))

	earth, _ := s.Registry.Lookup("Earth")
	term.Highlight = earth
	term.Render(s, cam)
	assert.Equal(t, colorHighlight, term.Canvas().ColorAt(58, 12))
}

func TestRenderTransientWithTail(t *testing.T) {
	spec := effects.Spec{
		Kind: effects.KindShootingStar,
		Edges: []effects.EdgeSpec{{
			X:  effects.Range{Min: 0, Max: 0},
			Y:  effects.Range{Min: 30, Max: 30},
			VX: effects.Range{Min: 1, Max: 1},
			VY: effects.Range{Min: -1, Max: -1},
		}},
		Variants: []effects.Variant{{Name: "pink", Color: "#ff99cc", Size: 0.6}},
		Tail:     effects.Range{Min: 6, Max: 6},
		Bounds:   effects.Bounds{MinX: -150, MaxX: 150, MinY: -80, MaxY: 120},
		Batch:    1,
	}
	spec.Probability = 1
	fx := effects.NewManager(spec, effects.DefaultComets(), rand.New(rand.NewPCG(1, 1)))
	require.Equal(t, 1, fx.Spawn(effects.KindShootingStar, false))

	term, cam := newTerminal(Options{})
	term.Render(newScene(fx), cam)

	c := term.Canvas()
	assert.Equal(t, '✦', c.At(40, 8))
	assert.Equal(t, "#ff99cc", c.ColorAt(40, 8))

	tail := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 40; col++ {
			if ch := c.At(col, row); ch == '·' || ch == '∙' {
				tail++
			}
		}
	}
	assert.Greater(t, tail, 0, "tail trails up and to the left")
}

func TestRenderSatelliteArrow(t *testing.T) {
	term, cam := newTerminal(Options{})
	s := newScene(nil)
	term.Render(s, cam)

	found := false
	for _, ch := range term.Canvas().Plain() {
		if strings.ContainsRune("→↗↑↖←↙↓↘◦", ch) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestArrowFor(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   rune
	}{
		{1, 0, '→'},
		{1, 1, '↗'},
		{0, 1, '↑'},
		{-1, 0, '←'},
		{-1, -1, '↙'},
		{0, -2, '↓'},
		{3, -0.1, '→'},
		{0, 0, '◦'},
	}
	for _, tt := range tests {
		assert.Equal(t, string(tt.want), string(arrowFor(tt.dx, tt.dy)), "(%v,%v)", tt.dx, tt.dy)
	}
}

func TestRenderEmptyViewport(t *testing.T) {
	term := NewTerminal(DefaultOptions())
	term.Render(newScene(nil), camera.Default())
	assert.Empty(t, term.Frame())
}

func TestPickThroughTerminal(t *testing.T) {
	term, cam := newTerminal(DefaultOptions())
	s := newScene(nil)

	p := &picking.Picker{Camera: cam, Viewport: term.Viewport(), Intersector: term}
	got, ok := p.Pick(40, 12, s.Pickable())
	require.True(t, ok)
	assert.Equal(t, "Sun", got.Name)

	got, ok = p.Pick(58, 12, s.Pickable())
	require.True(t, ok)
	assert.Equal(t, "Earth", got.Name)

	_, ok = p.Pick(0, 0, s.Pickable())
	assert.False(t, ok)
}

func TestCanvasBox(t *testing.T) {
	c := NewCanvas(12, 5)
	c.Plot(3, 1, 'x', "1", 0)

	col, row := c.Box(1, 0, []string{"Mars", "Hi"}, lipgloss.RoundedBorder(), "2", "3")
	assert.Equal(t, 1, col)
	assert.Equal(t, 0, row)
	assert.Equal(t, ""+
		" ╭──────╮   \n"+
		" │ Mars │   \n"+
		" │ Hi   │   \n"+
		" ╰──────╯   \n"+
		"            ", c.Plain())
	assert.Equal(t, "3", c.ColorAt(3, 1))

	// Shifted to fit.
	c.Clear()
	col, row = c.Box(10, 4, []string{"Mars"}, lipgloss.NormalBorder(), "2", "3")
	assert.Equal(t, 4, col)
	assert.Equal(t, 2, row)
	assert.Equal(t, '┐', c.At(11, 2))
}

func TestTooltipAreaMatchesDrawnBox(t *testing.T) {
	earth, _ := body.Default().Lookup("Earth")
	c := NewCanvas(80, 24)
	tip := picking.NewTooltip(nil, picking.BoxSize)
	tip.SetBounds(80, 24)

	tip.Move(picking.Point{X: 70, Y: 20}, earth)
	a := tip.Anchor()
	col, row := c.Box(a.X, a.Y, strings.Split(picking.Text(earth), "\n"), lipgloss.RoundedBorder(), "2", "3")

	area := tip.Area()
	assert.Equal(t, col, area.X)
	assert.Equal(t, row, area.Y)
	assert.Equal(t, '╭', c.At(area.X, area.Y))
	assert.Equal(t, '╯', c.At(area.X+area.W-1, area.Y+area.H-1))
}

type boxOverlay struct{ text string }

func (o boxOverlay) Paint(c *Canvas) {
	c.Box(0, 0, []string{o.text}, lipgloss.RoundedBorder(), "2", "3")
}

func TestOverlaysPaintLast(t *testing.T) {
	term, cam := newTerminal(Options{})
	term.Overlays = []Overlay{boxOverlay{"Sun"}}

	term.Render(newScene(nil), cam)

	assert.Equal(t, '╭', term.Canvas().At(0, 0))
	assert.Equal(t, 'S', term.Canvas().At(2, 1))
	assert.Contains(t, term.Frame(), "Sun")
}

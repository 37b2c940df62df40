package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-orrery/internal/body"
)

type recordingDisplay struct {
	calls   []string
	text    string
	anchor  Point
	visible bool
	panel   string
}

func (d *recordingDisplay) ShowTooltip(text string, anchor Point) {
	d.calls = append(d.calls, "show")
	d.text, d.anchor, d.visible = text, anchor, true
}

func (d *recordingDisplay) HideTooltip() {
	d.calls = append(d.calls, "hide")
	d.visible = false
}

func (d *recordingDisplay) ShowDetailPanel(name string) {
	d.calls = append(d.calls, "panel:"+name)
	d.panel = name
}

func (d *recordingDisplay) HideDetailPanel() {
	d.calls = append(d.calls, "panel-hide")
	d.panel = ""
}

func TestTooltipEventSequence(t *testing.T) {
	r := body.Default()
	earth, _ := r.Lookup("Earth")
	d := &recordingDisplay{}
	tip := NewTooltip(d, nil)

	type event struct {
		click bool
		at    Point
		hit   *body.Body
	}
	events := []event{
		{false, Point{10, 5}, earth},
		{true, Point{10, 5}, earth},
		{false, Point{60, 20}, nil},
		{true, Point{60, 20}, nil},
	}
	want := []State{HoverVisible, Pinned, Pinned, Hidden}

	for i, ev := range events {
		if ev.click {
			tip.Click(ev.at, ev.hit)
		} else {
			tip.Move(ev.at, ev.hit)
		}
		assert.Equal(t, want[i], tip.State(), "after event %d", i)
	}

	assert.Equal(t, []string{"show", "show", "panel:Earth", "hide", "panel-hide"}, d.calls)
	assert.False(t, d.visible)
	assert.Empty(t, d.panel)
}

func TestTooltipHoverContent(t *testing.T) {
	r := body.Default()
	mars, _ := r.Lookup("Mars")
	d := &recordingDisplay{}
	tip := NewTooltip(d, nil)

	tip.Move(Point{X: 30, Y: 8}, mars)

	assert.Equal(t, HoverVisible, tip.State())
	assert.Same(t, mars, tip.Body())
	assert.Equal(t, Point{X: 32, Y: 9}, d.anchor)
	assert.Contains(t, d.text, "Mars\nType: Planet\nSize: 3.5\nDistance: 80")
}

func TestTooltipPinFreezesAnchor(t *testing.T) {
	r := body.Default()
	earth, _ := r.Lookup("Earth")
	venus, _ := r.Lookup("Venus")
	d := &recordingDisplay{}
	tip := NewTooltip(d, nil)

	tip.Move(Point{X: 10, Y: 5}, earth)
	tip.Click(Point{X: 11, Y: 5}, earth)
	assert.Equal(t, Point{X: 12, Y: 6}, tip.Anchor(), "anchor from the hover, not the click")

	// Hovering another body while pinned changes nothing.
	tip.Move(Point{X: 40, Y: 12}, venus)
	assert.Equal(t, Pinned, tip.State())
	assert.Same(t, earth, tip.Body())
	assert.Equal(t, Point{X: 12, Y: 6}, d.anchor)

	// Clicking another body re-pins there.
	tip.Click(Point{X: 40, Y: 12}, venus)
	assert.Equal(t, Pinned, tip.State())
	assert.Same(t, venus, tip.Body())
	assert.Equal(t, Point{X: 42, Y: 13}, tip.Anchor())
	assert.Equal(t, "Venus", d.panel)
}

func TestTooltipStaysWhilePointerOverIt(t *testing.T) {
	r := body.Default()
	sun := r.Star()
	tip := NewTooltip(&recordingDisplay{}, func(string) (int, int) { return 20, 6 })

	tip.Move(Point{X: 10, Y: 5}, sun)
	area := tip.Area()
	require.Equal(t, Rect{X: 12, Y: 6, W: 20, H: 6}, area)

	tip.Move(Point{X: 15, Y: 8}, nil)
	assert.Equal(t, HoverVisible, tip.State(), "pointer over the tooltip")

	tip.Move(Point{X: 32, Y: 8}, nil)
	assert.Equal(t, Hidden, tip.State(), "pointer just past the right edge")
}

func TestTooltipAreaFollowsEdgeShift(t *testing.T) {
	r := body.Default()
	earth, _ := r.Lookup("Earth")
	d := &recordingDisplay{}
	tip := NewTooltip(d, func(string) (int, int) { return 38, 12 })
	tip.SetBounds(80, 24)

	tip.Move(Point{X: 70, Y: 20}, earth)
	assert.Equal(t, Point{X: 72, Y: 21}, d.anchor)
	require.Equal(t, Rect{X: 42, Y: 12, W: 38, H: 12}, tip.Area())

	// Inside the shifted box, well away from the raw anchor.
	tip.Move(Point{X: 45, Y: 14}, nil)
	assert.Equal(t, HoverVisible, tip.State())

	tip.Click(Point{X: 70, Y: 20}, earth)
	assert.Equal(t, Pinned, tip.State())
	assert.Equal(t, Point{X: 72, Y: 21}, tip.Anchor(), "pinned anchor kept")
	assert.Equal(t, Rect{X: 42, Y: 12, W: 38, H: 12}, tip.Area())

	tip.Reset()
	tip.Move(Point{X: 70, Y: 20}, earth)
	tip.Move(Point{X: 41, Y: 14}, nil)
	assert.Equal(t, Hidden, tip.State(), "left of the shifted box")
}

func TestTooltipClickMissWhileUnpinned(t *testing.T) {
	r := body.Default()
	earth, _ := r.Lookup("Earth")
	d := &recordingDisplay{}
	tip := NewTooltip(d, nil)

	tip.Click(Point{X: 1, Y: 1}, nil)
	assert.Equal(t, Hidden, tip.State())
	assert.Empty(t, d.calls)

	tip.Move(Point{X: 10, Y: 5}, earth)
	tip.Click(Point{X: 70, Y: 20}, nil)
	assert.Equal(t, HoverVisible, tip.State())
}

func TestTooltipRoundTrip(t *testing.T) {
	r := body.Default()
	earth, _ := r.Lookup("Earth")
	tip := NewTooltip(&recordingDisplay{}, nil)

	initial := snapshot(tip)
	tip.Move(Point{X: 10, Y: 5}, earth)
	tip.Click(Point{X: 10, Y: 5}, earth)
	require.Equal(t, Pinned, tip.State())
	tip.Click(Point{X: 70, Y: 20}, nil)

	assert.Equal(t, initial, snapshot(tip))
}

type tipSnapshot struct {
	state  State
	body   *body.Body
	anchor Point
	area   Rect
}

func snapshot(t *Tooltip) tipSnapshot {
	return tipSnapshot{t.State(), t.Body(), t.Anchor(), t.Area()}
}

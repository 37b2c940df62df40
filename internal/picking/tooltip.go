package picking

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/body"
)

// State is the tooltip visibility state.
type State int

const (
	Hidden State = iota
	HoverVisible
	Pinned
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "Hidden"
	case HoverVisible:
		return "HoverVisible"
	case Pinned:
		return "Pinned"
	default:
		return "Unknown"
	}
}

// Point is a terminal cell.
type Point struct {
	X, Y int
}

// Add offsets a point.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is a cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the rectangle covers p.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// AnchorOffset places the tooltip down and right of the pointer.
var AnchorOffset = Point{X: 2, Y: 1}

// Display receives tooltip and detail panel updates.
type Display interface {
	ShowTooltip(text string, anchor Point)
	HideTooltip()
	ShowDetailPanel(name string)
	HideDetailPanel()
}

// Sizer measures rendered tooltip text in cells.
type Sizer func(text string) (w, h int)

// BoxSize measures text inside a rounded border with one column of
// horizontal padding.
func BoxSize(text string) (w, h int) {
	return lipgloss.Width(text) + 4, lipgloss.Height(text) + 2
}

// Tooltip is the hover/pin state machine.
type Tooltip struct {
	display Display
	size    Sizer

	state  State
	body   *body.Body
	anchor Point
	area   Rect

	boundsW, boundsH int
}

// NewTooltip creates a hidden tooltip reporting to d.
func NewTooltip(d Display, size Sizer) *Tooltip {
	if size == nil {
		size = BoxSize
	}
	return &Tooltip{display: d, size: size}
}

// SetBounds sets the canvas size the tooltip is drawn on. A box that would
// run past the right or bottom edge is shifted back, and the hover area
// follows it. Zero means unbounded.
func (t *Tooltip) SetBounds(w, h int) {
	t.boundsW, t.boundsH = w, h
}

// State returns the current state.
func (t *Tooltip) State() State {
	return t.state
}

// Body returns the hovered or pinned body, nil when hidden.
func (t *Tooltip) Body() *body.Body {
	return t.body
}

// Anchor returns the last computed anchor.
func (t *Tooltip) Anchor() Point {
	return t.anchor
}

// Area returns the on-screen tooltip rectangle, empty when hidden.
func (t *Tooltip) Area() Rect {
	if t.state == Hidden {
		return Rect{}
	}
	return t.area
}

// Move handles a pointer move with the body under it, or nil.
func (t *Tooltip) Move(pointer Point, hit *body.Body) {
	if t.state == Pinned {
		return
	}
	if hit != nil {
		t.show(HoverVisible, hit, pointer.Add(AnchorOffset))
		return
	}
	if t.state != Hidden && t.area.Contains(pointer) {
		return
	}
	t.hide()
}

// Click handles a click with the body under it, or nil.
func (t *Tooltip) Click(pointer Point, hit *body.Body) {
	if hit == nil {
		if t.state == Pinned {
			t.hide()
		}
		return
	}

	anchor := pointer.Add(AnchorOffset)
	if t.state != Hidden && t.body == hit {
		anchor = t.anchor
	}
	t.show(Pinned, hit, anchor)
	if t.display != nil {
		t.display.ShowDetailPanel(hit.Name)
	}
}

// Reset returns to Hidden.
func (t *Tooltip) Reset() {
	t.hide()
}

func (t *Tooltip) show(s State, b *body.Body, anchor Point) {
	text := Text(b)
	w, h := t.size(text)

	t.state = s
	t.body = b
	t.anchor = anchor
	t.area = t.place(anchor, w, h)

	if t.display != nil {
		t.display.ShowTooltip(text, anchor)
	}
}

// place mirrors the edge shifting done when the box is drawn.
func (t *Tooltip) place(anchor Point, w, h int) Rect {
	r := Rect{X: anchor.X, Y: anchor.Y, W: w, H: h}
	if t.boundsW > 0 {
		r.X = max(0, min(r.X, t.boundsW-w))
	}
	if t.boundsH > 0 {
		r.Y = max(0, min(r.Y, t.boundsH-h))
	}
	return r
}

func (t *Tooltip) hide() {
	wasPinned := t.state == Pinned
	wasVisible := t.state != Hidden

	t.state = Hidden
	t.body = nil
	t.anchor = Point{}
	t.area = Rect{}

	if t.display == nil {
		return
	}
	if wasVisible {
		t.display.HideTooltip()
	}
	if wasPinned {
		t.display.HideDetailPanel()
	}
}

// Text is the tooltip content for a body.
func Text(b *body.Body) string {
	if b == nil {
		return ""
	}
	return strings.Join(b.Summary(), "\n")
}

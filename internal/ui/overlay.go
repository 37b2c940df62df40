package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/picking"
	"github.com/litescript/ls-orrery/internal/render"
)

const (
	colorTooltipBorder = "#7B2CBF"
	colorTooltipText   = "252"
	colorPanelBorder   = "#9D4EDD"
	colorPanelText     = "250"
)

// overlay is the screen-space UI drawn over the scene: the tooltip box and
// the detail panel. The tooltip state machine drives it through
// picking.Display.
type overlay struct {
	registry *body.Registry

	tooltip       string
	anchor        picking.Point
	tooltipShown  bool
	panel         string
	pauseLabelled bool
}

// ShowTooltip implements picking.Display.
func (o *overlay) ShowTooltip(text string, anchor picking.Point) {
	o.tooltip = text
	o.anchor = anchor
	o.tooltipShown = true
}

// HideTooltip implements picking.Display.
func (o *overlay) HideTooltip() {
	o.tooltip = ""
	o.tooltipShown = false
}

// ShowDetailPanel implements picking.Display.
func (o *overlay) ShowDetailPanel(name string) {
	o.panel = name
}

// HideDetailPanel implements picking.Display.
func (o *overlay) HideDetailPanel() {
	o.panel = ""
}

// SetPauseLabel implements anim.PauseLabeler.
func (o *overlay) SetPauseLabel(paused bool) {
	o.pauseLabelled = paused
}

// Paint implements render.Overlay.
func (o *overlay) Paint(c *render.Canvas) {
	if o.tooltipShown {
		c.Box(o.anchor.X, o.anchor.Y, strings.Split(o.tooltip, "\n"),
			lipgloss.RoundedBorder(), colorTooltipBorder, colorTooltipText)
	}
	if o.panel != "" {
		w, _ := c.Size()
		// Box shifts left to fit, pinning the panel to the right edge.
		c.Box(w, 0, o.detailLines(), lipgloss.NormalBorder(), colorPanelBorder, colorPanelText)
	}
}

// panelArea is where the detail panel lands on a canvas of width w, using
// the same sizing and edge shift as Canvas.Box.
func (o *overlay) panelArea(w int) (picking.Rect, bool) {
	if o.panel == "" {
		return picking.Rect{}, false
	}
	inner := 0
	lines := o.detailLines()
	for _, l := range lines {
		inner = max(inner, lipgloss.Width(l))
	}
	bw := inner + 4
	return picking.Rect{X: max(0, w-bw), Y: 0, W: bw, H: len(lines) + 2}, true
}

// detailLines builds the live detail panel for the pinned body. The
// descriptive facts stay in the tooltip.
func (o *overlay) detailLines() []string {
	lines := []string{strings.ToUpper(o.panel)}
	if o.registry == nil {
		return lines
	}
	b, ok := o.registry.Lookup(o.panel)
	if !ok {
		return lines
	}

	p := b.Position()
	lines = append(lines, b.Kind.String())
	if !b.IsStar() {
		lines = append(lines,
			fmt.Sprintf("Orbit: r=%.0f  ω=%.2f", b.Orbit.Radius, b.Orbit.AngularSpeed))
	}
	lines = append(lines,
		fmt.Sprintf("Position: (%.1f, %.1f, %.1f)", p.X, p.Y, p.Z),
		fmt.Sprintf("Spin: %.2f rad", b.Transform.RotationY),
	)
	if b.Info.Link != "" {
		lines = append(lines, "", b.Info.Link)
	}
	lines = append(lines, "", "click empty space to close")
	return lines
}

package scene

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// SummaryRow is one body in the headless summary table.
type SummaryRow struct {
	Name     string
	Kind     string
	Size     float64
	Distance float64
	Angle    float64 // degrees around the star, [0, 360)
	X, Y, Z  float64
	Spin     float64 // radians
}

// GenerateSummaryRows lists every body in catalog order, star first.
func GenerateSummaryRows(s *State) []SummaryRow {
	if s == nil || s.Registry == nil {
		return nil
	}
	center := s.Registry.Star().Position()

	var rows []SummaryRow
	for _, b := range s.Registry.Bodies() {
		p := b.Position()
		row := SummaryRow{
			Name:     b.Name,
			Kind:     b.Kind.String(),
			Size:     b.Size,
			Distance: b.Distance(),
			X:        p.X,
			Y:        p.Y,
			Z:        p.Z,
			Spin:     b.Transform.RotationY,
		}
		if !b.IsStar() {
			deg := math.Atan2(p.Z-center.Z, p.X-center.X) * 180 / math.Pi
			if deg < 0 {
				deg += 360
			}
			row.Angle = deg
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteSummaryTable prints body positions at the scene's timestamp.
func WriteSummaryTable(w io.Writer, s *State) {
	rows := GenerateSummaryRows(s)

	var ts float64
	if s != nil {
		ts = s.Timestamp
	}
	fmt.Fprintf(w, "Orrery @ t=%.0fms\n", ts)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintf(w, "%-8s %-6s %5s %6s %7s %9s %9s %9s %8s\n",
		"Body", "Type", "Size", "Orbit", "Angle", "X", "Y", "Z", "Spin")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for _, r := range rows {
		fmt.Fprintf(w, "%-8s %-6s %5.1f %6.0f %6.1f° %9.2f %9.2f %9.2f %8.3f\n",
			truncateStr(r.Name, 8),
			r.Kind,
			r.Size,
			r.Distance,
			r.Angle,
			r.X, r.Y, r.Z,
			r.Spin,
		)
	}

	for _, sat := range s.Registry.Satellites() {
		fmt.Fprintf(w, "\n%s orbiting %s at (%.2f, %.2f, %.2f)\n",
			sat.Name, sat.Parent.Name, sat.Position.X, sat.Position.Y, sat.Position.Z)
	}
	fmt.Fprintf(w, "\nTotal: %d bodies\n", len(rows))
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}

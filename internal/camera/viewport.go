package camera

import "math"

// CellAspect is the height of a terminal cell relative to its width.
const CellAspect = 2.0

// Viewport is the terminal area the scene is drawn into, in cells.
type Viewport struct {
	Width  int
	Height int
}

// Valid reports whether the viewport has area.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Aspect returns the visual width/height ratio, correcting for tall cells.
func (v Viewport) Aspect() float64 {
	if !v.Valid() {
		return 1
	}
	return float64(v.Width) / (float64(v.Height) * CellAspect)
}

// Contains reports whether a cell lies inside the viewport.
func (v Viewport) Contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < v.Width && row < v.Height
}

// ToNDC maps the center of a cell to normalized device coordinates:
// x grows right, y grows up.
func (v Viewport) ToNDC(col, row int) (x, y float64, ok bool) {
	if !v.Valid() || !v.Contains(col, row) {
		return 0, 0, false
	}
	x = (float64(col)+0.5)/float64(v.Width)*2 - 1
	y = -((float64(row)+0.5)/float64(v.Height))*2 + 1
	return x, y, true
}

// ToCell maps NDC to the cell containing it. The result may lie outside
// the viewport.
func (v Viewport) ToCell(x, y float64) (col, row int) {
	col = int(math.Floor((x + 1) / 2 * float64(v.Width)))
	row = int(math.Floor((1 - y) / 2 * float64(v.Height)))
	return col, row
}

// CellsPerUnitX converts an NDC extent to a width in cells.
func (v Viewport) CellsPerUnitX() float64 {
	return float64(v.Width) / 2
}

// CellsPerUnitY converts an NDC extent to a height in cells.
func (v Viewport) CellsPerUnitY() float64 {
	return float64(v.Height) / 2
}

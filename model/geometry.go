package model

import "math"

// Point represents a 2D point in page pixel coordinates.
// Y grows downward, matching raster image coordinates.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Quad is the quadrilateral bounding box of a recognized text line,
// given as four corner points. OCR engines report quads in corner order
// (top-left, top-right, bottom-right, bottom-left) but the quad is not
// guaranteed to be axis-aligned; all derived metrics therefore use the
// min/max over each axis.
type Quad [4]Point

// RectQuad creates an axis-aligned quad from a rectangle given by its
// top-left corner, width, and height.
func RectQuad(x, y, width, height float64) Quad {
	return Quad{
		{X: x, Y: y},
		{X: x + width, Y: y},
		{X: x + width, Y: y + height},
		{X: x, Y: y + height},
	}
}

// Left returns the minimum X coordinate
func (q Quad) Left() float64 {
	minX := q[0].X
	for _, p := range q[1:] {
		if p.X < minX {
			minX = p.X
		}
	}
	return minX
}

// Right returns the maximum X coordinate
func (q Quad) Right() float64 {
	maxX := q[0].X
	for _, p := range q[1:] {
		if p.X > maxX {
			maxX = p.X
		}
	}
	return maxX
}

// Top returns the minimum Y coordinate (upper edge in image coordinates)
func (q Quad) Top() float64 {
	minY := q[0].Y
	for _, p := range q[1:] {
		if p.Y < minY {
			minY = p.Y
		}
	}
	return minY
}

// Bottom returns the maximum Y coordinate (lower edge in image coordinates)
func (q Quad) Bottom() float64 {
	maxY := q[0].Y
	for _, p := range q[1:] {
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return maxY
}

// Width returns the horizontal extent of the quad.
// It is always non-negative; a degenerate quad has width 0.
func (q Quad) Width() float64 {
	return q.Right() - q.Left()
}

// Height returns the vertical extent of the quad.
// It is always non-negative; a degenerate quad has height 0.
func (q Quad) Height() float64 {
	return q.Bottom() - q.Top()
}

// CenterX returns the horizontal midpoint of the quad
func (q Quad) CenterX() float64 {
	return (q.Left() + q.Right()) / 2
}

// CenterY returns the vertical midpoint of the quad
func (q Quad) CenterY() float64 {
	return (q.Top() + q.Bottom()) / 2
}

// Contains checks if a point is inside the quad's axis-aligned bounds
func (q Quad) Contains(p Point) bool {
	return p.X >= q.Left() && p.X <= q.Right() &&
		p.Y >= q.Top() && p.Y <= q.Bottom()
}

// Union returns the smallest axis-aligned quad covering both quads
func (q Quad) Union(other Quad) Quad {
	left := math.Min(q.Left(), other.Left())
	top := math.Min(q.Top(), other.Top())
	right := math.Max(q.Right(), other.Right())
	bottom := math.Max(q.Bottom(), other.Bottom())
	return RectQuad(left, top, right-left, bottom-top)
}

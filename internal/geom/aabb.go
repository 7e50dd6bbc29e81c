package geom

import "math"

// Size is the width and height of a rectangle.
type Size struct {
	W, H float64
}

// AABB is an axis-aligned rectangle anchored at Position (its minimum corner).
type AABB struct {
	Position Vector
	Size     Size
}

// Quadrant identifies one of the four children of a subdivided rectangle.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

// Quadrants lists every quadrant in traversal order.
var Quadrants = [4]Quadrant{TopLeft, TopRight, BottomLeft, BottomRight}

func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// NewAABB creates a rectangle with origin (x, y), width w and height h.
func NewAABB(x, y, w, h float64) AABB {
	return AABB{Position: Vector{x, y}, Size: Size{w, h}}
}

func (b AABB) HalfWidth() float64  { return b.Size.W / 2 }
func (b AABB) HalfHeight() float64 { return b.Size.H / 2 }

// MidX returns the x coordinate of the vertical split line.
func (b AABB) MidX() float64 { return b.Position.X + b.HalfWidth() }

// MidY returns the y coordinate of the horizontal split line.
func (b AABB) MidY() float64 { return b.Position.Y + b.HalfHeight() }

// Center returns the midpoint of the rectangle.
func (b AABB) Center() Vector { return Vector{b.MidX(), b.MidY()} }

// MaxSide returns the larger of width and height.
func (b AABB) MaxSide() float64 { return math.Max(b.Size.W, b.Size.H) }

// Quadrant returns the rectangle covering quadrant q of b.
func (b AABB) Quadrant(q Quadrant) AABB {
	hw, hh := b.HalfWidth(), b.HalfHeight()
	x, y := b.Position.X, b.Position.Y
	switch q {
	case TopRight:
		return NewAABB(x+hw, y, hw, hh)
	case BottomLeft:
		return NewAABB(x, y+hh, hw, hh)
	case BottomRight:
		return NewAABB(x+hw, y+hh, hw, hh)
	default:
		return NewAABB(x, y, hw, hh)
	}
}

// OverlapsPoint reports whether p lies within the origin extended by ± the
// rectangle's own size on both axes. Bounds are inclusive.
func (b AABB) OverlapsPoint(p Vector) bool {
	return b.Position.X-b.Size.W <= p.X &&
		p.X <= b.Position.X+b.Size.W &&
		b.Position.Y-b.Size.H <= p.Y &&
		p.Y <= b.Position.Y+b.Size.H
}

// Overlaps reports whether o and b overlap, each extended by ± its own size.
// Rectangles that only touch still overlap.
func (b AABB) Overlaps(o AABB) bool {
	return !(o.Position.X-o.Size.W > b.Position.X+b.Size.W ||
		o.Position.X+o.Size.W < b.Position.X-b.Size.W ||
		o.Position.Y-o.Size.H > b.Position.Y+b.Size.H ||
		o.Position.Y+o.Size.H < b.Position.Y-b.Size.H)
}

// Contains reports whether p lies inside [x, x+w] × [y, y+h].
func (b AABB) Contains(p Vector) bool {
	return p.X >= b.Position.X && p.X <= b.Position.X+b.Size.W &&
		p.Y >= b.Position.Y && p.Y <= b.Position.Y+b.Size.H
}

// Fit returns the smallest square rectangle holding every point, grown by
// padding (a fraction of the larger extent) on each side. The side is never
// smaller than 1 so a single point still gets a usable region.
func Fit(points []Vector, padding float64) AABB {
	if len(points) == 0 {
		return NewAABB(0, 0, 1, 1)
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	pad := math.Max(maxX-minX, maxY-minY) * padding
	minX -= pad
	maxX += pad
	minY -= pad
	maxY += pad

	width := maxX - minX
	height := maxY - minY

	// Square it up around the existing center
	if width > height {
		minY -= (width - height) / 2
		height = width
	} else if height > width {
		minX -= (height - width) / 2
		width = height
	}

	if width < 1 {
		minX -= (1 - width) / 2
		minY -= (1 - height) / 2
		width, height = 1, 1
	}

	return NewAABB(minX, minY, width, height)
}

package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Minimum accepted box dimensions in page space. Boxes below these are
// degenerate: too small to be a usable input area.
const (
	MinBoxWidth  = 2.0
	MinBoxHeight = 0.5
)

// Box represents an axis-aligned box in page space: all four values are
// percentages of the page dimensions, origin at the top-left.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewBox creates a box from its left/top corner and dimensions.
func NewBox(left, top, width, height float64) Box {
	return Box{Left: left, Top: top, Width: width, Height: height}
}

// Right returns the right edge X coordinate
func (b Box) Right() float64 {
	return b.Left + b.Width
}

// Bottom returns the bottom edge Y coordinate (top-left origin, so bottom
// is the larger value)
func (b Box) Bottom() float64 {
	return b.Top + b.Height
}

// Center returns the center point
func (b Box) Center() Point {
	return Point{
		X: b.Left + b.Width/2,
		Y: b.Top + b.Height/2,
	}
}

// Area returns the area of the box
func (b Box) Area() float64 {
	return b.Width * b.Height
}

// IsEmpty returns true if the box has zero or negative area
func (b Box) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Intersects checks if two boxes overlap
func (b Box) Intersects(other Box) bool {
	return !(b.Right() <= other.Left ||
		b.Left >= other.Right() ||
		b.Bottom() <= other.Top ||
		b.Top >= other.Bottom())
}

// Intersection returns the overlapping region of two boxes, or a zero Box
// when they do not overlap.
func (b Box) Intersection(other Box) Box {
	if !b.Intersects(other) {
		return Box{}
	}

	left := math.Max(b.Left, other.Left)
	top := math.Max(b.Top, other.Top)
	right := math.Min(b.Right(), other.Right())
	bottom := math.Min(b.Bottom(), other.Bottom())

	return Box{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(other Box) Box {
	left := math.Min(b.Left, other.Left)
	top := math.Min(b.Top, other.Top)
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return Box{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// IoU calculates the intersection-over-union overlap with another box.
// The result is in [0, 1]. Degenerate boxes (zero area) and disjoint
// boxes yield 0 rather than an error.
func (b Box) IoU(other Box) float64 {
	if !b.Intersects(other) {
		return 0
	}

	interArea := b.Intersection(other).Area()
	unionArea := b.Area() + other.Area() - interArea
	if unionArea <= 0 {
		return 0
	}

	return interArea / unionArea
}

// Valid reports whether the box satisfies the page-space invariants:
// all values finite, within [0, 100], and dimensions at or above the
// degenerate-box floor.
func (b Box) Valid() bool {
	for _, v := range [4]float64{b.Left, b.Top, b.Width, b.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	if b.Left < 0 || b.Top < 0 {
		return false
	}
	if b.Right() > 100 || b.Bottom() > 100 {
		return false
	}
	return b.Width >= MinBoxWidth && b.Height >= MinBoxHeight
}

// DeviceToPage converts a device-space point (native page units, origin at
// the bottom-left) to page space (percent, origin at the top-left).
// This is the single place the vertical axis flip happens.
func DeviceToPage(p Point, pageWidth, pageHeight float64) Point {
	if pageWidth <= 0 || pageHeight <= 0 {
		return Point{}
	}
	return Point{
		X: p.X / pageWidth * 100,
		Y: (pageHeight - p.Y) / pageHeight * 100,
	}
}

// Matrix represents a 2D affine transformation matrix
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply multiplies two matrices
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate creates a rotation matrix (angle in radians)
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// IsIdentity returns true if the matrix is an identity matrix
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}

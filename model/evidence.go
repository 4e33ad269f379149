package model

import "math"

// VectorLine is a straight axis-aligned line recovered from a page's
// drawing commands, in page space.
type VectorLine struct {
	X1, Y1, X2, Y2 float64

	IsHorizontal bool
	IsVertical   bool
}

// Ruling converts the line to the orientation-neutral ruling view used by
// the snapper. Horizontal lines rule on Y, vertical lines on X.
func (l VectorLine) Ruling() Ruling {
	if l.IsVertical {
		return Ruling{
			Horizontal: false,
			Position:   (l.X1 + l.X2) / 2,
			Start:      math.Min(l.Y1, l.Y2),
			End:        math.Max(l.Y1, l.Y2),
		}
	}
	return Ruling{
		Horizontal: true,
		Position:   (l.Y1 + l.Y2) / 2,
		Start:      math.Min(l.X1, l.X2),
		End:        math.Max(l.X1, l.X2),
	}
}

// VectorRect is a rectangle recovered from a page's drawing commands, in
// page space. It shares the Box shape.
type VectorRect = Box

// RasterLine is a straight run of ink pixels detected in a page bitmap,
// already converted to page space.
type RasterLine struct {
	// Position is the row (horizontal lines) or column (vertical lines).
	Position float64

	// SpanStart and SpanEnd bound the line's extent along its own axis.
	SpanStart float64
	SpanEnd   float64

	Horizontal bool
}

// Length returns the extent of the line along its axis.
func (l RasterLine) Length() float64 {
	return l.SpanEnd - l.SpanStart
}

// Ruling converts the line to the orientation-neutral ruling view.
func (l RasterLine) Ruling() Ruling {
	return Ruling{
		Horizontal: l.Horizontal,
		Position:   l.Position,
		Start:      l.SpanStart,
		End:        l.SpanEnd,
	}
}

// Ruling is the snapper's view of a detected line, independent of whether
// it came from vector commands or the raster scan.
type Ruling struct {
	Horizontal bool
	Position   float64
	Start      float64
	End        float64
}

// Length returns the extent of the ruling.
func (r Ruling) Length() float64 {
	return r.End - r.Start
}

// OverlapWith returns how much of the span [start, end] the ruling covers.
func (r Ruling) OverlapWith(start, end float64) float64 {
	lo := math.Max(r.Start, start)
	hi := math.Min(r.End, end)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// Word is one recognized word from the OCR result, in page space.
type Word struct {
	Content    string  `json:"content"`
	Box        Box     `json:"box"`
	Confidence float64 `json:"confidence"`
}

// LabelMatch is the outcome of aligning a field label to a contiguous run
// of recognized words.
type LabelMatch struct {
	Label      string
	Words      []Word
	Box        Box
	Confidence float64
}

// PageEvidence bundles everything the extractors recovered from one page.
// Any subset may be empty; refinement stages treat missing evidence as a
// no-op.
type PageEvidence struct {
	VectorLines []VectorLine
	VectorRects []VectorRect
	RasterLines []RasterLine
	Words       []Word
}

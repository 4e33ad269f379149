package snap

import (
	"math"

	"github.com/tsawler/fieldsnap/model"
)

// LineSnapper aligns a field's bottom edge to the nearest detected ruled
// line. Rectangle-bordered field types are excluded; their geometry comes
// from rect snapping.
type LineSnapper struct {
	// MaxSnapDistance is the maximum gap between the field's bottom edge
	// and a candidate line.
	MaxSnapDistance float64

	// MinOverlapFraction is the fraction of the field's width a line must
	// overlap horizontally to be a candidate.
	MinOverlapFraction float64

	// AdoptTolerance is the maximum difference between the line length and
	// the field width for the field to adopt the line's horizontal extent.
	AdoptTolerance float64
}

// NewLineSnapper creates a line snapper with the default thresholds.
func NewLineSnapper() *LineSnapper {
	return &LineSnapper{
		MaxSnapDistance:    3,
		MinOverlapFraction: 0.5,
		AdoptTolerance:     8,
	}
}

// Snap rests the field's bottom edge on the closest overlapping horizontal
// ruling, keeping the height fixed. When the ruling's length is close to
// the field's width the field is assumed to span exactly that ruled
// segment and adopts its left edge and width. A field already resting on
// its line comes back unchanged.
func (s *LineSnapper) Snap(field model.Field, rulings []model.Ruling) model.Field {
	if !field.FieldType.IsLineSnappable() {
		return field
	}

	box := field.Coordinates

	var best *model.Ruling
	bestDist := math.Inf(1)
	for i, r := range rulings {
		if !r.Horizontal {
			continue
		}
		if r.OverlapWith(box.Left, box.Right()) < s.MinOverlapFraction*box.Width {
			continue
		}
		dist := math.Abs(r.Position - box.Bottom())
		if dist > s.MaxSnapDistance || dist >= bestDist {
			continue
		}
		best = &rulings[i]
		bestDist = dist
	}
	if best == nil {
		return field
	}

	snapped := box
	snapped.Top = best.Position - box.Height
	if math.Abs(best.Length()-box.Width) <= s.AdoptTolerance {
		snapped.Left = best.Start
		snapped.Width = best.Length()
	}

	if !snapped.Valid() {
		return field
	}
	return field.WithCoordinates(snapped)
}

package snap

import (
	"math"

	"github.com/tsawler/fieldsnap/model"
)

// LabelSnapper corrects a field's left edge when the box overlaps the
// field's own printed label. Only inline text-like fields sit on the same
// baseline as their label, so only those are eligible.
type LabelSnapper struct {
	// MaxRowDelta is the maximum top-edge difference for the label and
	// field to count as sharing a horizontal line.
	MaxRowDelta float64

	// MinClearance is how far the label's right edge must sit left of the
	// field's right edge. A label spanning the whole field is not an
	// overlap to correct.
	MinClearance float64

	// MaxShift bounds the left-edge correction. Larger shifts indicate a
	// mislocated field rather than label overlap.
	MaxShift float64

	// MinWidthRetention is the fraction of the original width the snapped
	// box must keep.
	MinWidthRetention float64
}

// NewLabelSnapper creates a label snapper with the default thresholds.
func NewLabelSnapper() *LabelSnapper {
	return &LabelSnapper{
		MaxRowDelta:       3,
		MinClearance:      2,
		MaxShift:          10,
		MinWidthRetention: 0.6,
	}
}

// Snap moves the field's left edge to the label's right edge when the
// label sits inside the field on the same row. The field is returned
// unchanged when any precondition fails or the match is nil.
func (s *LabelSnapper) Snap(field model.Field, match *model.LabelMatch) model.Field {
	if match == nil || !field.FieldType.IsInlineText() {
		return field
	}

	box := field.Coordinates
	labelRight := match.Box.Right()

	if math.Abs(match.Box.Top-box.Top) >= s.MaxRowDelta {
		return field
	}
	if box.Right()-labelRight <= s.MinClearance {
		return field
	}

	shift := labelRight - box.Left
	if shift <= 0 || shift >= s.MaxShift {
		return field
	}

	snapped := box
	snapped.Left = labelRight
	snapped.Width = box.Right() - labelRight

	if snapped.Width < s.MinWidthRetention*box.Width {
		return field
	}
	if !snapped.Valid() {
		return field
	}

	return field.WithCoordinates(snapped)
}

package snap

import (
	"github.com/tsawler/fieldsnap/model"
)

// RectSnapper aligns rectangle-bordered fields (checkboxes, textareas) to
// drawn rectangles of comparable size, adopting the rectangle's geometry
// outright when a close match exists.
type RectSnapper struct {
	// MinSizeRatio and MaxSizeRatio bound the rectangle-to-field ratio of
	// each dimension for the rectangle to be a candidate.
	MinSizeRatio float64
	MaxSizeRatio float64

	// MaxCenterDistance is how far a candidate's center may sit from the
	// field's center.
	MaxCenterDistance float64
}

// NewRectSnapper creates a rect snapper with the default thresholds.
func NewRectSnapper() *RectSnapper {
	return &RectSnapper{
		MinSizeRatio:      0.5,
		MaxSizeRatio:      2.0,
		MaxCenterDistance: 5,
	}
}

// Snap adopts the geometry of the best-matching drawn rectangle. The best
// match is the size-compatible nearby rectangle with the highest overlap;
// among non-overlapping candidates the nearest center wins. Fields of
// other types, and fields with no compatible rectangle, come back
// unchanged.
func (s *RectSnapper) Snap(field model.Field, rects []model.VectorRect) model.Field {
	if field.FieldType != model.FieldCheckbox && field.FieldType != model.FieldTextarea {
		return field
	}

	box := field.Coordinates
	if box.Width <= 0 || box.Height <= 0 {
		return field
	}

	var best *model.VectorRect
	bestIoU := 0.0
	bestDist := s.MaxCenterDistance
	for i, r := range rects {
		if !s.sizeCompatible(box, r) {
			continue
		}
		dist := r.Center().Distance(box.Center())
		if dist > s.MaxCenterDistance {
			continue
		}
		iou := r.IoU(box)
		if best == nil || iou > bestIoU || (iou == bestIoU && dist < bestDist) {
			best = &rects[i]
			bestIoU = iou
			bestDist = dist
		}
	}
	if best == nil {
		return field
	}

	snapped := *best
	if !snapped.Valid() {
		return field
	}
	return field.WithCoordinates(snapped)
}

func (s *RectSnapper) sizeCompatible(box model.Box, r model.VectorRect) bool {
	wr := r.Width / box.Width
	hr := r.Height / box.Height
	return wr >= s.MinSizeRatio && wr <= s.MaxSizeRatio &&
		hr >= s.MinSizeRatio && hr <= s.MaxSizeRatio
}

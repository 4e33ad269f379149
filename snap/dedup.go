package snap

import (
	"math"
	"strings"

	"github.com/tsawler/fieldsnap/model"
)

// Default coordinate tolerances, in percentage points, for duplicate
// detection. Exact-duplicate removal compares label, type, and all four
// coordinates; position-only removal compares coordinates alone and
// catches the same box detected under different labels.
const (
	DuplicateTolerance = 3.0
	PositionTolerance  = 2.0
)

// Deduplicate removes fields that duplicate an earlier field: same label
// (case-insensitive), same type, and all four coordinates within the
// tolerance. Fields detected near region boundaries commonly appear twice;
// the first occurrence wins. The input slice is not modified.
func Deduplicate(fields []model.Field, tolerance float64) []model.Field {
	if len(fields) == 0 {
		return nil
	}

	kept := make([]model.Field, 0, len(fields))
	for _, f := range fields {
		duplicate := false
		for _, k := range kept {
			if sameField(f, k, tolerance) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, f)
		}
	}
	return kept
}

// DeduplicateByPosition removes fields whose coordinates match an earlier
// field's within the tolerance, regardless of label or type. The first
// occurrence wins. The input slice is not modified.
func DeduplicateByPosition(fields []model.Field, tolerance float64) []model.Field {
	if len(fields) == 0 {
		return nil
	}

	kept := make([]model.Field, 0, len(fields))
	for _, f := range fields {
		duplicate := false
		for _, k := range kept {
			if boxesClose(f.Coordinates, k.Coordinates, tolerance) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, f)
		}
	}
	return kept
}

func sameField(a, b model.Field, tolerance float64) bool {
	if !strings.EqualFold(string(a.FieldType), string(b.FieldType)) {
		return false
	}
	la := strings.TrimSpace(a.Label)
	lb := strings.TrimSpace(b.Label)
	if la == "" || lb == "" || !strings.EqualFold(la, lb) {
		return false
	}
	return boxesClose(a.Coordinates, b.Coordinates, tolerance)
}

func boxesClose(a, b model.Box, tolerance float64) bool {
	return math.Abs(a.Left-b.Left) <= tolerance &&
		math.Abs(a.Top-b.Top) <= tolerance &&
		math.Abs(a.Width-b.Width) <= tolerance &&
		math.Abs(a.Height-b.Height) <= tolerance
}

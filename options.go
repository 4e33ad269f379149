package fieldsnap

import (
	"github.com/tsawler/fieldsnap/ocr"
	"github.com/tsawler/fieldsnap/raster"
	"github.com/tsawler/fieldsnap/snap"
	"github.com/tsawler/fieldsnap/vector"
)

// Config names every tunable threshold in the refinement pipeline. The
// defaults are empirically chosen; tune individual values rather than
// building a Config from scratch.
type Config struct {
	// Matcher holds the label-matching thresholds.
	Matcher ocr.Matcher

	// Label, Line, and Rect hold the per-snapper safety thresholds.
	Label snap.LabelSnapper
	Line  snap.LineSnapper
	Rect  snap.RectSnapper

	// Vector holds the drawing-command classification thresholds, in
	// device units.
	Vector vector.Extractor

	// Raster holds the bitmap scan parameters.
	Raster raster.Params

	// DuplicateTolerance and PositionTolerance are the coordinate
	// tolerances, in percentage points, for the optional dedup stages.
	DuplicateTolerance float64
	PositionTolerance  float64
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		Matcher:            *ocr.NewMatcher(),
		Label:              *snap.NewLabelSnapper(),
		Line:               *snap.NewLineSnapper(),
		Rect:               *snap.NewRectSnapper(),
		Vector:             *vector.NewExtractor(),
		Raster:             raster.DefaultParams(),
		DuplicateTolerance: snap.DuplicateTolerance,
		PositionTolerance:  snap.PositionTolerance,
	}
}

// stages builds the canonical stage ordering from the configured
// thresholds.
func (c Config) stages() []snap.Stage {
	matcher := c.Matcher
	label := c.Label
	line := c.Line
	rect := c.Rect
	return []snap.Stage{
		snap.LabelStage{Matcher: &matcher, Snapper: &label},
		snap.RasterLineStage{Snapper: &line},
		snap.VectorLineStage{Snapper: &line},
		snap.RectStage{Snapper: &rect},
	}
}

package snap

import (
	"strings"

	"github.com/tsawler/fieldsnap/model"
	"github.com/tsawler/fieldsnap/ocr"
)

// Stage is one pure refinement pass over a page's fields. Apply must not
// modify the input slice; it returns a new slice (or the input unchanged
// when it has nothing to do).
type Stage interface {
	Name() string
	Apply(fields []model.Field, evidence model.PageEvidence) []model.Field
}

// LabelStage matches each field's label against the page's recognized
// words and snaps the field's left edge clear of the label.
type LabelStage struct {
	Matcher *ocr.Matcher
	Snapper *LabelSnapper
}

func (s LabelStage) Name() string { return "label" }

func (s LabelStage) Apply(fields []model.Field, evidence model.PageEvidence) []model.Field {
	if len(evidence.Words) == 0 {
		return fields
	}
	out := make([]model.Field, len(fields))
	for i, f := range fields {
		match := s.Matcher.Match(f.Label, evidence.Words, f.Coordinates)
		out[i] = s.Snapper.Snap(f, match)
	}
	return out
}

// RasterLineStage snaps field bottom edges to lines found in the page
// bitmap.
type RasterLineStage struct {
	Snapper *LineSnapper
}

func (s RasterLineStage) Name() string { return "raster-line" }

func (s RasterLineStage) Apply(fields []model.Field, evidence model.PageEvidence) []model.Field {
	if len(evidence.RasterLines) == 0 {
		return fields
	}
	rulings := make([]model.Ruling, len(evidence.RasterLines))
	for i, l := range evidence.RasterLines {
		rulings[i] = l.Ruling()
	}
	return snapAll(fields, s.Snapper, rulings)
}

// VectorLineStage snaps field bottom edges to lines drawn by the page's
// vector content.
type VectorLineStage struct {
	Snapper *LineSnapper
}

func (s VectorLineStage) Name() string { return "vector-line" }

func (s VectorLineStage) Apply(fields []model.Field, evidence model.PageEvidence) []model.Field {
	if len(evidence.VectorLines) == 0 {
		return fields
	}
	rulings := make([]model.Ruling, len(evidence.VectorLines))
	for i, l := range evidence.VectorLines {
		rulings[i] = l.Ruling()
	}
	return snapAll(fields, s.Snapper, rulings)
}

// RectStage snaps rectangle-bordered fields to drawn rectangles.
type RectStage struct {
	Snapper *RectSnapper
}

func (s RectStage) Name() string { return "rect" }

func (s RectStage) Apply(fields []model.Field, evidence model.PageEvidence) []model.Field {
	if len(evidence.VectorRects) == 0 {
		return fields
	}
	out := make([]model.Field, len(fields))
	for i, f := range fields {
		out[i] = s.Snapper.Snap(f, evidence.VectorRects)
	}
	return out
}

// DedupStage removes exact duplicates (label, type, and coordinates all
// matching within the tolerance).
type DedupStage struct {
	Tolerance float64
}

func (s DedupStage) Name() string { return "dedup" }

func (s DedupStage) Apply(fields []model.Field, _ model.PageEvidence) []model.Field {
	return Deduplicate(fields, s.Tolerance)
}

// PositionDedupStage removes fields occupying the same position
// regardless of label.
type PositionDedupStage struct {
	Tolerance float64
}

func (s PositionDedupStage) Name() string { return "position-dedup" }

func (s PositionDedupStage) Apply(fields []model.Field, _ model.PageEvidence) []model.Field {
	return DeduplicateByPosition(fields, s.Tolerance)
}

func snapAll(fields []model.Field, snapper *LineSnapper, rulings []model.Ruling) []model.Field {
	out := make([]model.Field, len(fields))
	for i, f := range fields {
		out[i] = snapper.Snap(f, rulings)
	}
	return out
}

// Pipeline chains snapper stages in a fixed order. Evidence sources are
// not commutative: label-snap first can clear an overlap that would
// otherwise anchor line-snap to the wrong rule, and vice versa, so the
// order is configuration, not an implementation detail.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a pipeline running the given stages in order.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Canonical returns the production stage ordering: label snap first, then
// raster lines, vector lines, and rectangles. The ordering was chosen by
// exhaustive comparison against the evaluation harness.
func Canonical() *Pipeline {
	return NewPipeline(CanonicalStages()...)
}

// CanonicalStages returns the production stages, in order, with default
// thresholds.
func CanonicalStages() []Stage {
	return []Stage{
		LabelStage{Matcher: ocr.NewMatcher(), Snapper: NewLabelSnapper()},
		RasterLineStage{Snapper: NewLineSnapper()},
		VectorLineStage{Snapper: NewLineSnapper()},
		RectStage{Snapper: NewRectSnapper()},
	}
}

// Run applies the stages in order. Each stage consumes the previous
// stage's output; the input slice is never modified.
func (p *Pipeline) Run(fields []model.Field, evidence model.PageEvidence) []model.Field {
	current := make([]model.Field, len(fields))
	copy(current, fields)
	for _, stage := range p.stages {
		current = stage.Apply(current, evidence)
	}
	return current
}

// Stages returns a copy of the stage list in run order.
func (p *Pipeline) Stages() []Stage {
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// Describe returns the stage names joined in run order, for reports and
// logs.
func (p *Pipeline) Describe() string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return strings.Join(names, " > ")
}

// Orderings returns every permutation of the given stages, each as a
// pipeline. The evaluation harness scores them all to find the ordering
// that refines best on a corpus.
func Orderings(stages []Stage) []*Pipeline {
	var out []*Pipeline
	permute(stages, 0, &out)
	return out
}

func permute(stages []Stage, i int, out *[]*Pipeline) {
	if i == len(stages) {
		ordered := make([]Stage, len(stages))
		copy(ordered, stages)
		*out = append(*out, NewPipeline(ordered...))
		return
	}
	for j := i; j < len(stages); j++ {
		stages[i], stages[j] = stages[j], stages[i]
		permute(stages, i+1, out)
		stages[i], stages[j] = stages[j], stages[i]
	}
}

package fieldsnap

import (
	"fmt"

	"github.com/tsawler/fieldsnap/model"
	"github.com/tsawler/fieldsnap/ocr"
	"github.com/tsawler/fieldsnap/raster"
	"github.com/tsawler/fieldsnap/snap"
)

// Refiner accumulates page evidence and configuration before running the
// snapping pipeline. Configuration methods return the Refiner for
// chaining; Refine is the terminal operation.
type Refiner struct {
	fields []model.Field
	config Config

	// stages overrides the canonical ordering when set via WithStages.
	stages []snap.Stage

	evidence model.PageEvidence
	dedup    bool

	// Warnings accumulated while gathering evidence.
	warnings []Warning
}

// WithConfig replaces the refinement thresholds.
func (r *Refiner) WithConfig(config Config) *Refiner {
	r.config = config
	return r
}

// WithStages replaces the canonical stage ordering with an explicit one.
// Stage order is significant: the evidence sources do not commute.
func (r *Refiner) WithStages(stages ...snap.Stage) *Refiner {
	r.stages = stages
	return r
}

// WithContentStream extracts ruled lines and rectangles from a page's
// drawing-command stream. Page dimensions are in device units. A
// malformed stream contributes whatever geometry was recovered before
// the malformation.
func (r *Refiner) WithContentStream(stream []byte, pageWidth, pageHeight float64) *Refiner {
	if pageWidth <= 0 || pageHeight <= 0 {
		r.warn("vector", fmt.Sprintf("invalid page dimensions %gx%g", pageWidth, pageHeight))
		return r
	}

	extractor := r.config.Vector
	result := extractor.ExtractFromBytes(stream, pageWidth, pageHeight)
	r.evidence.VectorLines = append(r.evidence.VectorLines, result.Lines...)
	r.evidence.VectorRects = append(r.evidence.VectorRects, result.Rects...)
	return r
}

// WithPageImage detects ruled lines in a rasterized page image (PNG,
// JPEG, GIF, BMP, TIFF, or WebP). An undecodable image degrades to a
// warning.
func (r *Refiner) WithPageImage(data []byte) *Refiner {
	detector := raster.NewDetector()
	detector.Configure(r.config.Raster)

	lines, err := detector.DetectFromBytes(data)
	if err != nil {
		r.warn("raster", err.Error())
		return r
	}
	r.evidence.RasterLines = append(r.evidence.RasterLines, lines...)
	return r
}

// WithRecognizedText loads recognized words from a cached OCR result in
// its JSON form. An unparseable result degrades to a warning.
func (r *Refiner) WithRecognizedText(data []byte) *Refiner {
	result, err := ocr.ParseResult(data)
	if err != nil {
		r.warn("ocr", err.Error())
		return r
	}
	r.evidence.Words = append(r.evidence.Words, result.PageWords()...)
	return r
}

// WithWords adds recognized words directly, for callers that run their
// own recognition.
func (r *Refiner) WithWords(words []model.Word) *Refiner {
	r.evidence.Words = append(r.evidence.Words, words...)
	return r
}

// Deduplicated appends duplicate-removal stages after the snapping
// stages: exact duplicates first, then same-position fields.
func (r *Refiner) Deduplicated() *Refiner {
	r.dedup = true
	return r
}

// Evidence returns everything gathered so far. Useful for inspecting
// what the extractors recovered from a problem page.
func (r *Refiner) Evidence() model.PageEvidence {
	return r.evidence
}

// Warnings returns the warnings gathered so far, without running the
// pipeline.
func (r *Refiner) Warnings() []Warning {
	return r.warnings
}

// Refine runs the pipeline over the field estimates and returns the
// refined fields plus any warnings gathered along the way. Missing
// evidence never fails a stage; fields the evidence cannot improve come
// back unchanged.
func (r *Refiner) Refine() ([]model.Field, []Warning) {
	stages := r.stages
	if stages == nil {
		stages = r.config.stages()
	}
	if r.dedup {
		stages = append(stages,
			snap.DedupStage{Tolerance: r.config.DuplicateTolerance},
			snap.PositionDedupStage{Tolerance: r.config.PositionTolerance},
		)
	}

	refined := snap.NewPipeline(stages...).Run(r.fields, r.evidence)
	return refined, r.warnings
}

func (r *Refiner) warn(source, message string) {
	r.warnings = append(r.warnings, Warning{Source: source, Message: message})
}

package raster

import (
	"image"
	"math"
	"sort"

	"github.com/tsawler/fieldsnap/model"
)

// Params configures the line detector.
type Params struct {
	// Threshold is the intensity (0-255) below which a pixel counts as ink.
	Threshold uint8

	// MinLengthPercent is the minimum run length as a percentage of the
	// scanned dimension (image width for horizontal lines, height for
	// vertical ones).
	MinLengthPercent float64

	// MergeDistance is the maximum pixel gap between the positions of two
	// runs for them to merge into one logical line.
	MergeDistance int
}

// DefaultParams returns the detector defaults.
func DefaultParams() Params {
	return Params{
		Threshold:        128,
		MinLengthPercent: 10,
		MergeDistance:    3,
	}
}

// Detector finds horizontal and vertical ruled lines in a bitmap.
type Detector struct {
	params Params
}

// NewDetector creates a detector with default parameters.
func NewDetector() *Detector {
	return &Detector{params: DefaultParams()}
}

// Configure replaces the detector parameters.
func (d *Detector) Configure(p Params) {
	d.params = p
}

// rawLine is one unmerged ink run in pixel coordinates.
type rawLine struct {
	position float64 // row for horizontal, column for vertical
	start    float64
	end      float64
}

// Detect scans the image in both orientations and returns the merged
// lines in page space. A nil or empty image yields no lines.
func (d *Detector) Detect(img image.Image) []model.RasterLine {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	var lines []model.RasterLine
	lines = append(lines, d.detectHorizontal(img)...)
	lines = append(lines, d.detectVertical(img)...)
	return lines
}

// detectHorizontal scans each row left to right for ink runs.
func (d *Detector) detectHorizontal(img image.Image) []model.RasterLine {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	minLen := d.params.MinLengthPercent / 100 * float64(w)

	var raw []rawLine
	for y := 0; y < h; y++ {
		runStart := -1
		for x := 0; x <= w; x++ {
			ink := x < w && d.isInk(img, bounds.Min.X+x, bounds.Min.Y+y)
			if ink {
				if runStart < 0 {
					runStart = x
				}
				continue
			}
			if runStart >= 0 {
				if float64(x-runStart) >= minLen {
					raw = append(raw, rawLine{
						position: float64(y),
						start:    float64(runStart),
						end:      float64(x),
					})
				}
				runStart = -1
			}
		}
	}

	merged := d.merge(raw)

	out := make([]model.RasterLine, 0, len(merged))
	for _, l := range merged {
		out = append(out, model.RasterLine{
			Position:   l.position / float64(h) * 100,
			SpanStart:  l.start / float64(w) * 100,
			SpanEnd:    l.end / float64(w) * 100,
			Horizontal: true,
		})
	}
	return out
}

// detectVertical is the transpose: scan each column top to bottom.
func (d *Detector) detectVertical(img image.Image) []model.RasterLine {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	minLen := d.params.MinLengthPercent / 100 * float64(h)

	var raw []rawLine
	for x := 0; x < w; x++ {
		runStart := -1
		for y := 0; y <= h; y++ {
			ink := y < h && d.isInk(img, bounds.Min.X+x, bounds.Min.Y+y)
			if ink {
				if runStart < 0 {
					runStart = y
				}
				continue
			}
			if runStart >= 0 {
				if float64(y-runStart) >= minLen {
					raw = append(raw, rawLine{
						position: float64(x),
						start:    float64(runStart),
						end:      float64(y),
					})
				}
				runStart = -1
			}
		}
	}

	merged := d.merge(raw)

	out := make([]model.RasterLine, 0, len(merged))
	for _, l := range merged {
		out = append(out, model.RasterLine{
			Position:   l.position / float64(w) * 100,
			SpanStart:  l.start / float64(h) * 100,
			SpanEnd:    l.end / float64(h) * 100,
			Horizontal: false,
		})
	}
	return out
}

// merge combines runs whose positions are within MergeDistance pixels and
// whose extents overlap. The merged position is the midpoint and the
// extent is the union, so one anti-aliased rule collapses to one line.
func (d *Detector) merge(raw []rawLine) []rawLine {
	if len(raw) == 0 {
		return nil
	}

	sort.Slice(raw, func(i, j int) bool {
		if raw[i].position != raw[j].position {
			return raw[i].position < raw[j].position
		}
		return raw[i].start < raw[j].start
	})

	merged := []rawLine{raw[0]}
	for _, next := range raw[1:] {
		cur := &merged[len(merged)-1]

		closeEnough := next.position-cur.position <= float64(d.params.MergeDistance)
		overlapping := next.start < cur.end && next.end > cur.start

		if closeEnough && overlapping {
			cur.position = (cur.position + next.position) / 2
			cur.start = math.Min(cur.start, next.start)
			cur.end = math.Max(cur.end, next.end)
		} else {
			merged = append(merged, next)
		}
	}

	return merged
}

// isInk reports whether the pixel at (x, y) is dark enough to count as
// ink. For multichannel images channel 0 is used.
func (d *Detector) isInk(img image.Image, x, y int) bool {
	switch im := img.(type) {
	case *image.Gray:
		return im.GrayAt(x, y).Y < d.params.Threshold
	default:
		r, _, _, _ := img.At(x, y).RGBA()
		return uint8(r>>8) < d.params.Threshold
	}
}

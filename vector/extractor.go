package vector

import (
	"math"

	"github.com/tsawler/fieldsnap/contentstream"
	"github.com/tsawler/fieldsnap/model"
)

// Result holds the geometry recovered from one page, in page space.
type Result struct {
	Lines []model.VectorLine
	Rects []model.VectorRect
}

// Extractor interprets drawing operations into lines and rectangles.
type Extractor struct {
	// AxisTolerance is the maximum cross-axis delta (in device units) for
	// a segment to count as horizontal or vertical.
	AxisTolerance float64

	// MinExtent is the minimum main-axis extent (in device units) for a
	// segment to be kept. Shorter marks are tick marks and glyph strokes,
	// not field borders.
	MinExtent float64

	// RectNoiseFloor is the minimum width and height (in device units)
	// for a re operator to produce a rectangle.
	RectNoiseFloor float64
}

// NewExtractor creates an extractor with the default thresholds.
func NewExtractor() *Extractor {
	return &Extractor{
		AxisTolerance:  1.0,
		MinExtent:      5.0,
		RectNoiseFloor: 1.0,
	}
}

// segment is one device-space path segment awaiting a paint operator.
type segment struct {
	start, end model.Point
}

// state is the interpreter state threaded through the operation fold.
// It is passed and returned by value: there is no ambient mutable state.
type state struct {
	ctm      model.Matrix
	ctmStack []model.Matrix

	current      model.Point
	subpathStart model.Point
	hasCurrent   bool

	// pending holds device-space segments accumulated since the last
	// paint operator.
	pending []segment
}

func newState() state {
	return state{ctm: model.Identity()}
}

// Extract interprets a parsed operation sequence against a page of the
// given device dimensions.
func (e *Extractor) Extract(ops []contentstream.Operation, pageWidth, pageHeight float64) Result {
	var res Result
	st := newState()

	for _, op := range ops {
		st = e.apply(st, op, pageWidth, pageHeight, &res)
	}

	// Some producers omit the final paint operator. Commit whatever is
	// still pending so their rules are not lost.
	e.commit(st.pending, pageWidth, pageHeight, &res)

	return res
}

// ExtractFromBytes parses raw stream data and extracts its geometry. A
// parse error truncates the stream at the anomaly; the operations parsed
// before it are still interpreted.
func (e *Extractor) ExtractFromBytes(data []byte, pageWidth, pageHeight float64) Result {
	parser := contentstream.NewParser(data)
	ops, _ := parser.Parse()
	return e.Extract(ops, pageWidth, pageHeight)
}

// apply processes a single operation, returning the successor state.
// Operations with missing or non-numeric operands are skipped.
func (e *Extractor) apply(st state, op contentstream.Operation, pageW, pageH float64, res *Result) state {
	switch op.Operator {
	case "q":
		st.ctmStack = append(st.ctmStack, st.ctm)

	case "Q":
		// Stack underflow means an unbalanced stream; keep going.
		if n := len(st.ctmStack); n > 0 {
			st.ctm = st.ctmStack[n-1]
			st.ctmStack = st.ctmStack[:n-1]
		}

	case "cm":
		if v, ok := op.Floats(); ok && len(v) == 6 {
			m := model.Matrix{v[0], v[1], v[2], v[3], v[4], v[5]}
			st.ctm = m.Multiply(st.ctm)
		}

	case "m":
		if v, ok := op.Floats(); ok && len(v) == 2 {
			st.current = model.Point{X: v[0], Y: v[1]}
			st.subpathStart = st.current
			st.hasCurrent = true
		}

	case "l":
		if v, ok := op.Floats(); ok && len(v) == 2 {
			target := model.Point{X: v[0], Y: v[1]}
			if st.hasCurrent {
				st.pending = append(st.pending, segment{
					start: st.ctm.Transform(st.current),
					end:   st.ctm.Transform(target),
				})
			} else {
				st.subpathStart = target
			}
			st.current = target
			st.hasCurrent = true
		}

	case "c", "v", "y":
		// Curves are never field borders; track the endpoint only so the
		// rest of the path stays anchored.
		if v, ok := op.Floats(); ok && len(v) >= 2 {
			st.current = model.Point{X: v[len(v)-2], Y: v[len(v)-1]}
			st.hasCurrent = true
		}

	case "re":
		if v, ok := op.Floats(); ok && len(v) == 4 {
			st = e.rectangle(st, v[0], v[1], v[2], v[3], pageW, pageH, res)
		}

	case "h":
		st = closeSubpath(st)

	case "s", "b", "b*":
		// Close-and-paint variants.
		st = closeSubpath(st)
		e.commit(st.pending, pageW, pageH, res)
		st.pending = nil
		st.hasCurrent = false

	case "S", "f", "F", "f*", "B", "B*", "n":
		e.commit(st.pending, pageW, pageH, res)
		st.pending = nil
		st.hasCurrent = false
	}

	return st
}

// closeSubpath appends the closing segment back to the subpath start.
func closeSubpath(st state) state {
	if !st.hasCurrent || st.current == st.subpathStart {
		return st
	}
	st.pending = append(st.pending, segment{
		start: st.ctm.Transform(st.current),
		end:   st.ctm.Transform(st.subpathStart),
	})
	st.current = st.subpathStart
	return st
}

// rectangle handles the re operator: emit the rect itself plus its four
// border segments, and leave the current point at the rect origin as the
// path operators do.
func (e *Extractor) rectangle(st state, x, y, w, h float64, pageW, pageH float64, res *Result) state {
	corners := [4]model.Point{
		st.ctm.Transform(model.Point{X: x, Y: y}),
		st.ctm.Transform(model.Point{X: x + w, Y: y}),
		st.ctm.Transform(model.Point{X: x + w, Y: y + h}),
		st.ctm.Transform(model.Point{X: x, Y: y + h}),
	}

	minX, maxX := corners[0].X, corners[0].X
	minY, maxY := corners[0].Y, corners[0].Y
	for _, c := range corners[1:] {
		minX = math.Min(minX, c.X)
		maxX = math.Max(maxX, c.X)
		minY = math.Min(minY, c.Y)
		maxY = math.Max(maxY, c.Y)
	}

	if maxX-minX > e.RectNoiseFloor && maxY-minY > e.RectNoiseFloor {
		// Device space has its origin at the bottom-left, so the page-space
		// top corner comes from the device maxY.
		topLeft := model.DeviceToPage(model.Point{X: minX, Y: maxY}, pageW, pageH)
		bottomRight := model.DeviceToPage(model.Point{X: maxX, Y: minY}, pageW, pageH)
		res.Rects = append(res.Rects, model.VectorRect{
			Left:   topLeft.X,
			Top:    topLeft.Y,
			Width:  bottomRight.X - topLeft.X,
			Height: bottomRight.Y - topLeft.Y,
		})
	}

	for i := range corners {
		st.pending = append(st.pending, segment{
			start: corners[i],
			end:   corners[(i+1)%4],
		})
	}

	st.current = model.Point{X: x, Y: y}
	st.subpathStart = st.current
	st.hasCurrent = true
	return st
}

// commit classifies the pending segments and appends the axis-aligned
// ones, converted to page space, to the result.
func (e *Extractor) commit(pending []segment, pageW, pageH float64, res *Result) {
	for _, seg := range pending {
		dx := math.Abs(seg.end.X - seg.start.X)
		dy := math.Abs(seg.end.Y - seg.start.Y)

		isHorizontal := dy < e.AxisTolerance && dx > e.MinExtent
		isVertical := dx < e.AxisTolerance && dy > e.MinExtent
		if !isHorizontal && !isVertical {
			continue
		}

		p1 := model.DeviceToPage(seg.start, pageW, pageH)
		p2 := model.DeviceToPage(seg.end, pageW, pageH)

		res.Lines = append(res.Lines, model.VectorLine{
			X1:           p1.X,
			Y1:           p1.Y,
			X2:           p2.X,
			Y2:           p2.Y,
			IsHorizontal: isHorizontal,
			IsVertical:   isVertical,
		})
	}
}

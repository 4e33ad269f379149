package vector

import (
	"math"
	"testing"
)

const (
	pageW = 100.0
	pageH = 100.0
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExtract_HorizontalLine(t *testing.T) {
	e := NewExtractor()
	res := e.ExtractFromBytes([]byte("10 50 m 60 50 l S"), pageW, pageH)

	if len(res.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(res.Lines))
	}

	line := res.Lines[0]
	if !line.IsHorizontal || line.IsVertical {
		t.Errorf("expected horizontal classification, got %+v", line)
	}
	// Device Y=50 on a 100-unit page flips to page Y=50.
	if !almostEqual(line.Y1, 50) || !almostEqual(line.Y2, 50) {
		t.Errorf("expected Y=50, got %f and %f", line.Y1, line.Y2)
	}
	if !almostEqual(line.X1, 10) || !almostEqual(line.X2, 60) {
		t.Errorf("expected X 10..60, got %f..%f", line.X1, line.X2)
	}
}

func TestExtract_VerticalLine(t *testing.T) {
	e := NewExtractor()
	res := e.ExtractFromBytes([]byte("30 10 m 30 90 l S"), pageW, pageH)

	if len(res.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(res.Lines))
	}

	line := res.Lines[0]
	if !line.IsVertical || line.IsHorizontal {
		t.Errorf("expected vertical classification, got %+v", line)
	}
	if !almostEqual(line.X1, 30) || !almostEqual(line.X2, 30) {
		t.Errorf("expected X=30, got %f and %f", line.X1, line.X2)
	}
	// Device 10..90 flips to page 90..10.
	if !almostEqual(line.Y1, 90) || !almostEqual(line.Y2, 10) {
		t.Errorf("expected Y 90..10, got %f..%f", line.Y1, line.Y2)
	}
}

func TestExtract_DiscardsNonAxisAligned(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name   string
		stream string
	}{
		{"diagonal", "10 10 m 60 60 l S"},
		{"too short", "10 50 m 13 50 l S"},
		{"near-diagonal", "10 50 m 60 53 l S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.ExtractFromBytes([]byte(tt.stream), pageW, pageH)
			if len(res.Lines) != 0 {
				t.Errorf("expected no lines, got %d", len(res.Lines))
			}
		})
	}
}

func TestExtract_Rectangle(t *testing.T) {
	e := NewExtractor()
	res := e.ExtractFromBytes([]byte("10 20 30 40 re S"), pageW, pageH)

	if len(res.Rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(res.Rects))
	}

	r := res.Rects[0]
	// Device rect y 20..60 flips to page top 40, height 40.
	if !almostEqual(r.Left, 10) || !almostEqual(r.Top, 40) ||
		!almostEqual(r.Width, 30) || !almostEqual(r.Height, 40) {
		t.Errorf("unexpected rect %+v", r)
	}

	// The four borders commit as path segments too: two horizontal, two
	// vertical.
	var horiz, vert int
	for _, line := range res.Lines {
		if line.IsHorizontal {
			horiz++
		}
		if line.IsVertical {
			vert++
		}
	}
	if horiz != 2 || vert != 2 {
		t.Errorf("expected 2 horizontal and 2 vertical borders, got %d and %d", horiz, vert)
	}
}

func TestExtract_RectangleNoiseFloor(t *testing.T) {
	e := NewExtractor()
	res := e.ExtractFromBytes([]byte("10 20 0.5 40 re f"), pageW, pageH)

	if len(res.Rects) != 0 {
		t.Errorf("expected hairline rect to be dropped, got %d", len(res.Rects))
	}
}

func TestExtract_CTMScale(t *testing.T) {
	e := NewExtractor()
	res := e.ExtractFromBytes([]byte("q 2 0 0 2 0 0 cm 5 25 m 30 25 l S Q"), pageW, pageH)

	if len(res.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(res.Lines))
	}

	line := res.Lines[0]
	if !almostEqual(line.X1, 10) || !almostEqual(line.X2, 60) {
		t.Errorf("expected X 10..60 after scaling, got %f..%f", line.X1, line.X2)
	}
	if !almostEqual(line.Y1, 50) {
		t.Errorf("expected Y=50 after scaling, got %f", line.Y1)
	}
}

func TestExtract_CTMComposition(t *testing.T) {
	// Scale after translate: the point is scaled first, then translated by
	// the earlier matrix.
	e := NewExtractor()
	res := e.ExtractFromBytes([]byte("1 0 0 1 10 0 cm 2 0 0 2 0 0 cm 5 25 m 30 25 l S"), pageW, pageH)

	if len(res.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(res.Lines))
	}
	line := res.Lines[0]
	if !almostEqual(line.X1, 20) || !almostEqual(line.X2, 70) {
		t.Errorf("expected X 20..70, got %f..%f", line.X1, line.X2)
	}
}

func TestExtract_SaveRestore(t *testing.T) {
	// The scale is confined between q and Q; the second line is untransformed.
	stream := "q 2 0 0 2 0 0 cm 5 25 m 30 25 l S Q 10 30 m 60 30 l S"
	e := NewExtractor()
	res := e.ExtractFromBytes([]byte(stream), pageW, pageH)

	if len(res.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(res.Lines))
	}
	if !almostEqual(res.Lines[1].X1, 10) || !almostEqual(res.Lines[1].X2, 60) {
		t.Errorf("expected second line untransformed, got %+v", res.Lines[1])
	}
}

func TestExtract_ClosePath(t *testing.T) {
	// Open L shape closed back to the start: bottom, right, and a diagonal
	// closing segment that is discarded.
	e := NewExtractor()
	res := e.ExtractFromBytes([]byte("10 10 m 60 10 l 60 60 l h S"), pageW, pageH)

	if len(res.Lines) != 2 {
		t.Fatalf("expected 2 axis-aligned lines, got %d", len(res.Lines))
	}
}

func TestExtract_CurvesIgnored(t *testing.T) {
	// The curve contributes no segment, but its endpoint anchors the
	// following lineto.
	e := NewExtractor()
	res := e.ExtractFromBytes([]byte("10 50 m 20 60 30 60 40 50 c 90 50 l S"), pageW, pageH)

	if len(res.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(res.Lines))
	}
	line := res.Lines[0]
	if !almostEqual(line.X1, 40) || !almostEqual(line.X2, 90) {
		t.Errorf("expected X 40..90, got %f..%f", line.X1, line.X2)
	}
}

func TestExtract_MissingFinalPaint(t *testing.T) {
	// Producers that omit the trailing paint operator still get their
	// pending segments committed at end of stream.
	e := NewExtractor()
	res := e.ExtractFromBytes([]byte("10 50 m 60 50 l"), pageW, pageH)

	if len(res.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(res.Lines))
	}
}

func TestExtract_EndPathCommits(t *testing.T) {
	e := NewExtractor()
	res := e.ExtractFromBytes([]byte("10 50 m 60 50 l n"), pageW, pageH)

	if len(res.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(res.Lines))
	}
}

func TestExtract_MalformedStream(t *testing.T) {
	tests := []struct {
		name   string
		stream string
	}{
		{"empty", ""},
		{"garbage", ";;;"},
		{"unbalanced restore", "Q Q Q 10 50 m 60 50 l S"},
		{"truncated operands", "10 m"},
		{"line before move", "60 50 l S"},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must not panic; partial results are acceptable.
			_ = e.ExtractFromBytes([]byte(tt.stream), pageW, pageH)
		})
	}
}

func TestExtract_RecoversPrefixBeforeAnomaly(t *testing.T) {
	e := NewExtractor()
	res := e.ExtractFromBytes([]byte("10 50 m 60 50 l S }bad"), pageW, pageH)

	if len(res.Lines) != 1 {
		t.Fatalf("expected the committed prefix to survive, got %d lines", len(res.Lines))
	}
}

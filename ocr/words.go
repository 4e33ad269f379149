// Package ocr consumes text-recognition output and aligns field labels to
// recognized words.
//
// The primary input is a cached recognition result: a JSON document with
// page dimensions and a list of words, each carrying a 4-corner polygon
// and a confidence. Polygons are reduced to axis-aligned boxes and
// converted to page space.
//
// The [Matcher] aligns a field's label string to a contiguous run of
// words, combining token overlap, edit-distance similarity, and spatial
// proximity to the field's current estimate.
//
// An optional live recognition source backed by Tesseract is available
// behind the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/tsawler/fieldsnap/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Units a recognition result may be expressed in.
const (
	UnitPixel = "pixel"
	UnitInch  = "inch"
)

// RawWord is one recognized word as it appears on the wire: the polygon
// is 4 corners in arbitrary winding, flattened to [x1 y1 ... x4 y4].
type RawWord struct {
	Content    string    `json:"content"`
	Polygon    []float64 `json:"polygon"`
	Confidence float64   `json:"confidence"`
}

// Result is a page's recognition output.
type Result struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Unit   string    `json:"unit"`
	Words  []RawWord `json:"words"`
}

// ParseResult decodes a recognition result document.
func ParseResult(data []byte) (*Result, error) {
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to parse recognition result: %w", err)
	}
	return &res, nil
}

// PageWords converts the raw words to page space. Words with degenerate
// polygons are dropped. The unit does not matter here: the polygon and
// the page dimensions share it, and only their ratio survives.
func (r *Result) PageWords() []model.Word {
	if r.Width <= 0 || r.Height <= 0 {
		return nil
	}

	words := make([]model.Word, 0, len(r.Words))
	for _, raw := range r.Words {
		box, ok := polygonToBox(raw.Polygon)
		if !ok {
			continue
		}

		words = append(words, model.Word{
			Content: raw.Content,
			Box: model.Box{
				Left:   box.Left / r.Width * 100,
				Top:    box.Top / r.Height * 100,
				Width:  box.Width / r.Width * 100,
				Height: box.Height / r.Height * 100,
			},
			Confidence: raw.Confidence,
		})
	}
	return words
}

// polygonToBox reduces a 4-corner polygon (any winding) to its axis-aligned
// bounding box by taking the min/max over the corner coordinates.
func polygonToBox(polygon []float64) (model.Box, bool) {
	if len(polygon) != 8 {
		return model.Box{}, false
	}

	minX, maxX := polygon[0], polygon[0]
	minY, maxY := polygon[1], polygon[1]
	for i := 2; i < 8; i += 2 {
		x, y := polygon[i], polygon[i+1]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	if maxX <= minX || maxY <= minY {
		return model.Box{}, false
	}

	return model.Box{
		Left:   minX,
		Top:    minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}, true
}

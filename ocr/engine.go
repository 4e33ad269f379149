//go:build ocr

package ocr

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/fieldsnap/model"
)

// Engine is a live recognition source backed by Tesseract. It produces
// the same word stream a cached recognition result would, for pages that
// have no cache yet.
//
// The engine should be closed when no longer needed to release resources.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a live recognition engine.
func NewEngine() (*Engine, error) {
	return &Engine{client: gosseract.NewClient()}, nil
}

// Close releases recognition resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages
// can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (e *Engine) SetLanguage(lang string) error {
	return e.client.SetLanguage(lang)
}

// RecognizeWords runs recognition on image data (PNG, JPEG) and returns
// the recognized words in page space.
func (e *Engine) RecognizeWords(imageData []byte) ([]model.Word, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to read image dimensions: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("image has no dimensions")
	}

	if err := e.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("recognition failed: %w", err)
	}

	w, h := float64(cfg.Width), float64(cfg.Height)
	words := make([]model.Word, 0, len(boxes))
	for _, b := range boxes {
		if b.Word == "" {
			continue
		}
		words = append(words, model.Word{
			Content: b.Word,
			Box: model.Box{
				Left:   float64(b.Box.Min.X) / w * 100,
				Top:    float64(b.Box.Min.Y) / h * 100,
				Width:  float64(b.Box.Dx()) / w * 100,
				Height: float64(b.Box.Dy()) / h * 100,
			},
			Confidence: b.Confidence / 100,
		})
	}

	return words, nil
}

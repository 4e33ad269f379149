//go:build !ocr

package ocr

import (
	"errors"

	"github.com/tsawler/fieldsnap/model"
)

// ErrEngineNotEnabled is returned when live recognition is requested but
// engine support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrEngineNotEnabled = errors.New("recognition engine not enabled; rebuild with -tags ocr")

// Engine is a stub recognition source used when the "ocr" build tag is
// not set. All operations return ErrEngineNotEnabled; cached recognition
// results keep working without the tag.
type Engine struct{}

// NewEngine returns an error indicating engine support is not enabled.
// To enable it, rebuild with: go build -tags ocr
func NewEngine() (*Engine, error) {
	return nil, ErrEngineNotEnabled
}

// Close is a no-op for the stub engine.
// It is safe to call on a nil engine.
func (e *Engine) Close() error {
	return nil
}

// SetLanguage returns an error indicating engine support is not enabled.
func (e *Engine) SetLanguage(lang string) error {
	return ErrEngineNotEnabled
}

// RecognizeWords returns an error indicating engine support is not enabled.
func (e *Engine) RecognizeWords(imageData []byte) ([]model.Word, error) {
	return nil, ErrEngineNotEnabled
}

// Package fieldsnap provides a fluent API for refining form-field
// bounding-box estimates against the evidence a page itself provides:
// ruled lines drawn in the page's vector content, lines detected in a
// rasterized page image, and label text from OCR results.
//
// Basic usage:
//
//	refined, warnings := fieldsnap.Fields(estimates).
//	    WithContentStream(stream, pageWidth, pageHeight).
//	    WithPageImage(pagePNG).
//	    WithRecognizedText(ocrJSON).
//	    Refine()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", fieldsnap.FormatWarnings(warnings))
//	}
//
// Refinement is advisory: a missing or undecodable evidence source
// degrades to a warning and the affected stages pass fields through
// unchanged. For advanced use cases, the lower-level vector, raster,
// ocr, snap, and score packages are also available.
package fieldsnap

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/tsawler/fieldsnap/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Fields starts a refinement over the given field estimates with the
// default configuration.
//
// Example:
//
//	refined, _ := fieldsnap.Fields(estimates).WithPageImage(img).Refine()
func Fields(fields []model.Field) *Refiner {
	return &Refiner{
		fields: fields,
		config: DefaultConfig(),
	}
}

// FieldsFromJSON parses a field estimate list from its JSON form.
func FieldsFromJSON(data []byte) ([]model.Field, error) {
	var fields []model.Field
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse field list: %w", err)
	}
	return fields, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	fields := fieldsnap.Must(fieldsnap.FieldsFromJSON(data))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

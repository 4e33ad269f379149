package raster

import (
	"bytes"
	"fmt"
	"image"

	// Register the stdlib decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Pages arrive in whatever format the rasterizer produced; register
	// the extended decoders too.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/fieldsnap/model"
)

// DecodeImage decodes page bitmap bytes in any registered format
// (PNG, JPEG, GIF, BMP, TIFF, WebP).
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode page image: %w", err)
	}
	return img, nil
}

// DetectFromBytes decodes the bitmap and runs line detection on it.
func (d *Detector) DetectFromBytes(data []byte) ([]model.RasterLine, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return d.Detect(img), nil
}

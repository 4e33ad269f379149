package fieldsnap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/tsawler/fieldsnap/model"
	"github.com/tsawler/fieldsnap/snap"
)

func estimate(label string, left, top, width, height float64) model.Field {
	return model.Field{
		Label:       label,
		FieldType:   model.FieldText,
		Coordinates: model.Box{Left: left, Top: top, Width: width, Height: height},
	}
}

func TestFieldsFromJSON(t *testing.T) {
	data := []byte(`[
		{"label": "Name", "fieldType": "text", "coordinates": {"left": 10, "top": 20, "width": 30, "height": 3}},
		{"label": "Agree", "fieldType": "checkbox", "coordinates": {"left": 50, "top": 40, "width": 2.5, "height": 2.5}}
	]`)

	fields, err := FieldsFromJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Label != "Name" || fields[0].FieldType != model.FieldText {
		t.Errorf("unexpected first field: %+v", fields[0])
	}
	if fields[1].Coordinates.Width != 2.5 {
		t.Errorf("unexpected checkbox width %f", fields[1].Coordinates.Width)
	}

	if _, err := FieldsFromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestRefineWithWords(t *testing.T) {
	fields := []model.Field{estimate("Name", 10, 20, 30, 3)}
	words := []model.Word{
		{Content: "Name", Box: model.Box{Left: 10, Top: 20, Width: 8, Height: 3}, Confidence: 0.95},
	}

	refined, warnings := Fields(fields).WithWords(words).Refine()
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if refined[0].Coordinates.Left != 18 {
		t.Errorf("expected left 18 after label snap, got %f", refined[0].Coordinates.Left)
	}

	// The caller's slice is untouched.
	if fields[0].Coordinates.Left != 10 {
		t.Errorf("input mutated: %+v", fields[0].Coordinates)
	}
}

func TestRefineWithContentStream(t *testing.T) {
	// A horizontal line at device y=376 on an 800-unit page: page top
	// percent 53, under a field whose bottom sits at 52.
	stream := []byte("30 376 m 270 376 l S")
	fields := []model.Field{estimate("Amount", 5, 50, 40, 2)}

	refined, warnings := Fields(fields).
		WithContentStream(stream, 600, 800).
		Refine()
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if refined[0].Coordinates.Top != 51 {
		t.Errorf("expected top 51 after line snap, got %f", refined[0].Coordinates.Top)
	}
}

func TestRefineWithPageImage(t *testing.T) {
	// White page with a dark rule across rows 529-530.
	img := image.NewGray(image.Rect(0, 0, 600, 1000))
	for y := 0; y < 1000; y++ {
		for x := 0; x < 600; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for y := 529; y <= 530; y++ {
		for x := 30; x < 270; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	fields := []model.Field{estimate("Amount", 5, 50, 40, 2)}
	refined, warnings := Fields(fields).WithPageImage(buf.Bytes()).Refine()
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	got := refined[0].Coordinates.Top
	if got < 50.8 || got > 51.2 {
		t.Errorf("expected top near 51 after raster line snap, got %f", got)
	}
}

func TestRefineDegradesOnBadEvidence(t *testing.T) {
	fields := []model.Field{estimate("Name", 10, 20, 30, 3)}

	refined, warnings := Fields(fields).
		WithPageImage([]byte("not an image")).
		WithRecognizedText([]byte("{not json")).
		WithContentStream([]byte("1 2 m"), 0, 0).
		Refine()

	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
	if refined[0].Coordinates != fields[0].Coordinates {
		t.Errorf("expected unchanged coordinates, got %+v", refined[0].Coordinates)
	}
	if FormatWarnings(warnings) == "" {
		t.Error("expected formatted warnings")
	}
}

func TestRefineWithRecognizedText(t *testing.T) {
	ocrJSON := []byte(`{
		"width": 1000, "height": 800, "unit": "pixel",
		"words": [
			{"content": "Name", "polygon": [100, 160, 180, 160, 180, 184, 100, 184], "confidence": 0.97}
		]
	}`)
	fields := []model.Field{estimate("Name", 10, 20, 30, 3)}

	refined, warnings := Fields(fields).WithRecognizedText(ocrJSON).Refine()
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if refined[0].Coordinates.Left != 18 {
		t.Errorf("expected left 18 after label snap, got %f", refined[0].Coordinates.Left)
	}
}

func TestRefineCustomStages(t *testing.T) {
	fields := []model.Field{
		estimate("Name", 10, 20, 30, 3),
		estimate("Name", 11, 21, 30, 3),
	}

	refined, _ := Fields(fields).
		WithStages(snap.DedupStage{Tolerance: snap.DuplicateTolerance}).
		Refine()
	if len(refined) != 1 {
		t.Errorf("expected dedup-only pipeline to keep 1 field, got %d", len(refined))
	}
}

func TestRefineDeduplicated(t *testing.T) {
	fields := []model.Field{
		estimate("Name", 10, 20, 30, 3),
		estimate("Full name", 10.5, 20.5, 30, 3),
	}

	refined, _ := Fields(fields).Deduplicated().Refine()
	if len(refined) != 1 {
		t.Errorf("expected position dedup to keep 1 field, got %d", len(refined))
	}
}

func TestEvidenceAccumulates(t *testing.T) {
	words := []model.Word{{Content: "Name", Box: model.Box{Left: 10, Top: 20, Width: 8, Height: 3}}}

	r := Fields(nil).WithWords(words).WithWords(words)
	if got := len(r.Evidence().Words); got != 2 {
		t.Errorf("expected 2 words accumulated, got %d", got)
	}
}

func TestMust(t *testing.T) {
	fields := Must(FieldsFromJSON([]byte(`[{"label":"A","fieldType":"text","coordinates":{"left":1,"top":2,"width":3,"height":4}}]`)))
	if len(fields) != 1 {
		t.Errorf("expected 1 field, got %d", len(fields))
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on error")
		}
	}()
	Must(FieldsFromJSON([]byte("bad")))
}

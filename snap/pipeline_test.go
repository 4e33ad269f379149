package snap

import (
	"testing"

	"github.com/tsawler/fieldsnap/model"
	"github.com/tsawler/fieldsnap/ocr"
)

func TestPipelineRun(t *testing.T) {
	evidence := model.PageEvidence{
		Words: []model.Word{
			{Content: "Name", Box: model.Box{Left: 10, Top: 20, Width: 8, Height: 3}, Confidence: 0.95},
		},
		VectorLines: []model.VectorLine{
			{X1: 18, Y1: 23.5, X2: 40, Y2: 23.5, IsHorizontal: true},
		},
	}
	fields := []model.Field{textField("Name", 10, 20, 30, 3)}

	p := NewPipeline(
		LabelStage{Matcher: ocr.NewMatcher(), Snapper: NewLabelSnapper()},
		VectorLineStage{Snapper: NewLineSnapper()},
	)
	got := p.Run(fields, evidence)

	want := model.Box{Left: 18, Top: 20.5, Width: 22, Height: 3}
	if got[0].Coordinates != want {
		t.Errorf("expected %+v, got %+v", want, got[0].Coordinates)
	}

	// The input slice is never modified.
	if fields[0].Coordinates.Left != 10 {
		t.Errorf("input mutated: %+v", fields[0].Coordinates)
	}
}

// A field whose box overlaps its label and whose true bottom rests on a
// ruled line: snapping the label first lets line-snap find the right rule,
// while line-snap first anchors to a nearby unrelated rule.
func TestPipelineOrderMatters(t *testing.T) {
	evidence := model.PageEvidence{
		Words: []model.Word{
			{Content: "Name", Box: model.Box{Left: 10, Top: 19, Width: 8, Height: 3}, Confidence: 0.95},
		},
		VectorLines: []model.VectorLine{
			{X1: 5, Y1: 22.4, X2: 25, Y2: 22.4, IsHorizontal: true},  // unrelated rule
			{X1: 18, Y1: 23.5, X2: 40, Y2: 23.5, IsHorizontal: true}, // the field's rule
		},
	}
	fields := []model.Field{textField("Name", 10, 19, 30, 3)}
	truth := model.Box{Left: 18, Top: 20.5, Width: 22, Height: 3}

	label := LabelStage{Matcher: ocr.NewMatcher(), Snapper: NewLabelSnapper()}
	line := VectorLineStage{Snapper: NewLineSnapper()}

	labelFirst := NewPipeline(label, line).Run(fields, evidence)
	lineFirst := NewPipeline(line, label).Run(fields, evidence)

	iouLabelFirst := labelFirst[0].Coordinates.IoU(truth)
	iouLineFirst := lineFirst[0].Coordinates.IoU(truth)

	if iouLabelFirst <= iouLineFirst {
		t.Errorf("expected label-first to beat line-first: %f vs %f", iouLabelFirst, iouLineFirst)
	}
	if labelFirst[0].Coordinates != truth {
		t.Errorf("expected label-first to recover the true box, got %+v", labelFirst[0].Coordinates)
	}
}

func TestPipelineMissingEvidence(t *testing.T) {
	fields := []model.Field{
		textField("Name", 10, 20, 30, 3),
		checkbox(50, 50, 2.5),
	}

	got := Canonical().Run(fields, model.PageEvidence{})
	if len(got) != len(fields) {
		t.Fatalf("expected %d fields, got %d", len(fields), len(got))
	}
	for i := range fields {
		if got[i].Coordinates != fields[i].Coordinates {
			t.Errorf("field %d changed with no evidence: %+v", i, got[i].Coordinates)
		}
	}
}

func TestPipelineDescribe(t *testing.T) {
	want := "label > raster-line > vector-line > rect"
	if got := Canonical().Describe(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestOrderings(t *testing.T) {
	pipelines := Orderings(CanonicalStages())
	if len(pipelines) != 24 {
		t.Fatalf("expected 24 orderings of 4 stages, got %d", len(pipelines))
	}

	seen := make(map[string]bool)
	for _, p := range pipelines {
		desc := p.Describe()
		if seen[desc] {
			t.Errorf("duplicate ordering %q", desc)
		}
		seen[desc] = true
	}
}

func TestDedupStages(t *testing.T) {
	fields := []model.Field{
		textField("Name", 10, 20, 30, 3),
		textField("Name", 11, 21, 30, 3),
		textField("Nickname", 10.5, 20.5, 30, 3),
	}

	exact := DedupStage{Tolerance: DuplicateTolerance}.Apply(fields, model.PageEvidence{})
	if len(exact) != 2 {
		t.Errorf("expected exact dedup to keep 2 fields, got %d", len(exact))
	}

	position := PositionDedupStage{Tolerance: PositionTolerance}.Apply(fields, model.PageEvidence{})
	if len(position) != 1 {
		t.Errorf("expected position dedup to keep 1 field, got %d", len(position))
	}
}

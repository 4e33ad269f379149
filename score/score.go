package score

import (
	"sort"
	"strings"

	"github.com/tsawler/fieldsnap/model"
	"github.com/tsawler/fieldsnap/ocr"
)

// Weights distribute the component metrics into the overall score. Each
// component is a percentage; the weights should sum to 1.
type Weights struct {
	Detection     float64
	Precision     float64
	AvgIoU        float64
	TypeAccuracy  float64
	LabelAccuracy float64
}

// DefaultWeights returns the benchmark's standard metric weighting.
func DefaultWeights() Weights {
	return Weights{
		Detection:     0.25,
		Precision:     0.10,
		AvgIoU:        0.30,
		TypeAccuracy:  0.20,
		LabelAccuracy: 0.15,
	}
}

// Scorer matches predicted fields to ground truth and aggregates the
// match quality into a Report.
type Scorer struct {
	// IoUThreshold is the minimum overlap for a pair to be matchable at
	// all; label agreement alone never pairs two disjoint boxes.
	IoUThreshold float64

	// IoUWeight and LabelWeight combine overlap and label similarity into
	// the pair score used for matching.
	IoUWeight   float64
	LabelWeight float64

	Weights Weights
}

// NewScorer creates a scorer with the default thresholds and weights.
func NewScorer() *Scorer {
	return &Scorer{
		IoUThreshold: 0.1,
		IoUWeight:    0.6,
		LabelWeight:  0.4,
		Weights:      DefaultWeights(),
	}
}

// pair is one matchable predicted/truth combination.
type pair struct {
	pred, truth int
	iou         float64
	labelSim    float64
	score       float64
}

// Score evaluates the predicted fields against ground truth and returns
// the full report.
func (s *Scorer) Score(predicted, truth []model.Field) Report {
	matches, missed, extra := s.match(predicted, truth)

	report := Report{
		Matches: matches,
		Missed:  missed,
		Extra:   extra,
	}

	if len(truth) > 0 {
		report.DetectionRate = float64(len(matches)) / float64(len(truth)) * 100
	}
	if len(predicted) > 0 {
		report.PrecisionRate = float64(len(matches)) / float64(len(predicted)) * 100
	}

	typeCorrect := 0
	iouSum, labelSum := 0.0, 0.0
	confusion := make(map[model.FieldType]map[model.FieldType]int)
	for _, m := range matches {
		iouSum += m.IoU
		labelSum += m.LabelSimilarity
		if m.TypeCorrect {
			typeCorrect++
		}

		tt, pt := m.Truth.FieldType, m.Predicted.FieldType
		if confusion[tt] == nil {
			confusion[tt] = make(map[model.FieldType]int)
		}
		confusion[tt][pt]++

		report.IoUDistribution.add(m.IoU)
	}
	if len(matches) > 0 {
		report.AvgIoU = iouSum / float64(len(matches)) * 100
		report.LabelAccuracy = labelSum / float64(len(matches)) * 100
		report.TypeAccuracy = float64(typeCorrect) / float64(len(matches)) * 100
		report.TypeConfusion = confusion
	}

	s.scoreTables(&report, predicted, truth)

	report.OverallScore = s.Weights.Detection*report.DetectionRate +
		s.Weights.Precision*report.PrecisionRate +
		s.Weights.AvgIoU*report.AvgIoU +
		s.Weights.TypeAccuracy*report.TypeAccuracy +
		s.Weights.LabelAccuracy*report.LabelAccuracy

	return report
}

// match pairs predicted fields with truth fields greedily: all matchable
// pairs are scored, sorted best-first, and accepted while both sides are
// still free. A stable sort keeps the result deterministic. This is an
// approximation of optimal assignment, which is accurate enough for
// benchmark comparison.
func (s *Scorer) match(predicted, truth []model.Field) ([]Match, []model.Field, []model.Field) {
	var pairs []pair
	for i, p := range predicted {
		for j, t := range truth {
			iou := p.Coordinates.IoU(t.EffectiveBox())
			if iou < s.IoUThreshold {
				continue
			}
			sim := labelSimilarity(p.Label, t.Label)
			pairs = append(pairs, pair{
				pred:     i,
				truth:    j,
				iou:      iou,
				labelSim: sim,
				score:    s.IoUWeight*iou + s.LabelWeight*sim,
			})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].score > pairs[b].score
	})

	var matches []Match
	predTaken := make(map[int]bool)
	truthTaken := make(map[int]bool)
	for _, p := range pairs {
		if predTaken[p.pred] || truthTaken[p.truth] {
			continue
		}
		predTaken[p.pred] = true
		truthTaken[p.truth] = true

		matches = append(matches, Match{
			Predicted:       predicted[p.pred],
			Truth:           truth[p.truth],
			IoU:             p.iou,
			LabelSimilarity: p.labelSim,
			TypeCorrect:     typesCompatible(predicted[p.pred].FieldType, truth[p.truth].FieldType),
		})
	}

	var missed, extra []model.Field
	for j, t := range truth {
		if !truthTaken[j] {
			missed = append(missed, t)
		}
	}
	for i, p := range predicted {
		if !predTaken[i] {
			extra = append(extra, p)
		}
	}
	return matches, missed, extra
}

// scoreTables fills the table supplement metrics: whether every truth
// table was predicted as a table, and the mean IoU over matched table
// fields as a stand-in for per-cell agreement.
func (s *Scorer) scoreTables(report *Report, predicted, truth []model.Field) {
	truthTables, predTables := 0, 0
	for _, t := range truth {
		if t.FieldType == model.FieldTable {
			truthTables++
		}
	}
	for _, p := range predicted {
		if p.FieldType == model.FieldTable {
			predTables++
		}
	}
	report.TableDetection = truthTables == 0 || predTables >= truthTables

	iouSum, n := 0.0, 0
	for _, m := range report.Matches {
		if m.Truth.FieldType == model.FieldTable {
			iouSum += m.IoU
			n++
		}
	}
	if n > 0 {
		report.TableCellAccuracy = iouSum / float64(n) * 100
	} else {
		report.TableCellAccuracy = 100
	}
}

// labelSimilarity compares two labels case-insensitively using the
// sequence-matcher ratio.
func labelSimilarity(pred, truth string) float64 {
	p := strings.ToLower(strings.TrimSpace(pred))
	t := strings.ToLower(strings.TrimSpace(truth))
	if p == "" || t == "" {
		return 0
	}
	if p == t {
		return 1
	}
	return ocr.Ratio(p, t)
}

// compatiblePairs lists type substitutions that count as correct: a plain
// text box for a textarea and a simple date for a linked date, in either
// direction.
var compatiblePairs = map[[2]string]bool{
	{"text", "textarea"}:   true,
	{"textarea", "text"}:   true,
	{"date", "linkeddate"}: true,
	{"linkeddate", "date"}: true,
}

func typesCompatible(pred, truth model.FieldType) bool {
	p := strings.ToLower(strings.TrimSpace(string(pred)))
	t := strings.ToLower(strings.TrimSpace(string(truth)))
	if p == t {
		return true
	}
	return compatiblePairs[[2]string{p, t}]
}

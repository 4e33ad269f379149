package score

import (
	"fmt"

	"github.com/tsawler/fieldsnap/model"
)

// Match is one accepted predicted/truth pairing with its agreement
// measures.
type Match struct {
	Predicted       model.Field `json:"predicted"`
	Truth           model.Field `json:"groundTruth"`
	IoU             float64     `json:"iou"`
	LabelSimilarity float64     `json:"labelSimilarity"`
	TypeCorrect     bool        `json:"typeCorrect"`
}

// IoUDistribution buckets matched-pair IoU values.
type IoUDistribution struct {
	Below25    int `json:"<25%"`
	From25To50 int `json:"25-50%"`
	From50To75 int `json:"50-75%"`
	Above75    int `json:">75%"`
}

func (d *IoUDistribution) add(iou float64) {
	switch {
	case iou < 0.25:
		d.Below25++
	case iou < 0.5:
		d.From25To50++
	case iou < 0.75:
		d.From50To75++
	default:
		d.Above75++
	}
}

// Report is the complete evaluation of one predicted field list against
// ground truth. Rates and accuracies are percentages in [0, 100].
type Report struct {
	DetectionRate float64 `json:"detectionRate"`
	PrecisionRate float64 `json:"precisionRate"`

	AvgIoU          float64         `json:"avgIoU"`
	IoUDistribution IoUDistribution `json:"iouDistribution"`

	TypeAccuracy  float64                                     `json:"typeAccuracy"`
	TypeConfusion map[model.FieldType]map[model.FieldType]int `json:"typeConfusion,omitempty"`

	LabelAccuracy float64 `json:"labelAccuracy"`

	TableDetection    bool    `json:"tableDetection"`
	TableCellAccuracy float64 `json:"tableCellAccuracy"`

	Matches []Match       `json:"matches"`
	Missed  []model.Field `json:"missed"`
	Extra   []model.Field `json:"extra"`

	OverallScore float64 `json:"overallScore"`
}

// Summary renders the headline numbers as a short human-readable block.
func (r Report) Summary() string {
	return fmt.Sprintf(
		"Detection: %.1f%% recall, %.1f%% precision\n"+
			"Coordinates: %.1f%% avg IoU\n"+
			"Types: %.1f%% correct\n"+
			"Labels: %.1f%% similarity\n"+
			"Overall: %.1f%%\n"+
			"Matched: %d, Missed: %d, Extra: %d\n",
		r.DetectionRate, r.PrecisionRate,
		r.AvgIoU,
		r.TypeAccuracy,
		r.LabelAccuracy,
		r.OverallScore,
		len(r.Matches), len(r.Missed), len(r.Extra),
	)
}

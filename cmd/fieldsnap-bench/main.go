// Command fieldsnap-bench scores field-boundary refinement pipelines
// against a ground-truth corpus. Each document directory provides field
// estimates, ground truth, and optional page evidence; the tool refines
// the estimates, scores the result, and ranks the pipeline orderings.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/fieldsnap"
	"github.com/tsawler/fieldsnap/model"
	"github.com/tsawler/fieldsnap/score"
	"github.com/tsawler/fieldsnap/snap"
)

func main() {
	cfg, err := loadFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	setupLogging(cfg.LogLevel)

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("benchmark failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

// document is one benchmark case: estimates, truth, and page evidence.
type document struct {
	name     string
	fields   []model.Field
	truth    []model.Field
	evidence model.PageEvidence
}

// result pairs a pipeline description with its reports across documents.
type result struct {
	mu      sync.Mutex
	reports map[string][]score.Report
}

func (r *result) add(pipeline string, report score.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reports == nil {
		r.reports = make(map[string][]score.Report)
	}
	r.reports[pipeline] = append(r.reports[pipeline], report)
}

func run(ctx context.Context, cfg *config) error {
	dirs, err := discover(cfg.Dir)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no document directories with fields.json under %s", cfg.Dir)
	}
	slog.Info("benchmark starting", "documents", len(dirs), "workers", cfg.Workers, "orderings", cfg.Orderings)

	pipelines := []*snap.Pipeline{snap.Canonical()}
	if cfg.Orderings {
		pipelines = snap.Orderings(snap.CanonicalStages())
	}
	if cfg.Dedup {
		for i, p := range pipelines {
			pipelines[i] = withDedup(p)
		}
	}

	scorer := score.NewScorer()
	results := &result{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, dir := range dirs {
		dir := dir
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := loadDocument(dir)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(dir), err)
			}

			for _, p := range pipelines {
				refined := p.Run(doc.fields, doc.evidence)
				report := scorer.Score(refined, doc.truth)
				results.add(p.Describe(), report)
				slog.Debug("scored",
					"document", doc.name,
					"pipeline", p.Describe(),
					"overall", fmt.Sprintf("%.1f", report.OverallScore))
			}
			slog.Info("document done", "document", doc.name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printRanking(results)
	return nil
}

// discover returns the document directories: immediate subdirectories of
// root containing fields.json, or root itself when it is a document.
func discover(root string) ([]string, error) {
	if hasFile(root, "fields.json") {
		return []string{root}, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark directory: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if hasFile(dir, "fields.json") {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}

// loadDocument reads a document directory. fields.json and truth.json are
// required; page evidence files are optional and degrade to warnings.
func loadDocument(dir string) (*document, error) {
	fieldsJSON, err := os.ReadFile(filepath.Join(dir, "fields.json"))
	if err != nil {
		return nil, err
	}
	fields, err := fieldsnap.FieldsFromJSON(fieldsJSON)
	if err != nil {
		return nil, err
	}

	truthJSON, err := os.ReadFile(filepath.Join(dir, "truth.json"))
	if err != nil {
		return nil, err
	}
	truth, err := fieldsnap.FieldsFromJSON(truthJSON)
	if err != nil {
		return nil, err
	}

	r := fieldsnap.Fields(fields)
	if data, err := os.ReadFile(filepath.Join(dir, "page.png")); err == nil {
		r = r.WithPageImage(data)
	}
	if data, err := os.ReadFile(filepath.Join(dir, "ocr.json")); err == nil {
		r = r.WithRecognizedText(data)
	}

	doc := &document{
		name:     filepath.Base(dir),
		fields:   fields,
		truth:    truth,
		evidence: r.Evidence(),
	}
	for _, w := range r.Warnings() {
		slog.Warn("evidence degraded", "document", doc.name, "warning", w.String())
	}
	return doc, nil
}

func withDedup(p *snap.Pipeline) *snap.Pipeline {
	stages := append(p.Stages(),
		snap.DedupStage{Tolerance: snap.DuplicateTolerance},
		snap.PositionDedupStage{Tolerance: snap.PositionTolerance},
	)
	return snap.NewPipeline(stages...)
}

// printRanking sorts pipelines by mean overall score and prints the
// table, with the per-document summary for the winner.
func printRanking(results *result) {
	type ranked struct {
		pipeline string
		mean     float64
		reports  []score.Report
	}

	var rows []ranked
	for pipeline, reports := range results.reports {
		sum := 0.0
		for _, r := range reports {
			sum += r.OverallScore
		}
		rows = append(rows, ranked{
			pipeline: pipeline,
			mean:     sum / float64(len(reports)),
			reports:  reports,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].mean != rows[j].mean {
			return rows[i].mean > rows[j].mean
		}
		return rows[i].pipeline < rows[j].pipeline
	})

	fmt.Printf("%-60s %8s %6s\n", "pipeline", "overall", "docs")
	for _, row := range rows {
		fmt.Printf("%-60s %7.1f%% %6d\n", row.pipeline, row.mean, len(row.reports))
	}

	if len(rows) > 0 {
		best := rows[0]
		fmt.Printf("\nBest ordering: %s\n", best.pipeline)
		for _, r := range best.reports {
			fmt.Print(r.Summary())
		}
	}
}

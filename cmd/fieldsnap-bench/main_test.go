package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const fieldsJSON = `[
	{"label": "Name", "fieldType": "text", "coordinates": {"left": 10, "top": 20, "width": 30, "height": 3}}
]`

const truthJSON = `[
	{"label": "Name", "fieldType": "text", "coordinates": {"left": 18, "top": 20, "width": 22, "height": 3}}
]`

const ocrJSON = `{
	"width": 1000, "height": 800, "unit": "pixel",
	"words": [
		{"content": "Name", "polygon": [100, 160, 180, 160, 180, 184, 100, 184], "confidence": 0.97}
	]
}`

func writeDocument(t *testing.T, dir string, withOCR bool) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	for name, content := range map[string]string{
		"fields.json": fieldsJSON,
		"truth.json":  truthJSON,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if withOCR {
		if err := os.WriteFile(filepath.Join(dir, "ocr.json"), []byte(ocrJSON), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscover(t *testing.T) {
	t.Run("subdirectories", func(t *testing.T) {
		root := t.TempDir()
		writeDocument(t, filepath.Join(root, "doc-b"), false)
		writeDocument(t, filepath.Join(root, "doc-a"), false)
		if err := os.MkdirAll(filepath.Join(root, "not-a-doc"), 0o750); err != nil {
			t.Fatal(err)
		}

		dirs, err := discover(root)
		if err != nil {
			t.Fatal(err)
		}
		if len(dirs) != 2 {
			t.Fatalf("expected 2 documents, got %d", len(dirs))
		}
		if filepath.Base(dirs[0]) != "doc-a" {
			t.Errorf("expected sorted order, got %v", dirs)
		}
	})

	t.Run("root is a document", func(t *testing.T) {
		root := t.TempDir()
		writeDocument(t, root, false)

		dirs, err := discover(root)
		if err != nil {
			t.Fatal(err)
		}
		if len(dirs) != 1 || dirs[0] != root {
			t.Errorf("expected root itself, got %v", dirs)
		}
	})
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	writeDocument(t, dir, true)

	doc, err := loadDocument(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.fields) != 1 || len(doc.truth) != 1 {
		t.Errorf("expected 1 field and 1 truth, got %d/%d", len(doc.fields), len(doc.truth))
	}
	if len(doc.evidence.Words) != 1 {
		t.Errorf("expected 1 recognized word, got %d", len(doc.evidence.Words))
	}
}

func TestLoadDocumentMissingTruth(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fields.json"), []byte(fieldsJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := loadDocument(dir); err == nil {
		t.Error("expected error for missing truth.json")
	}
}

func TestRunCanonical(t *testing.T) {
	root := t.TempDir()
	writeDocument(t, filepath.Join(root, "doc-a"), true)
	writeDocument(t, filepath.Join(root, "doc-b"), false)

	cfg := &config{Dir: root, Workers: 2, LogLevel: "error"}
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunOrderings(t *testing.T) {
	root := t.TempDir()
	writeDocument(t, filepath.Join(root, "doc-a"), true)

	cfg := &config{Dir: root, Workers: 1, Orderings: true, Dedup: true, LogLevel: "error"}
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunEmptyCorpus(t *testing.T) {
	cfg := &config{Dir: t.TempDir(), Workers: 1, LogLevel: "error"}
	if err := run(context.Background(), cfg); err == nil {
		t.Error("expected error for empty corpus")
	}
}

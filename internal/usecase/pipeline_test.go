package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ArticlesExtractor/internal/config"
	"ArticlesExtractor/internal/infrastructure/output"
	"ArticlesExtractor/internal/infrastructure/storage"
)

const testSeparator = "=============================================================================="

func writeExportFile(t *testing.T, folder, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(folder, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write export file %s: %v", name, err)
	}
}

func exportOne() string {
	return strings.Join([]string{
		"Innehållsförteckning:",
		"> Title One, Source One, 2020-12-04 05:26",
		"> Title Two, Source Two, 2023-12-04 04:32",
		"",
		"",
		"",
		"Title One",
		"Source One, 2020-12-04 05:26",
		"Publicerat på webb.",
		"",
		"Body one.",
		testSeparator,
		"Title Two",
		"Source Two, 2023-12-04 04:32",
		"Publicerat i print.",
		"",
		"Body two.",
	}, "\n")
}

func exportTwo() string {
	return strings.Join([]string{
		"Innehållsförteckning:",
		"> Title One, Source One, 2020-12-04 05:26",
		"",
		"",
		"",
		"Title One",
		"Source One, 2020-12-04 05:26",
		"Publicerat på webb.",
		"",
		"Body one changed.",
	}, "\n")
}

func newTestPipeline(t *testing.T, cfg config.Config) *Pipeline {
	t.Helper()

	writer, err := output.NewWriter(cfg.ResolvedOutputFolder(), nil)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	repo, err := storage.Open(cfg.ResolvedIndexPath())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	pipeline, err := NewPipeline(PipelineDeps{
		Config:     cfg,
		Writer:     writer,
		Repository: repo,
		Logger:     nil,
	})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return pipeline
}

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	inputFolder := t.TempDir()
	writeExportFile(t, inputFolder, "export_I.txt", exportOne())
	writeExportFile(t, inputFolder, "export_II.txt", exportTwo())
	writeExportFile(t, inputFolder, "notes.md", "not an export file")

	cfg := config.Load("")
	cfg.InputFolder = inputFolder
	cfg.Diffs.Save = true

	pipeline := newTestPipeline(t, cfg)

	stats, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if stats.Found != 3 {
		t.Fatalf("expected 3 found articles, got %d", stats.Found)
	}
	if stats.Duplicates != 2 {
		t.Fatalf("expected 2 non-unique articles, got %d", stats.Duplicates)
	}
	if stats.Saved != 2 {
		t.Fatalf("expected 2 saved articles, got %d", stats.Saved)
	}

	outputFolder := cfg.ResolvedOutputFolder()

	// The duplicate from the later file wins.
	raw, err := os.ReadFile(filepath.Join(outputFolder, "source_one_title_one_202012040526_webb.txt"))
	if err != nil {
		t.Fatalf("read surviving article: %v", err)
	}
	if string(raw) != "Title One\n\nBody one changed." {
		t.Fatalf("unexpected survivor content: %q", raw)
	}

	index, err := os.ReadFile(filepath.Join(outputFolder, "document_index.csv"))
	if err != nil {
		t.Fatalf("read document index: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(index)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 index rows, got %d lines", len(lines))
	}

	duplicates, err := os.ReadFile(filepath.Join(outputFolder, "duplicates.csv"))
	if err != nil {
		t.Fatalf("read duplicates report: %v", err)
	}
	if !strings.Contains(string(duplicates), "source_one_title_one_202012040526_webb") {
		t.Fatalf("duplicate group missing from report: %q", duplicates)
	}

	// Exactly one pairwise diff for the divergent pair.
	diffs, err := os.ReadDir(filepath.Join(outputFolder, "diff"))
	if err != nil {
		t.Fatalf("read diff folder: %v", err)
	}
	if len(diffs) != 1 {
		t.Fatalf("expected 1 diff file, got %d", len(diffs))
	}
	diffRaw, err := os.ReadFile(filepath.Join(outputFolder, "diff", diffs[0].Name()))
	if err != nil {
		t.Fatalf("read diff file: %v", err)
	}
	if !strings.Contains(string(diffRaw), "- Body one.") || !strings.Contains(string(diffRaw), "+ Body one changed.") {
		t.Fatalf("unexpected diff content: %q", diffRaw)
	}

	// The persisted index matches the survivors.
	n, err := pipeline.repository.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 persisted documents, got %d", n)
	}
}

func TestPipelineRunBadRomanFilename(t *testing.T) {
	t.Parallel()

	inputFolder := t.TempDir()
	writeExportFile(t, inputFolder, "export_1.txt", exportTwo())

	cfg := config.Load("")
	cfg.InputFolder = inputFolder

	pipeline := newTestPipeline(t, cfg)

	if _, err := pipeline.Run(context.Background()); err == nil {
		t.Fatalf("expected hard failure for non-roman file suffix")
	}
}

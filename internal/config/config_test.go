package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load("")

	if cfg.Extraction.TocMarker != "Innehållsförteckning:" {
		t.Fatalf("unexpected default toc marker: %q", cfg.Extraction.TocMarker)
	}
	if cfg.Extraction.StopWords != "Bildtext|Image-text|Pressbild|Snabbversion" {
		t.Fatalf("unexpected default stop words: %q", cfg.Extraction.StopWords)
	}
	if !cfg.Extraction.RemoveCaptions || !cfg.Extraction.RemoveCopyright {
		t.Fatalf("caption and copyright removal must default to enabled")
	}
	if cfg.Extraction.MaxNotMatchedLines != 2 {
		t.Fatalf("unexpected default gap threshold: %d", cfg.Extraction.MaxNotMatchedLines)
	}
	if cfg.Extraction.SaveShortHeaders {
		t.Fatalf("short-header review folder must default to disabled")
	}
}

func TestLoadFileOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("inputFolder: /data/export\nextraction:\n  removeCaptions: false\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load(path)
	if cfg.InputFolder != "/data/export" {
		t.Fatalf("file value not applied: %q", cfg.InputFolder)
	}
	if cfg.Extraction.RemoveCaptions {
		t.Fatalf("explicit false not applied")
	}
	// Keys absent from the file keep their defaults.
	if !cfg.Extraction.RemoveCopyright {
		t.Fatalf("default lost for key absent from file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ARTICLES_EXTRACTOR_INPUT", "/env/input")
	t.Setenv("ARTICLES_EXTRACTOR_LOG_LEVEL", "debug")

	cfg := Load("")
	if cfg.InputFolder != "/env/input" {
		t.Fatalf("env input folder not applied: %q", cfg.InputFolder)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("env log level not applied: %q", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != ErrMissingInputFolder {
		t.Fatalf("expected ErrMissingInputFolder, got %v", err)
	}

	cfg.InputFolder = "/data"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg.Extraction.StopWords = "broken(("
	if err := cfg.Validate(); err == nil {
		t.Fatalf("invalid stop-word pattern accepted")
	}
}

func TestResolvedPaths(t *testing.T) {
	cfg := defaultConfig()
	cfg.InputFolder = "/data/export"

	if got := cfg.ResolvedOutputFolder(); got != filepath.Join("/data/export", "output") {
		t.Fatalf("unexpected default output folder: %q", got)
	}

	cfg.OutputFolder = "/tmp/out"
	if got := cfg.ResolvedOutputFolder(); got != "/tmp/out" {
		t.Fatalf("explicit output folder ignored: %q", got)
	}
	if got := cfg.ResolvedIndexPath(); got != filepath.Join("/tmp/out", "index.db") {
		t.Fatalf("unexpected index path: %q", got)
	}
}

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "ARTICLES_EXTRACTOR_CONFIG"
	inputFolderEnv  = "ARTICLES_EXTRACTOR_INPUT"
	outputFolderEnv = "ARTICLES_EXTRACTOR_OUTPUT"
	logLevelEnv     = "ARTICLES_EXTRACTOR_LOG_LEVEL"
)

// Configuration validation errors.
var (
	ErrMissingInputFolder  = errors.New("inputFolder is required")
	ErrInvalidMaxNotMached = errors.New("extraction.maxNotMatchedLines must be non-negative")
	ErrInvalidStopWords    = errors.New("extraction.stopWords is not a valid pattern alternation")
)

// Config holds all settings for one extraction run.
type Config struct {
	InputFolder  string           `yaml:"inputFolder"`
	OutputFolder string           `yaml:"outputFolder"`
	Extraction   ExtractionConfig `yaml:"extraction"`
	Diffs        DiffConfig       `yaml:"diffs"`
	Index        IndexConfig      `yaml:"index"`
	Logging      LoggingConfig    `yaml:"logging"`
}

// ExtractionConfig tunes the per-article field extraction.
type ExtractionConfig struct {
	TocMarker          string `yaml:"tocMarker"`
	StopWords          string `yaml:"stopWords"`
	RemoveCaptions     bool   `yaml:"removeCaptions"`
	RemoveCopyright    bool   `yaml:"removeCopyright"`
	SaveShortHeaders   bool   `yaml:"saveShortHeaders"`
	MaxNotMatchedLines int    `yaml:"maxNotMatchedLines"`
}

// DiffConfig controls duplicate-diff persistence.
type DiffConfig struct {
	Save bool `yaml:"save"`
}

// IndexConfig controls the embedded document-index database.
type IndexConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig defines console verbosity; the run log in the output folder
// always records warnings and errors.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) on top of the defaults and
// applies environment overrides. An empty path falls back to the
// ARTICLES_EXTRACTOR_CONFIG environment variable.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			cfg = defaultConfig()
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(inputFolderEnv); v != "" {
		c.InputFolder = v
	}
	if v := os.Getenv(outputFolderEnv); v != "" {
		c.OutputFolder = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration before a run.
func (c *Config) Validate() error {
	if c.InputFolder == "" {
		return ErrMissingInputFolder
	}
	if c.Extraction.MaxNotMatchedLines < 0 {
		return ErrInvalidMaxNotMached
	}
	if c.Extraction.StopWords != "" {
		if _, err := regexp.Compile("(" + c.Extraction.StopWords + `):\s?`); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidStopWords, err)
		}
	}
	return nil
}

// ResolvedOutputFolder returns the configured output folder, defaulting to
// a subfolder of the input folder.
func (c *Config) ResolvedOutputFolder() string {
	if c.OutputFolder != "" {
		return c.OutputFolder
	}
	return filepath.Join(c.InputFolder, "output")
}

// ResolvedIndexPath returns the index database location, defaulting to the
// output folder.
func (c *Config) ResolvedIndexPath() string {
	if c.Index.Path != "" {
		return c.Index.Path
	}
	return filepath.Join(c.ResolvedOutputFolder(), "index.db")
}

func defaultConfig() Config {
	return Config{
		Extraction: ExtractionConfig{
			TocMarker:          "Innehållsförteckning:",
			StopWords:          "Bildtext|Image-text|Pressbild|Snabbversion",
			RemoveCaptions:     true,
			RemoveCopyright:    true,
			SaveShortHeaders:   false,
			MaxNotMatchedLines: 2,
		},
		Diffs:   DiffConfig{Save: false},
		Index:   IndexConfig{Enabled: true},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Package main provides the articlesextractor CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ArticlesExtractor/internal/app"
	"ArticlesExtractor/internal/config"
	"ArticlesExtractor/internal/corpus"
	"ArticlesExtractor/internal/infrastructure/parser"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	configPath   string
	inputFolder  string
	outputFolder string
	logLevel     string
	saveDiffs    bool
	shortHeaders bool
)

var rootCmd = &cobra.Command{
	Use:   "articlesextractor",
	Short: "Extract and deduplicate articles from media-monitoring export files",
	Long: `articlesextractor parses bulk export files from a media-monitoring
service into individual articles with structured metadata, deduplicates
near-identical articles across files, and writes one text file per
surviving article together with a semicolon-delimited metadata index.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&inputFolder, "input", "i", "", "Folder containing export files")
	rootCmd.PersistentFlags().StringVarP(&outputFolder, "output", "o", "", "Output folder (default <input>/output)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Console log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&saveDiffs, "save-diffs", false, "Persist pairwise duplicate diffs to the diff folder")
	rootCmd.PersistentFlags().BoolVar(&shortHeaders, "short-headers", false, "Copy articles with short headers to a review folder")
	rootCmd.Version = Version
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg := config.Load(configPath)
	if inputFolder != "" {
		cfg.InputFolder = inputFolder
	}
	if outputFolder != "" {
		cfg.OutputFolder = outputFolder
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if saveDiffs {
		cfg.Diffs.Save = true
	}
	if shortHeaders {
		cfg.Extraction.SaveShortHeaders = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	application, err := app.New(cfg, nil)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Run(cmd.Context())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error taxonomy onto process exit codes: configuration
// problems, violated input-format assumptions, everything else.
func exitCode(err error) int {
	switch {
	case errors.Is(err, config.ErrMissingInputFolder),
		errors.Is(err, config.ErrInvalidMaxNotMached),
		errors.Is(err, config.ErrInvalidStopWords):
		return ExitConfigError
	case errors.Is(err, parser.ErrTitleMismatch),
		errors.Is(err, parser.ErrAttributionLeft),
		errors.Is(err, corpus.ErrBadOrdinal):
		return ExitDataError
	default:
		return ExitError
	}
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ArticlesExtractor/internal/config"
	"ArticlesExtractor/internal/infrastructure/output"
	"ArticlesExtractor/internal/infrastructure/storage"
	"ArticlesExtractor/internal/logging"
	"ArticlesExtractor/internal/ports"
	"ArticlesExtractor/internal/usecase"
)

// runLogName is the persistent warning log inside the output folder.
const runLogName = "run.log"

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	repo     ports.IndexRepository
	runLog   *os.File
	logger   *slog.Logger
}

// New builds a runnable application instance. When baseLogger is nil a
// logger is created that mirrors warnings into the output folder's run log.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	outputFolder := cfg.ResolvedOutputFolder()
	if err := os.MkdirAll(outputFolder, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}

	var runLog *os.File
	if baseLogger == nil {
		f, err := os.OpenFile(filepath.Join(outputFolder, runLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open run log: %w", err)
		}
		runLog = f
		baseLogger = logging.NewWithRunLog(cfg.Logging.Level, f)
	}

	writer, err := output.NewWriter(outputFolder, baseLogger.With("component", "writer"))
	if err != nil {
		return nil, err
	}

	var repo ports.IndexRepository
	if cfg.Index.Enabled {
		repo, err = storage.Open(cfg.ResolvedIndexPath())
		if err != nil {
			return nil, err
		}
	}

	pipeline, err := usecase.NewPipeline(usecase.PipelineDeps{
		Config:     cfg,
		Writer:     writer,
		Repository: repo,
		Logger:     baseLogger.With("component", "pipeline"),
	})
	if err != nil {
		return nil, err
	}

	return &Application{
		cfg:      cfg,
		pipeline: pipeline,
		repo:     repo,
		runLog:   runLog,
		logger:   baseLogger,
	}, nil
}

// Run executes one extraction pass over the input folder.
func (a *Application) Run(ctx context.Context) error {
	stats, err := a.pipeline.Run(ctx)
	if err != nil {
		return err
	}

	a.logger.Info("run complete",
		"found", stats.Found,
		"duplicates", stats.Duplicates,
		"saved", stats.Saved,
		"output", a.cfg.ResolvedOutputFolder())
	return nil
}

// Close releases the index database and the run log.
func (a *Application) Close() error {
	var firstErr error
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			firstErr = err
		}
	}
	if a.runLog != nil {
		if err := a.runLog.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

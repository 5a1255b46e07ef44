package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"ArticlesExtractor/internal/config"
	"ArticlesExtractor/internal/corpus"
	"ArticlesExtractor/internal/domain"
	"ArticlesExtractor/internal/infrastructure/diff"
	"ArticlesExtractor/internal/infrastructure/parser"
	"ArticlesExtractor/internal/ports"
)

// PipelineDeps wires the driven adapters into the extraction pipeline.
type PipelineDeps struct {
	Config     config.Config
	Writer     ports.DocumentWriter
	Repository ports.IndexRepository
	Logger     *slog.Logger
}

// Pipeline implements the export-file extraction workflow: parse every
// input file, aggregate, resolve duplicates and write the outputs.
type Pipeline struct {
	cfg        config.Config
	extractor  *parser.Extractor
	writer     ports.DocumentWriter
	repository ports.IndexRepository
	logger     *slog.Logger
}

// Stats summarizes one run.
type Stats struct {
	Found      int
	Duplicates int
	Saved      int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) (*Pipeline, error) {
	extractor, err := parser.NewExtractor(
		deps.Config.Extraction.StopWords,
		deps.Config.Extraction.RemoveCaptions,
		deps.Config.Extraction.RemoveCopyright,
		deps.Logger,
	)
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}

	return &Pipeline{
		cfg:        deps.Config,
		extractor:  extractor,
		writer:     deps.Writer,
		repository: deps.Repository,
		logger:     deps.Logger,
	}, nil
}

// Run processes every export file in the input folder, in lexicographic
// order so the derived document ids are reproducible.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	files, err := p.listExportFiles()
	if err != nil {
		return stats, err
	}

	perFile := make([][]domain.DocumentRecord, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		docs, err := p.processFile(name)
		if err != nil {
			return stats, fmt.Errorf("process %s: %w", name, err)
		}
		p.info("processed export file", "file", name, "articles", len(docs))
		perFile = append(perFile, docs)
	}

	all := corpus.Aggregate(perFile)
	stats.Found = len(all)
	p.info("found articles", "count", stats.Found)

	groups := corpus.FindDuplicates(all)
	for _, g := range groups {
		stats.Duplicates += len(g.Members)
	}
	p.info("found non-unique articles", "count", stats.Duplicates)

	if err := p.reportDiffs(groups); err != nil {
		return stats, err
	}

	if p.writer != nil {
		if err := p.writer.WriteDuplicates(corpus.Summarize(groups)); err != nil {
			return stats, fmt.Errorf("write duplicates report: %w", err)
		}
	}

	kept := corpus.DropDuplicates(all)
	p.info("removed duplicates", "count", stats.Found-len(kept))

	if p.writer != nil {
		stats.Saved, err = p.writer.WriteArticles(kept)
		if err != nil {
			return stats, fmt.Errorf("write articles: %w", err)
		}
		p.info("saved unique articles", "count", stats.Saved)

		if p.cfg.Extraction.SaveShortHeaders {
			n, err := p.writer.WriteShortHeaders(kept)
			if err != nil {
				return stats, fmt.Errorf("write short-header articles: %w", err)
			}
			p.info("saved short-header articles for review", "count", n)
		}

		if err := p.writer.WriteIndex(kept); err != nil {
			return stats, fmt.Errorf("write document index: %w", err)
		}
	}

	if p.repository != nil {
		if err := p.repository.SaveIndex(ctx, kept); err != nil {
			return stats, fmt.Errorf("persist document index: %w", err)
		}
		if n, err := p.repository.Count(ctx); err == nil {
			p.info("persisted document index", "documents", n)
		}
	}

	return stats, nil
}

// processFile runs one export file through TOC extraction, splitting, field
// extraction and document derivation.
func (p *Pipeline) processFile(name string) ([]domain.DocumentRecord, error) {
	raw, err := os.ReadFile(filepath.Join(p.cfg.InputFolder, name))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	content := string(raw)

	entries, offset := parser.ExtractTOC(content, p.cfg.Extraction.TocMarker, p.cfg.Extraction.MaxNotMatchedLines)
	p.debug("extracted table of contents", "file", name, "entries", len(entries), "offset", offset)

	blocks := parser.SplitArticles(content, offset)

	records, err := p.extractor.BuildCorpus(entries, blocks)
	if err != nil {
		return nil, err
	}

	return corpus.DeriveDocuments(records, name)
}

// reportDiffs logs a line diff between consecutive members of every
// duplicate group whose body text actually diverges, and optionally saves
// each pairwise diff for review.
func (p *Pipeline) reportDiffs(groups []domain.DuplicateGroup) error {
	for _, g := range corpus.DivergentGroups(groups) {
		label := corpus.GroupLabel(g.Key)
		for i := 1; i < len(g.Members); i++ {
			text := diff.Texts(g.Members[i-1].ArticleText, g.Members[i].ArticleText)
			p.info("differences between duplicates", "group", label, "pair", i-1, "diff", "\n"+text)

			if p.cfg.Diffs.Save && p.writer != nil {
				name := label + "_" + strconv.Itoa(i-1)
				if err := p.writer.WriteDiff(name, text); err != nil {
					return fmt.Errorf("save diff for %s: %w", label, err)
				}
			}
		}
	}
	return nil
}

// listExportFiles returns the .txt files of the input folder in
// lexicographic order.
func (p *Pipeline) listExportFiles() ([]string, error) {
	dirEntries, err := os.ReadDir(p.cfg.InputFolder)
	if err != nil {
		return nil, fmt.Errorf("list input folder: %w", err)
	}

	var files []string
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

package parser

import (
	"fmt"
	"strings"
	"time"

	"ArticlesExtractor/internal/domain"
)

// dateLayouts are the formats accepted by the lenient date parser, tried in
// order. Export files mix minute-precision timestamps with full ISO-8601.
var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// BuildCorpus pairs TOC entries with article blocks positionally and
// extracts one record per block. A block without a TOC entry means the
// split and the listing are out of sync, which is fatal for the file.
func (e *Extractor) BuildCorpus(entries []domain.TocEntry, blocks []string) ([]domain.ArticleRecord, error) {
	if len(blocks) < len(entries) {
		e.warn("fewer article blocks than listed entries",
			"entries", len(entries), "blocks", len(blocks))
	}

	records := make([]domain.ArticleRecord, 0, len(blocks))
	for i, block := range blocks {
		if i >= len(entries) {
			return nil, fmt.Errorf("article %d has no table of contents entry: %w", i, ErrTitleMismatch)
		}

		e.debug("processing article",
			"article", i, "title", entries[i].Title, "source", entries[i].Source)

		rec, err := e.Extract(entries[i], i, block)
		if err != nil {
			return nil, err
		}

		rec.DateTime = parseDateTime(rec.Date)
		records = append(records, rec)
	}

	e.logMissingValues(records)
	return records, nil
}

// parseDateTime tries each known layout and returns the zero time when none
// matches. Missing timestamps surface through the missing-values log.
func parseDateTime(date string) time.Time {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// logMissingValues reports records with empty fields outside the optional
// set (pages and media are legitimately absent).
func (e *Extractor) logMissingValues(records []domain.ArticleRecord) {
	for i, rec := range records {
		checks := []struct {
			name  string
			empty bool
		}{
			{"title", rec.Title == ""},
			{"source", rec.Source == ""},
			{"date", rec.Date == ""},
			{"full_text", rec.FullText == ""},
			{"header", rec.Header == ""},
			{"url", rec.URL == ""},
			{"article_text", rec.ArticleText == ""},
			{"date_time", rec.DateTime.IsZero()},
		}

		var missing []string
		for _, c := range checks {
			if c.empty {
				missing = append(missing, c.name)
			}
		}
		if len(missing) > 0 {
			e.info("missing values in record",
				"article", i, "title", rec.Title, "fields", strings.Join(missing, ", "))
		}
	}
}

func (e *Extractor) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func (e *Extractor) info(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Info(msg, args...)
	}
}

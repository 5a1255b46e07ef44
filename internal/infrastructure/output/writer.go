// Package output writes run artifacts: per-article text files, the metadata
// index and the duplicates report.
package output

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ArticlesExtractor/internal/domain"
	"ArticlesExtractor/internal/ports"
)

const (
	indexFile      = "document_index.csv"
	duplicatesFile = "duplicates.csv"
	diffDir        = "diff"
	shortHeaderDir = "short_headers"
)

// utf8BOM makes the semicolon-delimited files open cleanly in spreadsheet
// applications.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// indexColumns is the document_index.csv header, heavy text columns omitted.
var indexColumns = []string{
	"title", "source", "date", "media", "pages", "url", "date_time",
	"document_name", "filename", "year", "input_file", "id", "document_id",
}

// Writer persists documents below a single output folder.
type Writer struct {
	folder string
	logger *slog.Logger
}

var _ ports.DocumentWriter = (*Writer)(nil)

// NewWriter creates the output folder and returns a writer rooted there.
func NewWriter(folder string, log *slog.Logger) (*Writer, error) {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}
	return &Writer{folder: folder, logger: log}, nil
}

// WriteArticles writes one <document_name>.txt per document: title, blank
// line, body. Returns the number of files written.
func (w *Writer) WriteArticles(docs []domain.DocumentRecord) (int, error) {
	return w.writeArticleFiles(w.folder, docs)
}

// WriteShortHeaders writes documents whose header had fewer than 3 lines to
// a separate review folder.
func (w *Writer) WriteShortHeaders(docs []domain.DocumentRecord) (int, error) {
	var short []domain.DocumentRecord
	for _, doc := range docs {
		if doc.HeaderLength < 3 {
			short = append(short, doc)
		}
	}
	if len(short) == 0 {
		return 0, nil
	}

	folder := filepath.Join(w.folder, shortHeaderDir)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return 0, fmt.Errorf("create short-header folder: %w", err)
	}
	return w.writeArticleFiles(folder, short)
}

func (w *Writer) writeArticleFiles(folder string, docs []domain.DocumentRecord) (int, error) {
	for _, doc := range docs {
		content := doc.Title + "\n\n" + doc.ArticleText
		path := filepath.Join(folder, doc.Filename)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return 0, fmt.Errorf("write article %q: %w", doc.Filename, err)
		}
	}
	return len(docs), nil
}

// WriteIndex writes the metadata index as semicolon-delimited UTF-8 with a
// byte-order mark.
func (w *Writer) WriteIndex(docs []domain.DocumentRecord) error {
	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, []string{
			doc.Title,
			doc.Source,
			doc.Date,
			string(doc.Media),
			doc.Pages,
			doc.URL,
			formatDateTime(doc.DateTime),
			doc.DocumentName,
			doc.Filename,
			doc.Year,
			doc.InputFile,
			doc.ID,
			strconv.Itoa(doc.DocumentID),
		})
	}
	return w.writeCSV(indexFile, indexColumns, rows)
}

// WriteDuplicates writes the grouped duplicates report.
func (w *Writer) WriteDuplicates(summaries []domain.DuplicateSummary) error {
	header := []string{"document_name", "source", "date", "media", "urls", "count"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.DocumentName,
			s.Source,
			s.Date,
			string(s.Media),
			s.URLs,
			strconv.Itoa(s.Count),
		})
	}
	return w.writeCSV(duplicatesFile, header, rows)
}

// WriteDiff persists one pairwise comparison under the diff subfolder.
func (w *Writer) WriteDiff(name, content string) error {
	folder := filepath.Join(w.folder, diffDir)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("create diff folder: %w", err)
	}

	path := filepath.Join(folder, name+".diff")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write diff %q: %w", name, err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.folder, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("write byte-order mark: %w", err)
	}

	cw := csv.NewWriter(f)
	cw.Comma = ';'

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s row: %w", name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}

	if w.logger != nil {
		w.logger.Info("wrote report", "file", name, "rows", len(rows))
	}
	return nil
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

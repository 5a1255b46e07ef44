package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"ArticlesExtractor/internal/domain"
)

// serviceName is the monitoring service whose attribution text must never
// survive boilerplate stripping.
const serviceName = "Retriever"

// Contract violations that abort processing of the input file.
var (
	ErrTitleMismatch   = errors.New("article title does not match table of contents entry")
	ErrAttributionLeft = errors.New("attribution string left in article after stripping")
)

var (
	nonWordExpr     = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
	urlExpr         = regexp.MustCompile(`(?:Läs hela artikeln på|Se webartikeln på) (.*)`)
	urlSentenceExpr = regexp.MustCompile(`(?:Läs hela artikeln på|Se webartikeln på) .*`)
	captionExpr     = regexp.MustCompile(`Bild: ([A-Z][a-z]+(?: [A-Z][a-z]+)*)(/TT)?\s?`)
	copyrightExpr   = regexp.MustCompile(`©.*$`)
)

// mediaPrefix and pagesPrefix start the two trailing header lines of a
// print article ("Publicerat i print.", "Sida 4").
const (
	mediaPrefix = "Publicerat"
	pagesPrefix = "Sida"
)

// Extractor turns raw article blocks into structured records.
type Extractor struct {
	stopWordsExpr   *regexp.Regexp
	removeCaptions  bool
	removeCopyright bool
	logger          *slog.Logger
}

// NewExtractor builds an extractor. stopWords is a pipe-delimited list of
// labels to strip (empty disables stop-word removal).
func NewExtractor(stopWords string, removeCaptions, removeCopyright bool, log *slog.Logger) (*Extractor, error) {
	e := &Extractor{
		removeCaptions:  removeCaptions,
		removeCopyright: removeCopyright,
		logger:          log,
	}

	if stopWords != "" {
		expr, err := regexp.Compile("(" + stopWords + `):\s?`)
		if err != nil {
			return nil, fmt.Errorf("compile stop words: %w", err)
		}
		e.stopWordsExpr = expr
	}

	return e, nil
}

// Extract builds an ArticleRecord from the TOC entry and raw block at the
// given index. A title mismatch or residual attribution string is a hard
// failure for the whole file.
func (e *Extractor) Extract(entry domain.TocEntry, index int, block string) (domain.ArticleRecord, error) {
	rec := domain.ArticleRecord{TocEntry: entry, FullText: block}

	article, headerLength := repairHeader(block)
	rec.HeaderLength = headerLength

	headers := headerLines(article)
	rec.Header = strings.Join(headers, "\n")
	if len(headers) < 3 {
		e.warn("header shorter than three lines",
			"article", index, "title", entry.Title, "source", entry.Source)
	}

	if err := checkTitle(entry.Title, article); err != nil {
		return rec, fmt.Errorf("article %d (%q): %w", index, entry.Title, err)
	}

	rec.Media = extractMedia(headers)
	rec.Pages = extractPages(headers)
	rec.URL = extractURL(article)

	article = strings.TrimSpace(urlSentenceExpr.ReplaceAllString(article, ""))
	article = e.StripStopWords(article)
	if e.removeCaptions {
		article = StripCaptions(article)
	}
	if e.removeCopyright {
		article = e.stripCopyright(article, index)
	}

	if strings.Contains(article, serviceName) {
		return rec, fmt.Errorf("article %d (%q): %w", index, entry.Title, ErrAttributionLeft)
	}

	rec.ArticleText = bodyText(article)
	return rec, nil
}

// repairHeader collapses the first blank line of a block whose header has
// fewer than 3 lines. The export format sometimes inserts a spurious blank
// line between a wrapped title and the rest of the header; collapsing it
// reunites the header with its source and published lines.
func repairHeader(article string) (string, int) {
	if len(headerLines(article)) < 3 {
		article = strings.Replace(article, "\n\n", "\n", 1)
	}
	return article, len(headerLines(article))
}

// headerLines returns the lines before the first blank-line boundary.
func headerLines(article string) []string {
	head, _, _ := strings.Cut(article, "\n\n")
	return strings.Split(strings.TrimSpace(head), "\n")
}

// checkTitle verifies that the first header line is a prefix (25 normalized
// characters) of the TOC title for the same index. A failure means the TOC
// and the article blocks are out of sync.
func checkTitle(tocTitle, article string) error {
	first, _, _ := strings.Cut(article, "\n")

	articleTitle := []rune(normalizeTitle(first))
	if len(articleTitle) > 25 {
		articleTitle = articleTitle[:25]
	}

	if !strings.HasPrefix(normalizeTitle(tocTitle), string(articleTitle)) {
		return ErrTitleMismatch
	}
	return nil
}

func normalizeTitle(s string) string {
	return strings.TrimSpace(strings.ToLower(nonWordExpr.ReplaceAllString(s, " ")))
}

// extractMedia classifies the last header line: a "Publicerat" line
// containing "webb" means a web publication, any other "Publicerat" line
// means print. Only the last header line is inspected, so "webb" elsewhere
// in the article never misclassifies.
func extractMedia(headers []string) domain.Media {
	last := headers[len(headers)-1]
	if !strings.HasPrefix(last, mediaPrefix) {
		return ""
	}
	if strings.Contains(last, "webb") {
		return domain.MediaWebb
	}
	return domain.MediaPrint
}

// extractPages reads the page token from a "Sida N" second-to-last header
// line. Headers shorter than 3 lines never carry a page number.
func extractPages(headers []string) string {
	if len(headers) < 3 {
		return ""
	}
	line := headers[len(headers)-2]
	if !strings.HasPrefix(line, pagesPrefix) {
		return ""
	}
	parts := strings.Split(line, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// extractURL captures the target of the "read full article at" sentence.
func extractURL(article string) string {
	m := urlExpr.FindStringSubmatch(article)
	if m == nil {
		return ""
	}
	return m[1]
}

// StripStopWords removes configured labels followed by a colon.
func (e *Extractor) StripStopWords(article string) string {
	if e.stopWordsExpr == nil {
		return article
	}
	return strings.TrimSpace(e.stopWordsExpr.ReplaceAllString(article, ""))
}

// StripCaptions removes image captions of the form "Bild: Name Name[/TT]".
func StripCaptions(article string) string {
	return strings.TrimSpace(captionExpr.ReplaceAllString(article, ""))
}

// stripCopyright drops the trailing copyright marker and everything after
// it on the final line. The marker is expected on the last line; anywhere
// else it is left alone and a warning is logged.
func (e *Extractor) stripCopyright(article string, index int) string {
	lines := strings.Split(article, "\n")
	if !strings.Contains(lines[len(lines)-1], "©") {
		e.warn("copyright marker not on last line", "article", index)
	}
	return strings.TrimSpace(copyrightExpr.ReplaceAllString(article, ""))
}

// bodyText is everything after the first blank-line boundary.
func bodyText(article string) string {
	_, body, found := strings.Cut(article, "\n\n")
	if !found {
		return ""
	}
	return strings.TrimSpace(body)
}

func (e *Extractor) warn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

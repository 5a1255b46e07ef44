package domain

import "time"

// Media tells where an article was published according to its header.
type Media string

const (
	MediaWebb  Media = "webb"
	MediaPrint Media = "print"
)

// TocEntry is one listed article in the table of contents of an export file.
// Entries appear in listing order and correspond positionally to the article
// blocks recovered later from the same file.
type TocEntry struct {
	Title         string
	Source        string
	Date          string
	TocLineNumber int
}

// ArticleRecord extends a TocEntry with everything extracted from the raw
// article block. FullText is the block as captured and is never modified.
type ArticleRecord struct {
	TocEntry
	FullText     string
	HeaderLength int
	Header       string
	Media        Media
	Pages        string
	URL          string
	ArticleText  string
	DateTime     time.Time
}

// DocumentRecord is an ArticleRecord with the derived naming and identity
// fields assigned during aggregation. Records are dropped, never mutated,
// when identified as duplicates.
type DocumentRecord struct {
	ArticleRecord
	DocumentName string
	Filename     string
	Year         string
	InputFile    string
	ID           string
	DocumentID   int
}

// DuplicateKey identifies a set of documents describing the same article.
type DuplicateKey struct {
	DocumentName string
	Source       string
	Date         string
	Media        Media
}

// Key returns the composite duplicate-detection key for a document.
func (d DocumentRecord) Key() DuplicateKey {
	return DuplicateKey{
		DocumentName: d.DocumentName,
		Source:       d.Source,
		Date:         d.Date,
		Media:        d.Media,
	}
}

// DuplicateGroup collects all documents sharing one key, in concatenation order.
type DuplicateGroup struct {
	Key     DuplicateKey
	Members []DocumentRecord
}

// DuplicateSummary is one row of the duplicates report.
type DuplicateSummary struct {
	DocumentName string
	Source       string
	Date         string
	Media        Media
	URLs         string
	Count        int
}

package ports

import (
	"context"

	"ArticlesExtractor/internal/domain"
)

// DocumentWriter persists run outputs: per-article files, the metadata
// index, the duplicates report and optional review artifacts.
type DocumentWriter interface {
	WriteArticles(docs []domain.DocumentRecord) (int, error)
	WriteShortHeaders(docs []domain.DocumentRecord) (int, error)
	WriteIndex(docs []domain.DocumentRecord) error
	WriteDuplicates(summaries []domain.DuplicateSummary) error
	WriteDiff(name, content string) error
}

// IndexRepository stores the deduplicated document index for later querying.
type IndexRepository interface {
	SaveIndex(ctx context.Context, docs []domain.DocumentRecord) error
	Count(ctx context.Context) (int, error)
	Close() error
}

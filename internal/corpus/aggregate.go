// Package corpus derives document identities and resolves duplicates across
// export files.
package corpus

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"ArticlesExtractor/internal/domain"
	"ArticlesExtractor/pkg/roman"
)

// ErrBadOrdinal means an input file name does not follow the expected
// underscore-separated roman numeral convention.
var ErrBadOrdinal = errors.New("input file has no roman numeral suffix")

var nonWordExpr = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// dateCompactor removes the separators from a date string for use in slugs.
var dateCompactor = strings.NewReplacer(" ", "", ":", "", "-", "")

const titleSlugMaxLen = 60

// DeriveDocuments assigns the derived naming and identity fields to every
// record of one input file. The file name must end in an underscore-separated
// roman numeral (e.g. export_VII.txt); failing to parse it is a hard error.
func DeriveDocuments(records []domain.ArticleRecord, inputFile string) ([]domain.DocumentRecord, error) {
	ordinal, err := fileOrdinal(inputFile)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.DocumentRecord, 0, len(records))
	for i, rec := range records {
		name := documentName(rec)
		docs = append(docs, domain.DocumentRecord{
			ArticleRecord: rec,
			DocumentName:  name,
			Filename:      name + ".txt",
			Year:          firstChars(rec.Date, 4),
			InputFile:     inputFile,
			ID:            fmt.Sprintf("%03d%03d", ordinal, i),
		})
	}
	return docs, nil
}

// documentName builds the slug identifying one document: normalized source,
// truncated normalized title, compacted date and media, underscore-joined.
// Missing values become empty segments.
func documentName(rec domain.ArticleRecord) string {
	titleSlug := strings.Trim(slug(rec.Title), "_")
	if runes := []rune(titleSlug); len(runes) > titleSlugMaxLen {
		titleSlug = string(runes[:titleSlugMaxLen])
	}

	return slug(rec.Source) + "_" + titleSlug + "_" + dateCompactor.Replace(rec.Date) + "_" + string(rec.Media)
}

func slug(s string) string {
	return strings.TrimSpace(strings.ToLower(nonWordExpr.ReplaceAllString(s, "_")))
}

func firstChars(s string, n int) string {
	if runes := []rune(s); len(runes) > n {
		return string(runes[:n])
	}
	return s
}

// fileOrdinal parses the roman numeral between the last underscore and the
// .txt extension of an input file name.
func fileOrdinal(inputFile string) (int, error) {
	name := strings.TrimSuffix(filepath.Base(inputFile), ".txt")
	if i := strings.LastIndex(name, "_"); i >= 0 {
		name = name[i+1:]
	}

	n, err := roman.Parse(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (%v)", ErrBadOrdinal, inputFile, err)
	}
	return n, nil
}

// Aggregate concatenates the per-file document sets in the given order and
// assigns the global 0-based document id. The caller is responsible for a
// deterministic file order.
func Aggregate(perFile [][]domain.DocumentRecord) []domain.DocumentRecord {
	var all []domain.DocumentRecord
	for _, docs := range perFile {
		all = append(all, docs...)
	}
	for i := range all {
		all[i].DocumentID = i
	}
	return all
}

// FindDuplicates groups documents by their composite key and returns every
// group with more than one member, in first-occurrence order.
func FindDuplicates(docs []domain.DocumentRecord) []domain.DuplicateGroup {
	counts := make(map[domain.DuplicateKey]int, len(docs))
	for _, doc := range docs {
		counts[doc.Key()]++
	}

	grouped := make(map[domain.DuplicateKey]*domain.DuplicateGroup)
	var groups []*domain.DuplicateGroup
	for _, doc := range docs {
		key := doc.Key()
		if counts[key] < 2 {
			continue
		}
		g, ok := grouped[key]
		if !ok {
			g = &domain.DuplicateGroup{Key: key}
			grouped[key] = g
			groups = append(groups, g)
		}
		g.Members = append(g.Members, doc)
	}

	result := make([]domain.DuplicateGroup, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	return result
}

// DropDuplicates keeps the last occurrence of every composite key,
// preserving the position of the surviving records.
func DropDuplicates(docs []domain.DocumentRecord) []domain.DocumentRecord {
	counts := make(map[domain.DuplicateKey]int, len(docs))
	for _, doc := range docs {
		counts[doc.Key()]++
	}

	seen := make(map[domain.DuplicateKey]int, len(counts))
	kept := make([]domain.DocumentRecord, 0, len(docs))
	for _, doc := range docs {
		key := doc.Key()
		seen[key]++
		if seen[key] == counts[key] {
			kept = append(kept, doc)
		}
	}
	return kept
}

// Summarize produces one duplicates-report row per group, joining the
// member URLs for manual follow-up.
func Summarize(groups []domain.DuplicateGroup) []domain.DuplicateSummary {
	summaries := make([]domain.DuplicateSummary, 0, len(groups))
	for _, g := range groups {
		var urls []string
		for _, doc := range g.Members {
			if doc.URL != "" {
				urls = append(urls, doc.URL)
			}
		}
		summaries = append(summaries, domain.DuplicateSummary{
			DocumentName: g.Key.DocumentName,
			Source:       g.Key.Source,
			Date:         g.Key.Date,
			Media:        g.Key.Media,
			URLs:         strings.Join(urls, ", "),
			Count:        len(g.Members),
		})
	}
	return summaries
}

// DivergentGroups filters duplicate groups down to the members whose body
// text is not repeated verbatim inside the group; only those need a diff
// for manual review. Groups left with fewer than two members are dropped.
func DivergentGroups(groups []domain.DuplicateGroup) []domain.DuplicateGroup {
	var result []domain.DuplicateGroup
	for _, g := range groups {
		textCounts := make(map[string]int, len(g.Members))
		for _, doc := range g.Members {
			textCounts[doc.ArticleText]++
		}

		var unique []domain.DocumentRecord
		for _, doc := range g.Members {
			if textCounts[doc.ArticleText] == 1 {
				unique = append(unique, doc)
			}
		}
		if len(unique) < 2 {
			continue
		}
		result = append(result, domain.DuplicateGroup{Key: g.Key, Members: unique})
	}
	return result
}

// GroupLabel renders a duplicate key as a flat string for diff file names
// and log lines.
func GroupLabel(key domain.DuplicateKey) string {
	return key.DocumentName + "_" + key.Source + "_" + key.Date + "_" + string(key.Media)
}

// Package parser extracts structured articles from media-monitoring export files.
package parser

import (
	"regexp"
	"strings"

	"ArticlesExtractor/internal/domain"
)

// tocLineExpr captures title, source and date from a listing line. The
// greedy groups split on the last two commas, so titles containing commas
// stay intact.
var tocLineExpr = regexp.MustCompile(`^>\s*(.*),\s*(.*),\s*(.*)$`)

// ExtractTOC scans content for the first line containing marker and collects
// every `> title, source, date` line from there on. After the marker is
// found, more than maxNotMatched consecutive lines not starting with '>'
// terminate the scan. Returns the entries and the 1-based line number where
// scanning stopped; if the marker never appears the entries are empty and
// the line number is the last line of the file.
func ExtractTOC(content, marker string, maxNotMatched int) ([]domain.TocEntry, int) {
	var entries []domain.TocEntry

	found := false
	notMatched := 0
	lineNumber := 0

	for i, line := range strings.Split(content, "\n") {
		lineNumber = i + 1

		if strings.Contains(line, marker) {
			found = true
		}
		if !found {
			continue
		}

		if strings.HasPrefix(line, ">") {
			if m := tocLineExpr.FindStringSubmatch(line); m != nil {
				entries = append(entries, domain.TocEntry{
					Title:         m[1],
					Source:        m[2],
					Date:          m[3],
					TocLineNumber: lineNumber,
				})
				notMatched = 0
			}
		} else {
			notMatched++
		}

		if notMatched > maxNotMatched {
			break
		}
	}

	return entries, lineNumber
}

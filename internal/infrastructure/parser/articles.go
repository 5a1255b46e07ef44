package parser

import "strings"

// separator delimits article blocks in an export file (78 '=' characters).
const separator = "=============================================================================="

// SplitArticles takes the content from the 1-based offset line onward and
// splits it into trimmed article blocks on the fixed separator line.
func SplitArticles(content string, offset int) []string {
	lines := strings.SplitAfter(content, "\n")
	if offset < 1 {
		offset = 1
	}
	if offset-1 >= len(lines) {
		return []string{""}
	}

	rest := strings.Join(lines[offset-1:], "")
	blocks := strings.Split(rest, separator)
	for i, block := range blocks {
		blocks[i] = strings.TrimSpace(block)
	}
	return blocks
}

package search

import (
	"regexp"
	"strings"
)

// Highlight markers consumed by the rendering layer. They are plain
// delimiter tokens, not HTML the server trusts; clients decide how to
// render them.
const (
	MarkStart = "<mark>"
	MarkEnd   = "</mark>"
)

// Bounds protecting the highlighter (and any pattern built from user
// input) from pathological inputs. Queries longer than maxQueryRunes are
// truncated before a pattern is built; texts longer than maxTextBytes are
// returned verbatim, trading highlight fidelity for worst-case latency.
const (
	maxQueryRunes = 100
	maxTextBytes  = 10000
)

// EscapeRegex backslash-escapes every regex metacharacter in term
// (. * + ? ^ $ { } ( ) | [ ] \) so the result matches term literally and
// nothing else. It must be applied to user-supplied search terms before
// they are embedded in any pattern-match predicate.
func EscapeRegex(term string) string {
	return regexp.QuoteMeta(term)
}

// HighlightSearchTerm wraps every case-insensitive occurrence of query in
// text with MarkStart/MarkEnd. Matches are non-overlapping and global (all
// occurrences, not just the first).
//
// It is a no-op when the query is empty after trimming or when text
// exceeds maxTextBytes. Queries are truncated to maxQueryRunes before the
// pattern is compiled, bounding the cost of a single match pass.
func HighlightSearchTerm(text, query string) string {
	query = strings.TrimSpace(query)
	if query == "" || text == "" {
		return text
	}
	if len(text) > maxTextBytes {
		// Byte length over-counts multibyte text, but only in the safe
		// direction: we may skip highlighting slightly early, never run
		// the matcher over an unbounded input.
		return text
	}
	if runes := []rune(query); len(runes) > maxQueryRunes {
		query = string(runes[:maxQueryRunes])
	}

	re, err := regexp.Compile("(?i)" + EscapeRegex(query))
	if err != nil {
		return text
	}
	return re.ReplaceAllString(text, MarkStart+"$0"+MarkEnd)
}

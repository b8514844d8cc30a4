package repo

import "strings"

// escapeLike backslash-escapes the LIKE wildcards (%, _) and the escape
// character itself. Together with ESCAPE '\' in the predicate this is the
// store-level counterpart of search.EscapeRegex: user text can never act
// as a pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// likePattern builds a case-insensitive containment pattern for term.
// Callers must compare against LOWER(column) with ESCAPE '\'.
func likePattern(term string) string {
	return "%" + escapeLike(strings.ToLower(term)) + "%"
}

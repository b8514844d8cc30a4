package search

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/convospace/go-search-backend/internal/domain"
)

// ErrQueryTooShort is the only validation failure the normalizer reports.
// Every other malformed parameter silently degrades to its default so the
// search bar stays forgiving of stale or broken client state.
var ErrQueryTooShort = errors.New("Search query must be at least 2 characters")

// paramSource binds one request parameter name to the mutation it performs
// on the filter struct. Sources for the same canonical field are tried in
// order; the first parameter present in the request wins, so current names
// listed before legacy aliases take precedence.
type paramSource struct {
	name  string
	apply func(f *SearchFilters, raw string)
}

// binding groups the ordered sources for one canonical filter field. The
// table form keeps the current/legacy mapping auditable and testable in
// isolation (see TestPrecedenceTable).
type binding struct {
	canonical string
	sources   []paramSource
}

// precedenceTable maps request parameters onto SearchFilters. Order
// matters twice: bindings run top to bottom (limit is resolved before
// page so the offset→page transform can use it), and sources within a
// binding run left to right (current name before legacy alias).
func precedenceTable() []binding {
	return []binding{
		{canonical: "query", sources: []paramSource{
			{name: "query", apply: setQuery},
			{name: "q", apply: setQuery},
		}},
		{canonical: "type", sources: []paramSource{
			{name: "type", apply: func(f *SearchFilters, raw string) {
				if t := SearchType(raw); isValidType(t) {
					f.Type = t
				}
			}},
		}},
		{canonical: "dateFrom", sources: []paramSource{
			{name: "dateFrom", apply: func(f *SearchFilters, raw string) {
				if t, ok := parseTimeParam(raw); ok {
					f.DateFrom = &t
				}
			}},
		}},
		{canonical: "dateTo", sources: []paramSource{
			{name: "dateTo", apply: func(f *SearchFilters, raw string) {
				if t, ok := parseTimeParam(raw); ok {
					eod := EndOfDay(t)
					f.DateTo = &eod
				}
			}},
		}},
		{canonical: "isAI", sources: []paramSource{
			{name: "isAI", apply: func(f *SearchFilters, raw string) {
				if b, ok := parseBoolParam(raw); ok {
					f.IsAI = &b
				}
			}},
			{name: "conversationType", apply: func(f *SearchFilters, raw string) {
				switch strings.ToLower(strings.TrimSpace(raw)) {
				case "ai":
					v := true
					f.IsAI = &v
				case "human":
					v := false
					f.IsAI = &v
				}
			}},
		}},
		{canonical: "personality", sources: []paramSource{
			{name: "personality", apply: func(f *SearchFilters, raw string) {
				p := strings.ToLower(strings.TrimSpace(raw))
				if isValidPersonality(p) {
					f.Personality = p
				}
			}},
		}},
		{canonical: "tagIds", sources: []paramSource{
			{name: "tagIds", apply: func(f *SearchFilters, raw string) {
				f.TagIDs = splitCSV(raw)
			}},
			{name: "tagId", apply: func(f *SearchFilters, raw string) {
				if id := strings.TrimSpace(raw); id != "" {
					f.TagIDs = []string{id}
				}
			}},
		}},
		{canonical: "hasAttachments", sources: []paramSource{
			{name: "hasAttachments", apply: func(f *SearchFilters, raw string) {
				if b, ok := parseBoolParam(raw); ok {
					f.HasAttachments = &b
				}
			}},
		}},
		{canonical: "archived", sources: []paramSource{
			{name: "archived", apply: func(f *SearchFilters, raw string) {
				if b, ok := parseBoolParam(raw); ok {
					f.Archived = b
				}
			}},
		}},
		{canonical: "sortBy", sources: []paramSource{
			{name: "sortBy", apply: func(f *SearchFilters, raw string) {
				if s := SortBy(raw); isValidSortBy(s) {
					f.SortBy = s
				}
			}},
		}},
		// limit before page: the offset→page conversion divides by limit.
		{canonical: "limit", sources: []paramSource{
			{name: "limit", apply: func(f *SearchFilters, raw string) {
				if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
					f.Limit = n
				}
			}},
		}},
		{canonical: "page", sources: []paramSource{
			{name: "page", apply: func(f *SearchFilters, raw string) {
				if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 1 {
					f.Page = n
				}
			}},
			{name: "offset", apply: func(f *SearchFilters, raw string) {
				if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 0 {
					f.Page = n/f.Limit + 1
				}
			}},
		}},
	}
}

// ParseFilters normalizes raw query parameters into canonical
// SearchFilters. Both current parameter names and their legacy aliases are
// accepted; when both are present the current name wins. Malformed values
// fall back to documented defaults; the sole error condition is a query
// shorter than MinQueryLen runes after trimming.
func ParseFilters(params url.Values) (SearchFilters, error) {
	f := SearchFilters{
		Type:   TypeAll,
		SortBy: SortRelevance,
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	for _, b := range precedenceTable() {
		for _, src := range b.sources {
			if !params.Has(src.name) {
				continue
			}
			src.apply(&f, params.Get(src.name))
			break
		}
	}

	// Clamp after the table so an oversized explicit limit still lands on
	// the cap rather than erroring.
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Page < 1 {
		f.Page = DefaultPage
	}

	if utf8.RuneCountInString(f.Query) < MinQueryLen {
		return f, ErrQueryTooShort
	}
	return f, nil
}

// EndOfDay normalizes t to 23:59:59.999 in its own location, making a
// dateTo bound inclusive of the whole day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999*int(time.Millisecond), t.Location())
}

func setQuery(f *SearchFilters, raw string) {
	f.Query = strings.TrimSpace(raw)
}

func isValidType(t SearchType) bool {
	_, ok := validSearchTypes[t]
	return ok
}

func isValidSortBy(s SortBy) bool {
	_, ok := validSortBys[s]
	return ok
}

func isValidPersonality(p string) bool {
	for _, known := range domain.Personalities {
		if p == known {
			return true
		}
	}
	return false
}

// parseBoolParam accepts only the literal strings "true" and "false"
// (case-insensitive); anything else is treated as absent.
func parseBoolParam(raw string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// parseTimeParam accepts RFC 3339 timestamps and bare ISO dates.
func parseTimeParam(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

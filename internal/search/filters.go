// Package search implements the core of the conversation/message search
// engine: canonical filter normalization, regex-safe term escaping and
// highlighting, relevance scoring, and facet date-bucket math.
//
// The package is pure: it touches no storage and no transport. The repo
// layer translates SearchFilters into store predicates; the services layer
// orchestrates queries and applies the scorer and highlighter to the
// fetched page.
package search

import "time"

// SearchType selects which entity classes a search runs over.
type SearchType string

const (
	TypeAll           SearchType = "all"
	TypeConversations SearchType = "conversations"
	TypeMessages      SearchType = "messages"
)

// SortBy selects result ordering.
type SortBy string

const (
	SortRelevance    SortBy = "relevance"
	SortDate         SortBy = "date"
	SortMessageCount SortBy = "messageCount"
)

// Limits and defaults applied during normalization.
const (
	// MinQueryLen is the minimum query length (in runes, after trim).
	// Anything shorter is the one and only validation failure.
	MinQueryLen = 2

	// DefaultLimit and MaxLimit bound the page size.
	DefaultLimit = 20
	MaxLimit     = 50

	// DefaultPage is used whenever page/offset parameters are absent or
	// unparseable.
	DefaultPage = 1
)

// SearchFilters is the canonical, immutable-per-request filter structure
// every search request is normalized into. Construct it via ParseFilters;
// hand-built values should respect the same invariants (positive page,
// limit within [1, MaxLimit], trimmed query).
type SearchFilters struct {
	// Query is the search term, trimmed, at least MinQueryLen runes.
	Query string

	// Type selects conversations, messages, or both.
	Type SearchType

	// DateFrom/DateTo bound the result range (inclusive). DateTo is
	// normalized to the end of its day.
	DateFrom *time.Time
	DateTo   *time.Time

	// IsAI filters AI vs. human conversations when set.
	IsAI *bool

	// Personality narrows AI conversations to one personality key.
	// Empty means no personality filter.
	Personality string

	// TagIDs keeps conversations carrying at least one of these tags.
	TagIDs []string

	// HasAttachments keeps messages with (or without) an image when set.
	HasAttachments *bool

	// Archived includes archived conversations when true. The default
	// (false) excludes conversations the requesting user archived.
	Archived bool

	SortBy SortBy

	// Page is 1-based; Limit is capped at MaxLimit.
	Page  int
	Limit int
}

// Offset returns the store offset implied by Page and Limit.
func (f SearchFilters) Offset() int {
	return (f.Page - 1) * f.Limit
}

// validSearchTypes, validSortBys, and validPersonalities back the
// permissive enum handling in the normalizer: unknown values degrade to
// the default instead of erroring.
var validSearchTypes = map[SearchType]struct{}{
	TypeAll:           {},
	TypeConversations: {},
	TypeMessages:      {},
}

var validSortBys = map[SortBy]struct{}{
	SortRelevance:    {},
	SortDate:         {},
	SortMessageCount: {},
}

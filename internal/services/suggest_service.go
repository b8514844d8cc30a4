// Package services – SuggestionService
//
// Lightweight auto-complete over conversation names and tag names. Two
// bounded lookups, no relevance scoring: store-level recency for
// conversations and alphabetical order for tags are the only ordering
// signals. Results are cached in a bounded TTL cache injected by the
// caller, keyed by (user, query, limit).
package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/convospace/go-search-backend/internal/cache"
	"github.com/convospace/go-search-backend/internal/domain"
	"github.com/convospace/go-search-backend/internal/search"
)

// Suggestion bounds. Each lookup is capped at the requested limit and the
// combined list at twice that.
const (
	DefaultSuggestionLimit = 5
	MaxSuggestionLimit     = 20
)

// SuggestionType discriminates the two suggestion sources.
type SuggestionType string

const (
	SuggestionConversation SuggestionType = "conversation"
	SuggestionTag          SuggestionType = "tag"
)

// Suggestion is one auto-complete entry. Context is a human-readable
// label describing where the suggestion came from; Highlighted carries
// Text with the query occurrences wrapped in match markers.
type Suggestion struct {
	Type        SuggestionType `json:"type"`
	Text        string         `json:"text"`
	Context     string         `json:"context"`
	Highlighted string         `json:"highlighted"`
}

// SuggestStore defines the data-access contract for suggestions.
type SuggestStore interface {
	SuggestConversations(ctx context.Context, db *gorm.DB, userID, query string, limit int) ([]domain.Conversation, error)
	SuggestTags(ctx context.Context, db *gorm.DB, userID, query string, limit int) ([]domain.Tag, error)
}

// SuggestionService serves auto-complete requests.
type SuggestionService struct {
	DB    *gorm.DB
	Store SuggestStore

	// Cache is optional; when set, suggestion lists are reused for the
	// cache's TTL.
	Cache *cache.TTLCache
}

// personalityCaser renders personality keys as display labels
// ("helpful" → "Helpful").
var personalityCaser = cases.Title(language.English)

// Suggest returns up to 2×limit suggestions for query, or an empty list
// when the query is shorter than the search minimum. Store failures are
// logged and surfaced as ErrSuggestFailed.
func (s *SuggestionService) Suggest(ctx context.Context, userID, query string, limit int) ([]Suggestion, error) {
	tr := otel.Tracer("services/SuggestionService")
	ctx, span := tr.Start(ctx, "Suggest",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < search.MinQueryLen {
		return []Suggestion{}, nil
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	if limit > MaxSuggestionLimit {
		limit = MaxSuggestionLimit
	}

	key := fmt.Sprintf("%s|%s|%d", userID, strings.ToLower(query), limit)
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if cached, ok := v.([]Suggestion); ok {
				span.SetAttributes(attribute.Bool("cache.hit", true))
				return cached, nil
			}
		}
	}

	convs, err := s.Store.SuggestConversations(ctx, s.DB, userID, query, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("conversation suggestions failed")
		return nil, ErrSuggestFailed
	}
	tags, err := s.Store.SuggestTags(ctx, s.DB, userID, query, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("tag suggestions failed")
		return nil, ErrSuggestFailed
	}

	out := make([]Suggestion, 0, len(convs)+len(tags))
	for _, c := range convs {
		out = append(out, Suggestion{
			Type:        SuggestionConversation,
			Text:        c.Name,
			Context:     conversationContext(c),
			Highlighted: search.HighlightSearchTerm(c.Name, query),
		})
	}
	for _, t := range tags {
		out = append(out, Suggestion{
			Type:        SuggestionTag,
			Text:        t.Name,
			Context:     "Tag",
			Highlighted: search.HighlightSearchTerm(t.Name, query),
		})
	}

	if max := 2 * limit; len(out) > max {
		out = out[:max]
	}

	if s.Cache != nil {
		s.Cache.Set(key, out)
	}
	return out, nil
}

// conversationContext renders the label shown next to a conversation
// suggestion.
func conversationContext(c domain.Conversation) string {
	switch {
	case c.IsAI && c.Personality != "":
		return "AI chat · " + personalityCaser.String(c.Personality)
	case c.IsAI:
		return "AI chat"
	case c.IsGroup:
		return "Group chat"
	default:
		return "Direct chat"
	}
}

// Package services – SearchService
//
// This file implements SearchService, the component that owns a full
// search request: it fans out the conversation and message pipelines
// (concurrently when the requested type allows), re-ranks pages in memory
// when relevance ordering is requested, decorates message bodies with
// highlight markers, and assembles the paginated response envelope.
//
// Failure of either pipeline aborts the combined response; partial
// results are never returned. Store errors are logged with full detail
// and surfaced to callers as the generic ErrSearchFailed.
//
// Observability: public methods are OpenTelemetry-instrumented; spans
// carry the user, query length, type, and pagination parameters.
package services

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/convospace/go-search-backend/internal/domain"
	"github.com/convospace/go-search-backend/internal/search"
)

// SearchStore defines the data-access contract required by SearchService.
// The production implementation delegates to the repo package; tests
// substitute fakes.
type SearchStore interface {
	// SearchConversations returns one store-ordered page of conversations.
	SearchConversations(ctx context.Context, db *gorm.DB, userID string, f search.SearchFilters, offset, limit int) ([]domain.Conversation, error)

	// CountConversations returns the total matching conversation count.
	CountConversations(ctx context.Context, db *gorm.DB, userID string, f search.SearchFilters) (int64, error)

	// SearchMessages returns one store-ordered page of messages.
	SearchMessages(ctx context.Context, db *gorm.DB, userID string, f search.SearchFilters, offset, limit int) ([]domain.Message, error)

	// CountMessages returns the total matching message count.
	CountMessages(ctx context.Context, db *gorm.DB, userID string, f search.SearchFilters) (int64, error)

	// MessageCounts returns non-deleted message counts per conversation.
	MessageCounts(ctx context.Context, db *gorm.DB, convIDs []string) (map[string]int64, error)

	// ArchivedSet reports which conversations the user has archived.
	ArchivedSet(ctx context.Context, db *gorm.DB, userID string, convIDs []string) (map[string]bool, error)
}

// UserSummary is the participant/sender projection embedded in results.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TagSummary is the tag projection embedded in conversation results.
type TagSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ConversationSummary identifies the parent conversation of a message hit.
type ConversationSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAI    bool   `json:"isAI"`
	IsGroup bool   `json:"isGroup"`
}

// ConversationResult is one conversation hit. RelevanceScore is present
// only for sortBy=relevance requests.
type ConversationResult struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	IsAI           bool          `json:"isAI"`
	IsGroup        bool          `json:"isGroup"`
	Personality    string        `json:"personality,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	Participants   []UserSummary `json:"participants"`
	MessageCount   int64         `json:"messageCount"`
	Tags           []TagSummary  `json:"tags"`
	IsArchived     bool          `json:"isArchived"`
	RelevanceScore *int          `json:"relevanceScore,omitempty"`
}

// MessageResult is one message hit. HighlightedContent carries the same
// text as Content with every query occurrence wrapped in match markers.
type MessageResult struct {
	ID                 string              `json:"id"`
	Content            string              `json:"content"`
	HighlightedContent string              `json:"highlightedContent"`
	CreatedAt          time.Time           `json:"createdAt"`
	IsAI               bool                `json:"isAI"`
	HasImage           bool                `json:"hasImage"`
	Sender             UserSummary         `json:"sender"`
	Conversation       ConversationSummary `json:"conversation"`
	RelevanceScore     *int                `json:"relevanceScore,omitempty"`
}

// SearchResult is the combined paginated envelope for one request.
type SearchResult struct {
	ConversationCount int64                `json:"conversationCount"`
	MessageCount      int64                `json:"messageCount"`
	Conversations     []ConversationResult `json:"conversations"`
	Messages          []MessageResult      `json:"messages"`
	Page              int                  `json:"page"`
	Limit             int                  `json:"limit"`
	TotalPages        int                  `json:"totalPages"`
	HasMore           bool                 `json:"hasMore"`
	SearchTimeMs      int64                `json:"searchTimeMs"`
}

// SearchService coordinates the conversation and message search pipelines.
type SearchService struct {
	DB    *gorm.DB
	Store SearchStore

	// Now is the clock seam used by relevance scoring; nil means
	// time.Now.
	Now func() time.Time
}

// Search runs the combined search for userID with the given canonical
// filters. When f.Type is "all" the two entity pipelines run concurrently
// and are joined; failure of either fails the whole request.
func (s *SearchService) Search(ctx context.Context, userID string, f search.SearchFilters) (*SearchResult, error) {
	tr := otel.Tracer("services/SearchService")
	ctx, span := tr.Start(ctx, "Search",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("search.type", string(f.Type)),
			attribute.String("search.sort", string(f.SortBy)),
			attribute.Int("search.page", f.Page),
			attribute.Int("search.limit", f.Limit),
		),
	)
	defer span.End()

	if utf8.RuneCountInString(strings.TrimSpace(f.Query)) < search.MinQueryLen {
		return nil, ErrQueryTooShort
	}

	start := time.Now()
	out := &SearchResult{
		Conversations: []ConversationResult{},
		Messages:      []MessageResult{},
		Page:          f.Page,
		Limit:         f.Limit,
	}

	g, gctx := errgroup.WithContext(ctx)

	if f.Type == search.TypeAll || f.Type == search.TypeConversations {
		g.Go(func() error {
			items, total, err := s.searchConversations(gctx, userID, f)
			if err != nil {
				return err
			}
			out.Conversations = items
			out.ConversationCount = total
			return nil
		})
	}
	if f.Type == search.TypeAll || f.Type == search.TypeMessages {
		g.Go(func() error {
			items, total, err := s.searchMessages(gctx, userID, f)
			if err != nil {
				return err
			}
			out.Messages = items
			out.MessageCount = total
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("search pipeline failed")
		return nil, ErrSearchFailed
	}

	// Pagination metadata: for type=all, paging continues while either
	// entity class still has rows.
	pagedTotal := out.ConversationCount
	switch f.Type {
	case search.TypeMessages:
		pagedTotal = out.MessageCount
	case search.TypeAll:
		if out.MessageCount > pagedTotal {
			pagedTotal = out.MessageCount
		}
	}
	out.TotalPages = int((pagedTotal + int64(f.Limit) - 1) / int64(f.Limit))
	out.HasMore = f.Page < out.TotalPages
	out.SearchTimeMs = time.Since(start).Milliseconds()

	return out, nil
}

// searchConversations runs the conversation pipeline: concurrent count +
// page queries, per-item enrichment (message counts, archived flags), and
// the optional in-memory relevance re-rank.
func (s *SearchService) searchConversations(ctx context.Context, userID string, f search.SearchFilters) ([]ConversationResult, int64, error) {
	var (
		rows  []domain.Conversation
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.Store.SearchConversations(gctx, s.DB, userID, f, f.Offset(), f.Limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.Store.CountConversations(gctx, s.DB, userID, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	ids := make([]string, len(rows))
	for i, c := range rows {
		ids[i] = c.ID
	}
	msgCounts, err := s.Store.MessageCounts(ctx, s.DB, ids)
	if err != nil {
		return nil, 0, err
	}
	archived, err := s.Store.ArchivedSet(ctx, s.DB, userID, ids)
	if err != nil {
		return nil, 0, err
	}

	now := s.clock()
	results := make([]ConversationResult, 0, len(rows))
	for _, c := range rows {
		r := ConversationResult{
			ID:           c.ID,
			Name:         c.Name,
			IsAI:         c.IsAI,
			IsGroup:      c.IsGroup,
			Personality:  c.Personality,
			CreatedAt:    c.CreatedAt,
			UpdatedAt:    c.UpdatedAt,
			Participants: participantSummaries(c.Participants, userID),
			MessageCount: msgCounts[c.ID],
			Tags:         tagSummaries(c.Tags),
			IsArchived:   archived[c.ID],
		}
		if f.SortBy == search.SortRelevance {
			score := search.Score(c.Name, f.Query, search.Factors{
				Title:        true,
				UpdatedAt:    c.UpdatedAt,
				MessageCount: int(msgCounts[c.ID]),
				Now:          now,
			})
			r.RelevanceScore = &score
		}
		results = append(results, r)
	}

	if f.SortBy == search.SortRelevance {
		// Stable sort: the store already returned most-recent-first, so
		// equal scores keep their recency order.
		sort.SliceStable(results, func(i, j int) bool {
			return *results[i].RelevanceScore > *results[j].RelevanceScore
		})
	}

	return results, total, nil
}

// searchMessages runs the message pipeline: concurrent count + page
// queries, highlighting, and the optional in-memory relevance re-rank.
func (s *SearchService) searchMessages(ctx context.Context, userID string, f search.SearchFilters) ([]MessageResult, int64, error) {
	var (
		rows  []domain.Message
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.Store.SearchMessages(gctx, s.DB, userID, f, f.Offset(), f.Limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.Store.CountMessages(gctx, s.DB, userID, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	// Engagement signal for message hits comes from the parent
	// conversation's message count.
	convIDs := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, m := range rows {
		if _, ok := seen[m.ConversationID]; !ok {
			seen[m.ConversationID] = struct{}{}
			convIDs = append(convIDs, m.ConversationID)
		}
	}
	msgCounts, err := s.Store.MessageCounts(ctx, s.DB, convIDs)
	if err != nil {
		return nil, 0, err
	}

	now := s.clock()
	results := make([]MessageResult, 0, len(rows))
	for _, m := range rows {
		r := MessageResult{
			ID:                 m.ID,
			Content:            m.Content,
			HighlightedContent: search.HighlightSearchTerm(m.Content, f.Query),
			CreatedAt:          m.CreatedAt,
			IsAI:               m.IsAI,
			HasImage:           m.ImageURL != nil,
			Sender:             UserSummary{ID: m.Sender.ID, Name: m.Sender.Name},
			Conversation: ConversationSummary{
				ID:      m.Conversation.ID,
				Name:    m.Conversation.Name,
				IsAI:    m.Conversation.IsAI,
				IsGroup: m.Conversation.IsGroup,
			},
		}
		if f.SortBy == search.SortRelevance {
			score := search.Score(m.Content, f.Query, search.Factors{
				UpdatedAt:    m.CreatedAt,
				MessageCount: int(msgCounts[m.ConversationID]),
				Now:          now,
			})
			r.RelevanceScore = &score
		}
		results = append(results, r)
	}

	if f.SortBy == search.SortRelevance {
		sort.SliceStable(results, func(i, j int) bool {
			return *results[i].RelevanceScore > *results[j].RelevanceScore
		})
	}

	return results, total, nil
}

func (s *SearchService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// participantSummaries projects the participant list, excluding the
// searching user (clients render "the other side" of the conversation).
func participantSummaries(users []domain.User, excludeID string) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		if u.ID == excludeID {
			continue
		}
		out = append(out, UserSummary{ID: u.ID, Name: u.Name})
	}
	return out
}

func tagSummaries(tags []domain.Tag) []TagSummary {
	out := make([]TagSummary, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagSummary{ID: t.ID, Name: t.Name, Color: t.Color})
	}
	return out
}

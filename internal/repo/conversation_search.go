// Package repo – conversation search queries.
//
// The functions here translate canonical search.SearchFilters into GORM
// predicates. Every query is scoped to the requesting user's visible
// conversations before it reaches the store; no unscoped predicate is
// ever emitted.
//
// Error semantics follow the rest of the package: raw gorm errors are
// propagated and the service layer decides what to surface.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/convospace/go-search-backend/internal/domain"
	"github.com/convospace/go-search-backend/internal/search"
)

// conversationScope builds the base predicate for conversation search:
// membership of userID, the archived exclusion, the facet filters, and,
// when query is non-empty, a containment match on the conversation name
// or on any non-deleted message body.
func conversationScope(db *gorm.DB, userID string, f search.SearchFilters) *gorm.DB {
	q := db.Model(&domain.Conversation{}).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id AND cp.user_id = ?", userID)

	if !f.Archived {
		q = q.Where("NOT EXISTS (SELECT 1 FROM conversation_archives ca WHERE ca.conversation_id = conversations.id AND ca.user_id = ?)", userID)
	}

	if f.Query != "" {
		pat := likePattern(f.Query)
		q = q.Where(`(LOWER(conversations.name) LIKE ? ESCAPE '\'
			OR EXISTS (SELECT 1 FROM messages m
				WHERE m.conversation_id = conversations.id
				AND m.deleted_at IS NULL
				AND LOWER(m.content) LIKE ? ESCAPE '\'))`, pat, pat)
	}

	if f.IsAI != nil {
		q = q.Where("conversations.is_ai = ?", *f.IsAI)
	}
	if f.Personality != "" {
		q = q.Where("conversations.personality = ?", f.Personality)
	}
	if len(f.TagIDs) > 0 {
		q = q.Where("EXISTS (SELECT 1 FROM conversation_tags ct WHERE ct.conversation_id = conversations.id AND ct.tag_id IN ?)", f.TagIDs)
	}
	if f.DateFrom != nil {
		q = q.Where("conversations.updated_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("conversations.updated_at <= ?", *f.DateTo)
	}

	return q
}

// SearchConversations returns one page of conversations matching f,
// ordered at the store level. Relevance sorting requests most-recent-first
// as its stable base ordering; the in-process scorer re-ranks the page.
// Participants and tags are preloaded for result assembly.
func SearchConversations(ctx context.Context, db *gorm.DB, userID string, f search.SearchFilters, offset, limit int) ([]domain.Conversation, error) {
	q := conversationScope(db.WithContext(ctx), userID, f).
		Preload("Participants").
		Preload("Tags")

	switch f.SortBy {
	case search.SortMessageCount:
		q = q.Order("(SELECT COUNT(*) FROM messages mc WHERE mc.conversation_id = conversations.id AND mc.deleted_at IS NULL) DESC")
	default:
		q = q.Order("conversations.updated_at DESC")
	}

	var out []domain.Conversation
	err := q.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountConversations returns the total number of conversations matching f.
func CountConversations(ctx context.Context, db *gorm.DB, userID string, f search.SearchFilters) (int64, error) {
	var total int64
	err := conversationScope(db.WithContext(ctx), userID, f).Count(&total).Error
	return total, err
}

// MessageCounts returns the number of non-deleted messages per
// conversation for the given IDs, in one grouped query.
func MessageCounts(ctx context.Context, db *gorm.DB, convIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(convIDs))
	if len(convIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ConversationID string
		N              int64
	}
	err := db.WithContext(ctx).
		Model(&domain.Message{}).
		Select("conversation_id, COUNT(*) AS n").
		Where("conversation_id IN ?", convIDs).
		Group("conversation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.ConversationID] = r.N
	}
	return counts, nil
}

// ArchivedSet reports which of the given conversations userID has
// archived, as a membership set.
func ArchivedSet(ctx context.Context, db *gorm.DB, userID string, convIDs []string) (map[string]bool, error) {
	archived := make(map[string]bool, len(convIDs))
	if len(convIDs) == 0 {
		return archived, nil
	}

	var ids []string
	err := db.WithContext(ctx).
		Table("conversation_archives").
		Select("conversation_id").
		Where("user_id = ? AND conversation_id IN ?", userID, convIDs).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		archived[id] = true
	}
	return archived, nil
}

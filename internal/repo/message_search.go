// Package repo – message search queries.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/convospace/go-search-backend/internal/domain"
	"github.com/convospace/go-search-backend/internal/search"
)

// messageScope builds the base predicate for message search: body
// containment, membership of userID, and the conversation-level facets
// (AI flag, personality, tags, archived) applied through the joined
// conversation row. GORM's soft-delete filter covers messages; the joined
// conversation is filtered explicitly.
func messageScope(db *gorm.DB, userID string, f search.SearchFilters) *gorm.DB {
	q := db.Model(&domain.Message{}).
		Joins("JOIN conversations c ON c.id = messages.conversation_id AND c.deleted_at IS NULL").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = c.id AND cp.user_id = ?", userID)

	if !f.Archived {
		q = q.Where("NOT EXISTS (SELECT 1 FROM conversation_archives ca WHERE ca.conversation_id = c.id AND ca.user_id = ?)", userID)
	}

	if f.Query != "" {
		q = q.Where(`LOWER(messages.content) LIKE ? ESCAPE '\'`, likePattern(f.Query))
	}

	if f.IsAI != nil {
		q = q.Where("c.is_ai = ?", *f.IsAI)
	}
	if f.Personality != "" {
		q = q.Where("c.personality = ?", f.Personality)
	}
	if len(f.TagIDs) > 0 {
		q = q.Where("EXISTS (SELECT 1 FROM conversation_tags ct WHERE ct.conversation_id = c.id AND ct.tag_id IN ?)", f.TagIDs)
	}
	if f.HasAttachments != nil {
		if *f.HasAttachments {
			q = q.Where("messages.image_url IS NOT NULL")
		} else {
			q = q.Where("messages.image_url IS NULL")
		}
	}
	if f.DateFrom != nil {
		q = q.Where("messages.created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("messages.created_at <= ?", *f.DateTo)
	}

	return q
}

// SearchMessages returns one page of messages matching f, newest first
// (the stable base ordering for every message sort mode). Sender and
// parent conversation are preloaded for result assembly.
func SearchMessages(ctx context.Context, db *gorm.DB, userID string, f search.SearchFilters, offset, limit int) ([]domain.Message, error) {
	var out []domain.Message
	err := messageScope(db.WithContext(ctx), userID, f).
		Preload("Sender").
		Preload("Conversation").
		Order("messages.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountMessages returns the total number of messages matching f.
func CountMessages(ctx context.Context, db *gorm.DB, userID string, f search.SearchFilters) (int64, error) {
	var total int64
	err := messageScope(db.WithContext(ctx), userID, f).Count(&total).Error
	return total, err
}

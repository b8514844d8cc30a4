// Package repo – bounded lookups backing the suggestion engine.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/convospace/go-search-backend/internal/domain"
)

// SuggestConversations returns up to limit of the user's conversations
// whose name contains query, most recently active first. Archived
// conversations are excluded; suggestions should not resurface what the
// user has put away.
func SuggestConversations(ctx context.Context, db *gorm.DB, userID, query string, limit int) ([]domain.Conversation, error) {
	var out []domain.Conversation
	err := db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id AND cp.user_id = ?", userID).
		Where("NOT EXISTS (SELECT 1 FROM conversation_archives ca WHERE ca.conversation_id = conversations.id AND ca.user_id = ?)", userID).
		Where(`LOWER(conversations.name) LIKE ? ESCAPE '\'`, likePattern(query)).
		Order("conversations.updated_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SuggestTags returns up to limit of the user's own tags whose name
// contains query, alphabetically.
func SuggestTags(ctx context.Context, db *gorm.DB, userID, query string, limit int) ([]domain.Tag, error) {
	var out []domain.Tag
	err := db.WithContext(ctx).
		Model(&domain.Tag{}).
		Where("user_id = ?", userID).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(query)).
		Order("name ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

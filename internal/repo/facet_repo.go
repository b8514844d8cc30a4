// Package repo – facet aggregation queries.
//
// Facets run over the same base predicate as conversation search, always
// scoped to the requesting user's non-archived conversations and narrowed
// by the query when one is provided.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/convospace/go-search-backend/internal/search"
)

// TagCount is one row of the tag facet.
type TagCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int64  `json:"count"`
}

// facetScope is the conversation base predicate shared by all facet
// aggregates: only the query carries over from the request filters, and
// archived conversations are always excluded.
func facetScope(db *gorm.DB, userID, query string) *gorm.DB {
	return conversationScope(db, userID, search.SearchFilters{Query: query})
}

// FacetTypeCounts returns conversation counts grouped by AI/human.
func FacetTypeCounts(ctx context.Context, db *gorm.DB, userID, query string) (ai, human int64, err error) {
	var rows []struct {
		IsAI bool
		N    int64
	}
	err = facetScope(db.WithContext(ctx), userID, query).
		Select("conversations.is_ai AS is_ai, COUNT(*) AS n").
		Group("conversations.is_ai").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}
	for _, r := range rows {
		if r.IsAI {
			ai = r.N
		} else {
			human = r.N
		}
	}
	return ai, human, nil
}

// FacetPersonalityCounts returns conversation counts grouped by
// personality key. Conversations without a personality are omitted; the
// service layer zero-fills the full key set.
func FacetPersonalityCounts(ctx context.Context, db *gorm.DB, userID, query string) (map[string]int64, error) {
	var rows []struct {
		Personality string
		N           int64
	}
	err := facetScope(db.WithContext(ctx), userID, query).
		Where("conversations.personality <> ''").
		Select("conversations.personality AS personality, COUNT(*) AS n").
		Group("conversations.personality").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Personality] = r.N
	}
	return out, nil
}

// FacetTagCounts returns per-tag conversation counts with tag metadata
// for rendering filter chips.
func FacetTagCounts(ctx context.Context, db *gorm.DB, userID, query string) ([]TagCount, error) {
	sub := facetScope(db.WithContext(ctx), userID, query).
		Select("conversations.id")

	var rows []TagCount
	err := db.WithContext(ctx).
		Table("tags").
		Select("tags.id AS id, tags.name AS name, tags.color AS color, COUNT(ct.conversation_id) AS count").
		Joins("JOIN conversation_tags ct ON ct.tag_id = tags.id").
		Where("ct.conversation_id IN (?)", sub).
		Group("tags.id, tags.name, tags.color").
		Order("count DESC, tags.name ASC").
		Scan(&rows).Error
	return rows, err
}

// FacetDateCounts buckets the scoped conversations by last activity.
// The three range counts use the engine-computed boundaries; "older" is
// the caller's job (total minus the rest), which keeps the buckets
// summing exactly to total.
func FacetDateCounts(ctx context.Context, db *gorm.DB, userID, query string, b search.DateBounds) (total, today, week, month int64, err error) {
	scope := func() *gorm.DB { return facetScope(db.WithContext(ctx), userID, query) }

	if err = scope().Count(&total).Error; err != nil {
		return
	}
	if err = scope().Where("conversations.updated_at >= ?", b.Today).Count(&today).Error; err != nil {
		return
	}
	if err = scope().
		Where("conversations.updated_at >= ? AND conversations.updated_at < ?", b.WeekAgo, b.Today).
		Count(&week).Error; err != nil {
		return
	}
	err = scope().
		Where("conversations.updated_at >= ? AND conversations.updated_at < ?", b.MonthAgo, b.WeekAgo).
		Count(&month).Error
	return
}

// FacetAttachmentCount counts messages carrying an image within the
// scoped conversations, narrowed by query when present.
func FacetAttachmentCount(ctx context.Context, db *gorm.DB, userID, query string) (int64, error) {
	hasImg := true
	f := search.SearchFilters{Query: query, HasAttachments: &hasImg}

	var total int64
	err := messageScope(db.WithContext(ctx), userID, f).Count(&total).Error
	return total, err
}

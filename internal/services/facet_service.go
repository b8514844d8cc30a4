// Package services – FacetService
//
// Facet aggregation for the filter UI. Counts run over the conversation
// search base predicate (non-archived, user-scoped, optionally narrowed
// by query). Every personality key is always present in the output, and
// the four date buckets sum exactly to the unfiltered total because
// "older" is derived by subtraction rather than queried.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/convospace/go-search-backend/internal/domain"
	"github.com/convospace/go-search-backend/internal/repo"
	"github.com/convospace/go-search-backend/internal/search"
)

// TypeFacet counts conversations by class.
type TypeFacet struct {
	AI    int64 `json:"ai"`
	Human int64 `json:"human"`
}

// DateFacet buckets conversations by last activity. Buckets are mutually
// exclusive and sum to the total of the scoped set.
type DateFacet struct {
	Today     int64 `json:"today"`
	ThisWeek  int64 `json:"thisWeek"`
	ThisMonth int64 `json:"thisMonth"`
	Older     int64 `json:"older"`
}

// Facets is the full facet payload for building filter UIs.
type Facets struct {
	ByType          TypeFacet        `json:"byType"`
	ByPersonality   map[string]int64 `json:"byPersonality"`
	ByTag           []repo.TagCount  `json:"byTag"`
	ByDate          DateFacet        `json:"byDate"`
	WithAttachments int64            `json:"withAttachments"`
}

// FacetStore defines the data-access contract for facet aggregation.
type FacetStore interface {
	FacetTypeCounts(ctx context.Context, db *gorm.DB, userID, query string) (ai, human int64, err error)
	FacetPersonalityCounts(ctx context.Context, db *gorm.DB, userID, query string) (map[string]int64, error)
	FacetTagCounts(ctx context.Context, db *gorm.DB, userID, query string) ([]repo.TagCount, error)
	FacetDateCounts(ctx context.Context, db *gorm.DB, userID, query string, b search.DateBounds) (total, today, week, month int64, err error)
	FacetAttachmentCount(ctx context.Context, db *gorm.DB, userID, query string) (int64, error)
}

// FacetService computes filter-dimension counts.
type FacetService struct {
	DB    *gorm.DB
	Store FacetStore

	// Now anchors the date buckets; nil means time.Now.
	Now func() time.Time
}

// zeroPersonalities builds the personality count map with every known
// key present, so clients always see the full dimension.
func zeroPersonalities() map[string]int64 {
	out := make(map[string]int64, len(domain.Personalities))
	for _, p := range domain.Personalities {
		out[p] = 0
	}
	return out
}

// Facets computes all facet dimensions for userID, narrowed by query when
// non-empty. It runs as its own phase after the primary search; failures
// are logged and surfaced as ErrFacetsFailed.
func (s *FacetService) Facets(ctx context.Context, userID, query string) (*Facets, error) {
	tr := otel.Tracer("services/FacetService")
	ctx, span := tr.Start(ctx, "Facets",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	ai, human, err := s.Store.FacetTypeCounts(ctx, s.DB, userID, query)
	if err != nil {
		return nil, s.fail(userID, "type facet", err)
	}

	byPersonality := zeroPersonalities()
	counts, err := s.Store.FacetPersonalityCounts(ctx, s.DB, userID, query)
	if err != nil {
		return nil, s.fail(userID, "personality facet", err)
	}
	for k, n := range counts {
		if _, known := byPersonality[k]; known {
			byPersonality[k] = n
		}
	}

	byTag, err := s.Store.FacetTagCounts(ctx, s.DB, userID, query)
	if err != nil {
		return nil, s.fail(userID, "tag facet", err)
	}

	total, today, week, month, err := s.Store.FacetDateCounts(ctx, s.DB, userID, query, search.DateBucketBounds(now))
	if err != nil {
		return nil, s.fail(userID, "date facet", err)
	}

	attachments, err := s.Store.FacetAttachmentCount(ctx, s.DB, userID, query)
	if err != nil {
		return nil, s.fail(userID, "attachment facet", err)
	}

	return &Facets{
		ByType:        TypeFacet{AI: ai, Human: human},
		ByPersonality: byPersonality,
		ByTag:         byTag,
		ByDate: DateFacet{
			Today:     today,
			ThisWeek:  week,
			ThisMonth: month,
			Older:     total - today - week - month,
		},
		WithAttachments: attachments,
	}, nil
}

func (s *FacetService) fail(userID, stage string, err error) error {
	log.Error().Err(err).Str("user_id", userID).Str("stage", stage).Msg("facet aggregation failed")
	return ErrFacetsFailed
}

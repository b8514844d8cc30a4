// Search HTTP handlers.
//
// This file exposes the search API:
//   - GET /search              (combined conversation/message search)
//   - GET /search/suggestions  (auto-complete over names and tags)
//
// Handlers are transport-thin: they normalize raw query parameters into
// canonical filters, delegate to the application services, and render the
// response envelope. Authentication is owned upstream; handlers read the
// already-resolved user identity from the Gin context (with an X-User-ID
// header fallback for tests and local runs).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/convospace/go-search-backend/internal/search"
	"github.com/convospace/go-search-backend/internal/services"
	"github.com/convospace/go-search-backend/internal/sysutil"
	"github.com/convospace/go-search-backend/internal/utils"
)

//
// Service contracts
//

// SearchService runs the combined conversation/message search.
type SearchService interface {
	// Search executes one normalized search request for userID.
	Search(ctx context.Context, userID string, f search.SearchFilters) (*services.SearchResult, error)
}

// SuggestionService serves auto-complete requests.
type SuggestionService interface {
	// Suggest returns up to 2×limit suggestions for query.
	Suggest(ctx context.Context, userID, query string, limit int) ([]services.Suggestion, error)
}

// FacetService computes filter-dimension counts.
type FacetService interface {
	// Facets aggregates counts for userID, narrowed by query.
	Facets(ctx context.Context, userID, query string) (*services.Facets, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the search API. It depends on
// abstract service interfaces to keep transport concerns separate from
// the engine.
type Handlers struct {
	searchSvc  SearchService
	suggestSvc SuggestionService
	facetSvc   FacetService
}

// New constructs a Handlers instance bound to the given services.
func New(searchSvc SearchService, suggestSvc SuggestionService, facetSvc FacetService) *Handlers {
	return &Handlers{searchSvc: searchSvc, suggestSvc: suggestSvc, facetSvc: facetSvc}
}

// userID extracts the authenticated user id from the Gin context (set by
// upstream auth middleware). If absent, it falls back to the X-User-ID
// header (tests use it), and finally to "demo-user".
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c.Request != nil {
		if s := c.GetHeader("X-User-ID"); s != "" {
			return s
		}
	}
	return "demo-user"
}

//
// Engine metrics
//

var (
	searchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_request_duration_seconds",
			Help:    "End-to-end duration of search requests by entity type.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)

	searchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_results_returned",
			Help:    "Number of results returned per search page.",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(searchDuration, searchResults)
}

//
// Handlers
//

// Search godoc
// @ID          search
// @Summary     Search conversations and messages
// @Description Runs a faceted search across the user's conversations and messages
// @Description with relevance scoring, highlighting, and optional facet counts.
// @Description Legacy parameter aliases (q, conversationType, tagId, offset) are
// @Description accepted; current names win when both are present.
// @Tags        Search
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID performing the search" example(user123)
// @Param       query          query   string  true  "Search term (min 2 characters)" minLength(2)
// @Param       type           query   string  false "all | conversations | messages" default(all)
// @Param       dateFrom       query   string  false "Inclusive lower bound (RFC 3339 or YYYY-MM-DD)"
// @Param       dateTo         query   string  false "Inclusive upper bound, normalized to end of day"
// @Param       isAI           query   bool    false "AI vs. human conversations"
// @Param       personality    query   string  false "helpful | concise | creative | analytical | empathetic | professional | custom"
// @Param       tagIds         query   string  false "Comma-separated tag IDs"
// @Param       hasAttachments query   bool    false "Messages carrying an image"
// @Param       archived       query   bool    false "Include archived conversations" default(false)
// @Param       sortBy         query   string  false "relevance | date | messageCount" default(relevance)
// @Param       page           query   int     false "Page number" minimum(1) default(1)
// @Param       limit          query   int     false "Page size" minimum(1) maximum(50) default(20)
// @Param       includeFacets  query   bool    false "Include facet counts in the response"
//
// @Success     200 {object} handlers.SearchResponse
// @Failure     400 {object} handlers.ErrorResponse "Query too short"
// @Failure     500 {object} handlers.ErrorResponse "Search failed"
// @Router      /search [get]
func (h *Handlers) Search(c *gin.Context) {
	ctx := c.Request.Context()
	start := time.Now()

	filters, err := search.ParseFilters(c.Request.URL.Query())
	if err != nil {
		// The normalizer's only failure mode; everything else degraded
		// to defaults.
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	currentUser := userID(c)

	res, err := h.searchSvc.Search(ctx, currentUser, filters)
	if err != nil {
		switch err {
		case services.ErrQueryTooShort:
			fail(c, http.StatusBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, services.ErrSearchFailed.Error())
		}
		return
	}

	resp := SearchResponse{Success: true, Data: res}

	if sysutil.IsTruthy(c.Query("includeFacets")) {
		facets, err := h.facetSvc.Facets(ctx, currentUser, filters.Query)
		if err != nil {
			fail(c, http.StatusInternalServerError, services.ErrFacetsFailed.Error())
			return
		}
		resp.Facets = facets
	}

	searchDuration.WithLabelValues(string(filters.Type)).Observe(time.Since(start).Seconds())
	searchResults.WithLabelValues(string(filters.Type)).
		Observe(float64(len(res.Conversations) + len(res.Messages)))

	ok(c, resp)
}

// Suggestions godoc
// @ID          searchSuggestions
// @Summary     Auto-complete suggestions
// @Description Returns conversation-name and tag-name suggestions for a partial
// @Description query. Empty below 2 characters.
// @Tags        Search
// @Produce     json
//
// @Param       X-User-ID query header string false "User ID" example(user123)
// @Param       query     query string true  "Partial search term"
// @Param       limit     query int    false "Cap per suggestion source" minimum(1) maximum(20) default(5)
//
// @Success     200 {object} handlers.SuggestionsResponse
// @Failure     500 {object} handlers.ErrorResponse "Suggestions failed"
// @Router      /search/suggestions [get]
func (h *Handlers) Suggestions(c *gin.Context) {
	ctx := c.Request.Context()

	query := c.Query("query")
	limit := utils.AtoiDefault(c.Query("limit"), services.DefaultSuggestionLimit)

	items, err := h.suggestSvc.Suggest(ctx, userID(c), query, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, services.ErrSuggestFailed.Error())
		return
	}

	ok(c, SuggestionsResponse{Success: true, Suggestions: items})
}

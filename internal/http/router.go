// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/convospace/go-search-backend/internal/cache"
	"github.com/convospace/go-search-backend/internal/config"
	"github.com/convospace/go-search-backend/internal/domain"
	"github.com/convospace/go-search-backend/internal/http/handlers"
	"github.com/convospace/go-search-backend/internal/http/middleware"
	"github.com/convospace/go-search-backend/internal/repo"
	"github.com/convospace/go-search-backend/internal/search"
	"github.com/convospace/go-search-backend/internal/services"
)

// searchStoreShim adapts the repository free functions to the store
// interfaces expected by the services. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type searchStoreShim struct{}

// SearchConversations proxies repo.SearchConversations.
func (searchStoreShim) SearchConversations(ctx context.Context, db *gorm.DB, userID string, f search.SearchFilters, offset, limit int) ([]domain.Conversation, error) {
	return repo.SearchConversations(ctx, db, userID, f, offset, limit)
}

// CountConversations proxies repo.CountConversations.
func (searchStoreShim) CountConversations(ctx context.Context, db *gorm.DB, userID string, f search.SearchFilters) (int64, error) {
	return repo.CountConversations(ctx, db, userID, f)
}

// SearchMessages proxies repo.SearchMessages.
func (searchStoreShim) SearchMessages(ctx context.Context, db *gorm.DB, userID string, f search.SearchFilters, offset, limit int) ([]domain.Message, error) {
	return repo.SearchMessages(ctx, db, userID, f, offset, limit)
}

// CountMessages proxies repo.CountMessages.
func (searchStoreShim) CountMessages(ctx context.Context, db *gorm.DB, userID string, f search.SearchFilters) (int64, error) {
	return repo.CountMessages(ctx, db, userID, f)
}

// MessageCounts proxies repo.MessageCounts (result enrichment).
func (searchStoreShim) MessageCounts(ctx context.Context, db *gorm.DB, convIDs []string) (map[string]int64, error) {
	return repo.MessageCounts(ctx, db, convIDs)
}

// ArchivedSet proxies repo.ArchivedSet (result enrichment).
func (searchStoreShim) ArchivedSet(ctx context.Context, db *gorm.DB, userID string, convIDs []string) (map[string]bool, error) {
	return repo.ArchivedSet(ctx, db, userID, convIDs)
}

// SuggestConversations proxies repo.SuggestConversations.
func (searchStoreShim) SuggestConversations(ctx context.Context, db *gorm.DB, userID, query string, limit int) ([]domain.Conversation, error) {
	return repo.SuggestConversations(ctx, db, userID, query, limit)
}

// SuggestTags proxies repo.SuggestTags.
func (searchStoreShim) SuggestTags(ctx context.Context, db *gorm.DB, userID, query string, limit int) ([]domain.Tag, error) {
	return repo.SuggestTags(ctx, db, userID, query, limit)
}

// FacetTypeCounts proxies repo.FacetTypeCounts.
func (searchStoreShim) FacetTypeCounts(ctx context.Context, db *gorm.DB, userID, query string) (ai, human int64, err error) {
	return repo.FacetTypeCounts(ctx, db, userID, query)
}

// FacetPersonalityCounts proxies repo.FacetPersonalityCounts.
func (searchStoreShim) FacetPersonalityCounts(ctx context.Context, db *gorm.DB, userID, query string) (map[string]int64, error) {
	return repo.FacetPersonalityCounts(ctx, db, userID, query)
}

// FacetTagCounts proxies repo.FacetTagCounts.
func (searchStoreShim) FacetTagCounts(ctx context.Context, db *gorm.DB, userID, query string) ([]repo.TagCount, error) {
	return repo.FacetTagCounts(ctx, db, userID, query)
}

// FacetDateCounts proxies repo.FacetDateCounts.
func (searchStoreShim) FacetDateCounts(ctx context.Context, db *gorm.DB, userID, query string, b search.DateBounds) (total, today, week, month int64, err error) {
	return repo.FacetDateCounts(ctx, db, userID, query, b)
}

// FacetAttachmentCount proxies repo.FacetAttachmentCount.
func (searchStoreShim) FacetAttachmentCount(ctx context.Context, db *gorm.DB, userID, query string) (int64, error) {
	return repo.FacetAttachmentCount(ctx, db, userID, query)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, compression, health and metrics endpoints, and
// then mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with search-term and PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. Gzip compression (search result pages compress well)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB); the API is GET-only but rejects
	// oversized bodies outright.
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) Compress responses; highlighted result pages are repetitive JSON.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS).
	// no-store because result payloads embed private conversation content.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	store := searchStoreShim{}
	searchSvc := &services.SearchService{DB: db, Store: store}
	suggestSvc := &services.SuggestionService{
		DB:    db,
		Store: store,
		Cache: cache.New(cfg.Suggestions.CacheTTL, cfg.Suggestions.CacheEntries),
	}
	facetSvc := &services.FacetService{DB: db, Store: store}

	h := handlers.New(searchSvc, suggestSvc, facetSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		api.GET("/search", h.Search)
		api.GET("/search/suggestions", h.Suggestions)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

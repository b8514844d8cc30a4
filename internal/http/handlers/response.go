// Package handlers provides the HTTP handler implementations for the
// search API.
//
// This file defines the response envelopes shared by all endpoints.
// Every response carries a `success` flag; failures carry a
// human-readable `error` message that is safe to show to users (internal
// error detail is logged server-side, never serialized).
//
// Example failure:
//
//	HTTP/1.1 500 Internal Server Error
//	{ "success": false, "error": "search failed", "request_id": "…" }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/convospace/go-search-backend/internal/http/middleware"
	"github.com/convospace/go-search-backend/internal/services"
)

// SearchResponse is the success envelope for the combined search
// endpoint. Facets are present only when the request asked for them.
type SearchResponse struct {
	Success bool                   `json:"success" example:"true"`
	Data    *services.SearchResult `json:"data"`
	Facets  *services.Facets       `json:"facets,omitempty"`
}

// SuggestionsResponse is the success envelope for the suggestion
// endpoint.
type SuggestionsResponse struct {
	Success     bool                  `json:"success" example:"true"`
	Suggestions []services.Suggestion `json:"suggestions"`
}

// ErrorResponse is the failure envelope for all endpoints.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"search failed"`
	// RequestID correlates server logs with client-side errors.
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// fail aborts the request with the failure envelope. Server errors
// (>= 500) are logged with the request-scoped logger.
func fail(c *gin.Context, status int, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Success:   false,
		Error:     msg,
		RequestID: reqID,
	})
}

// Fail is the exported variant of fail(), used by router fallbacks.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

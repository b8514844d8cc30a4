// Package services implements the application layer of the search engine:
// orchestration of the conversation and message pipelines, suggestion
// generation, and facet aggregation. This file centralizes service-level
// error values so they can be consistently returned by service methods
// and mapped to HTTP responses at the handler layer.
package services

import (
	"errors"

	"github.com/convospace/go-search-backend/internal/search"
)

var (
	// ErrQueryTooShort re-exports the normalizer's sole validation
	// failure so handlers can match it without importing the engine
	// package directly.
	ErrQueryTooShort = search.ErrQueryTooShort

	// ErrSearchFailed is the generic store/infrastructure failure
	// surfaced to callers. The underlying cause is logged server-side
	// and never leaks into the response.
	ErrSearchFailed = errors.New("search failed")

	// ErrSuggestFailed is the suggestion counterpart of ErrSearchFailed.
	ErrSuggestFailed = errors.New("failed to load suggestions")

	// ErrFacetsFailed is returned when facet aggregation cannot be
	// computed.
	ErrFacetsFailed = errors.New("failed to load search facets")
)

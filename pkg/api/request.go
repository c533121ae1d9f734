package api

import (
	"fmt"
	"time"
)

// Sort fields accepted by SearchRequest.SortBy.
const (
	SortByTitle       = "title"
	SortByCreatedTime = "created_time"
	SortByUpdatedTime = "updated_time"
	SortByRelevance   = "relevance"
)

// Sort orders accepted by SearchRequest.SortOrder.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// FieldPredicate is an arbitrary field comparison applied by the filter
// pipeline after all query-derived stages.
type FieldPredicate struct {
	Field    string `json:"field"`
	Value    any    `json:"value"`
	Operator string `json:"operator"` // = != > < >= <= contains starts_with ends_with
}

// Aggregation configures one named aggregation over the filtered set.
type Aggregation struct {
	Type     string `json:"type"`  // terms | date_histogram | stats
	Field    string `json:"field"` // note field the aggregation reads
	Interval string `json:"interval,omitempty"`
}

// SearchRequest is the full configuration for one search call. It is a value
// type: construct it, validate once at entry, and treat it as immutable.
type SearchRequest struct {
	Query     string `json:"query"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`

	Filters []FieldPredicate `json:"filters,omitempty"`

	FuzzyMatching          bool    `json:"fuzzy_matching,omitempty"`
	FuzzyThreshold         float64 `json:"fuzzy_threshold,omitempty"`
	EnableBooleanOperators bool    `json:"enable_boolean_operators,omitempty"`
	EnableFieldQueries     bool    `json:"enable_field_queries,omitempty"`
	EnableDateQueries      bool    `json:"enable_date_queries,omitempty"`

	IncludeBody      bool      `json:"include_body,omitempty"`
	HighlightMatches bool      `json:"highlight_matches,omitempty"`
	HighlightTags    [2]string `json:"highlight_tags,omitempty"`
	IncludeScores    bool      `json:"include_scores,omitempty"`
	ReturnPagination bool      `json:"return_pagination,omitempty"`

	IncludeFacets bool     `json:"include_facets,omitempty"`
	FacetFields   []string `json:"facet_fields,omitempty"`

	BoostFields  map[string]float64     `json:"boost_fields,omitempty"`
	Aggregations map[string]Aggregation `json:"aggregations,omitempty"`

	IncludeSuggestions bool `json:"include_suggestions,omitempty"`
	SuggestionLimit    int  `json:"suggestion_limit,omitempty"`

	// StreamResults asks for batch delivery. Dispatch sites route the
	// request to StreamSearch when it is set; Search itself always returns
	// one complete result.
	StreamResults bool `json:"stream_results,omitempty"`
	BatchSize     int  `json:"batch_size,omitempty"`

	EnableCache bool          `json:"enable_cache,omitempty"`
	CacheTTL    time.Duration `json:"cache_ttl,omitempty"`
}

// DefaultHighlightTags wrap matched terms when no explicit pair is set.
var DefaultHighlightTags = [2]string{"<mark>", "</mark>"}

// Normalized returns a copy with defaults filled in. The original request
// is left untouched. Only unset zero values are defaulted; out-of-range
// values stay as-is so Validate still sees them.
func (r SearchRequest) Normalized() SearchRequest {
	if r.Limit == 0 {
		r.Limit = 100
	}
	if r.SortBy == "" {
		r.SortBy = SortByUpdatedTime
	}
	if r.SortOrder == "" {
		r.SortOrder = SortDesc
	}
	if r.FuzzyThreshold == 0 {
		r.FuzzyThreshold = 0.8
	}
	if r.HighlightTags[0] == "" && r.HighlightTags[1] == "" {
		r.HighlightTags = DefaultHighlightTags
	}
	if r.BatchSize <= 0 {
		r.BatchSize = 50
	}
	if r.CacheTTL <= 0 {
		r.CacheTTL = 5 * time.Minute
	}
	if r.SuggestionLimit <= 0 {
		r.SuggestionLimit = 3
	}
	return r
}

// Validate reports caller misuse. These errors abort the call; they are not
// transient failures.
func (r SearchRequest) Validate() error {
	if isBlank(r.Query) {
		return ErrEmptyQuery
	}
	if r.Limit < 0 {
		return ErrInvalidLimit
	}
	switch r.SortBy {
	case SortByTitle, SortByCreatedTime, SortByUpdatedTime, SortByRelevance:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSortField, r.SortBy)
	}
	return nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

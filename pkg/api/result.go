package api

// Item is one transport-ready search hit. Keys follow the note wire format;
// body or excerpt is present depending on the request, and highlighted
// variants live alongside the originals.
type Item map[string]any

// FacetValue is one distinct field value with its occurrence count.
type FacetValue struct {
	Value any `json:"value"`
	Count int `json:"count"`
}

// HistogramBucket is one date_histogram aggregation bucket.
type HistogramBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats summarizes the numeric values of a field across the filtered set.
type Stats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	Sum   float64 `json:"sum"`
}

// Pagination is the optional expanded pagination block.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// Suggestion is one related-content or completion suggestion.
type Suggestion struct {
	Type  string  `json:"type"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// SearchMetadata echoes the effective request back to the caller.
type SearchMetadata struct {
	Query            string           `json:"query"`
	SearchFields     []string         `json:"search_fields"`
	FiltersApplied   []FieldPredicate `json:"filters_applied,omitempty"`
	SortBy           string           `json:"sort_by"`
	SortOrder        string           `json:"sort_order"`
	FuzzyMatching    bool             `json:"fuzzy_matching"`
	FuzzyThreshold   *float64         `json:"fuzzy_threshold,omitempty"`
	BooleanOperators bool             `json:"boolean_operators"`
	FieldQueries     bool             `json:"field_queries"`
	DateQueries      bool             `json:"date_queries"`
}

// SearchResult is the value produced by one Search call or one streamed
// batch. It is constructed once and never mutated afterwards; the cache
// stores it by value.
type SearchResult struct {
	Items      []Item `json:"items"`
	HasMore    bool   `json:"has_more"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`

	Pagination   *Pagination             `json:"pagination,omitempty"`
	Facets       map[string][]FacetValue `json:"facets,omitempty"`
	Aggregations map[string]any          `json:"aggregations,omitempty"`
	Suggestions  []Suggestion            `json:"suggestions,omitempty"`
	Metadata     *SearchMetadata         `json:"search_metadata,omitempty"`
}

package engine

import (
	"io"
	"log"

	"github.com/mithrel/sakura/pkg/api"
)

// Engine runs searches over note snapshots handed to it per call. It owns no
// note storage; the only state it carries between calls is the result cache.
type Engine struct {
	cache *resultCache
	log   *log.Logger
}

// New builds an engine. A nil logger silences it.
func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		cache: newResultCache(),
		log:   logger,
	}
}

// Search runs the full pipeline over the snapshot and assembles one result.
// The snapshot and the request are treated as read-only values.
func (e *Engine) Search(notes []api.Note, req api.SearchRequest) (api.SearchResult, error) {
	req = req.Normalized()
	if err := req.Validate(); err != nil {
		return api.SearchResult{}, err
	}

	var key string
	if req.EnableCache {
		key = req.Fingerprint()
		e.cache.Sweep(req.CacheTTL)
		if cached, ok := e.cache.Get(key); ok {
			e.log.Printf("search: cache hit %s", key)
			return cached, nil
		}
	}

	pq := Parse(req.Query)
	for _, err := range pq.Errs {
		e.log.Printf("search: dropped clause: %v", err)
	}

	filtered := applyFilters(wrapNotes(notes), pq, req)
	ranked := rank(filtered, req.SortBy, req.SortOrder, req.BoostFields)

	page, hasMore, totalCount, pageNum := paginate(ranked, req.Offset, req.Limit)

	result := api.SearchResult{
		Items:      buildItems(page, pq, req),
		HasMore:    hasMore,
		TotalCount: totalCount,
		Page:       pageNum,
		Metadata:   buildMetadata(req),
	}
	if req.ReturnPagination {
		result.Pagination = &api.Pagination{
			Page:       pageNum,
			Limit:      req.Limit,
			Offset:     req.Offset,
			TotalCount: totalCount,
			TotalPages: totalPages(totalCount, req.Limit),
			HasMore:    hasMore,
		}
	}
	if req.IncludeFacets && len(req.FacetFields) > 0 {
		result.Facets = facets(ranked, req.FacetFields)
	}
	if len(req.Aggregations) > 0 {
		result.Aggregations = aggregate(ranked, req.Aggregations)
	}
	if req.IncludeSuggestions {
		result.Suggestions = suggestTitles(notes, req.Query, req.SuggestionLimit)
	}

	if req.EnableCache {
		e.cache.Put(key, result)
	}
	return result, nil
}

// StreamSearch runs the pipeline through ranking, then hands back a lazy
// batch iterator. Facets and aggregations are computed once here, over the
// whole filtered set, and attached identically to every batch.
func (e *Engine) StreamSearch(notes []api.Note, req api.SearchRequest) (*Stream, error) {
	req = req.Normalized()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pq := Parse(req.Query)
	for _, err := range pq.Errs {
		e.log.Printf("stream: dropped clause: %v", err)
	}

	filtered := applyFilters(wrapNotes(notes), pq, req)
	ranked := rank(filtered, req.SortBy, req.SortOrder, req.BoostFields)

	s := &Stream{
		ranked: ranked,
		pq:     pq,
		req:    req,
	}
	if req.IncludeFacets && len(req.FacetFields) > 0 {
		s.facets = facets(ranked, req.FacetFields)
	}
	if len(req.Aggregations) > 0 {
		s.aggregations = aggregate(ranked, req.Aggregations)
	}
	return s, nil
}

// Stream yields the ranked set one batch at a time. Pull-based: nothing is
// transformed until the consumer asks, and abandoning the stream early needs
// no cleanup.
type Stream struct {
	ranked []scoredNote
	pq     ParsedQuery
	req    api.SearchRequest

	facets       map[string][]api.FacetValue
	aggregations map[string]any

	cursor int
	batch  int
}

// Next transforms and returns the next batch. ok is false once the ranked
// set is exhausted.
func (s *Stream) Next() (api.SearchResult, bool) {
	if s.cursor >= len(s.ranked) {
		return api.SearchResult{}, false
	}

	end := s.cursor + s.req.BatchSize
	if end > len(s.ranked) {
		end = len(s.ranked)
	}
	window := s.ranked[s.cursor:end]
	s.cursor = end
	s.batch++

	return api.SearchResult{
		Items:        buildItems(window, s.pq, s.req),
		HasMore:      s.cursor < len(s.ranked),
		TotalCount:   len(s.ranked),
		Page:         s.batch,
		Facets:       s.facets,
		Aggregations: s.aggregations,
		Metadata:     buildMetadata(s.req),
	}, true
}

// buildItems transforms a page of ranked notes, skipping any note that fails
// item construction rather than failing the batch.
func buildItems(page []scoredNote, pq ParsedQuery, req api.SearchRequest) []api.Item {
	items := make([]api.Item, 0, len(page))
	for _, sn := range page {
		item, err := buildItem(sn, pq, req)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// buildMetadata echoes the effective request back to the caller.
func buildMetadata(req api.SearchRequest) *api.SearchMetadata {
	md := &api.SearchMetadata{
		Query:            req.Query,
		SearchFields:     []string{"title", "body"},
		FiltersApplied:   req.Filters,
		SortBy:           req.SortBy,
		SortOrder:        req.SortOrder,
		FuzzyMatching:    req.FuzzyMatching,
		BooleanOperators: req.EnableBooleanOperators,
		FieldQueries:     req.EnableFieldQueries,
		DateQueries:      req.EnableDateQueries,
	}
	if req.FuzzyMatching {
		threshold := req.FuzzyThreshold
		md.FuzzyThreshold = &threshold
	}
	return md
}

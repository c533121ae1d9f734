package api

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"
)

// Fingerprint returns a deterministic BLAKE3 hash over every request field
// that can affect the search output. Any parameter change produces a
// different key, so it is safe to index a result cache with it.
func (r SearchRequest) Fingerprint() string {
	h := blake3.New()

	write := func(key, val string) {
		h.Write([]byte(key))
		h.Write([]byte{0})
		h.Write([]byte(val))
		h.Write([]byte{0})
	}

	write("query", r.Query)
	write("limit", strconv.Itoa(r.Limit))
	write("offset", strconv.Itoa(r.Offset))
	write("sort_by", r.SortBy)
	write("sort_order", r.SortOrder)

	for i, f := range r.Filters {
		write(fmt.Sprintf("filter.%d", i), fmt.Sprintf("%s %s %v", f.Field, f.Operator, f.Value))
	}

	write("fuzzy", strconv.FormatBool(r.FuzzyMatching))
	write("fuzzy_threshold", strconv.FormatFloat(r.FuzzyThreshold, 'g', -1, 64))
	write("boolean", strconv.FormatBool(r.EnableBooleanOperators))
	write("field_queries", strconv.FormatBool(r.EnableFieldQueries))
	write("date_queries", strconv.FormatBool(r.EnableDateQueries))

	write("include_body", strconv.FormatBool(r.IncludeBody))
	write("highlight", strconv.FormatBool(r.HighlightMatches))
	write("highlight_tags", r.HighlightTags[0]+"\x00"+r.HighlightTags[1])
	write("include_scores", strconv.FormatBool(r.IncludeScores))
	write("return_pagination", strconv.FormatBool(r.ReturnPagination))

	write("include_facets", strconv.FormatBool(r.IncludeFacets))
	write("facet_fields", strings.Join(r.FacetFields, "\x00"))

	// Maps serialize in sorted key order for determinism.
	boostKeys := make([]string, 0, len(r.BoostFields))
	for k := range r.BoostFields {
		boostKeys = append(boostKeys, k)
	}
	sort.Strings(boostKeys)
	for _, k := range boostKeys {
		write("boost."+k, strconv.FormatFloat(r.BoostFields[k], 'g', -1, 64))
	}

	aggKeys := make([]string, 0, len(r.Aggregations))
	for k := range r.Aggregations {
		aggKeys = append(aggKeys, k)
	}
	sort.Strings(aggKeys)
	for _, k := range aggKeys {
		a := r.Aggregations[k]
		write("agg."+k, a.Type+"\x00"+a.Field+"\x00"+a.Interval)
	}

	write("suggestions", strconv.FormatBool(r.IncludeSuggestions))
	write("suggestion_limit", strconv.Itoa(r.SuggestionLimit))
	write("batch_size", strconv.Itoa(r.BatchSize))

	sum := h.Sum(nil)
	return "search:" + hex.EncodeToString(sum)
}

package cli

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/sakura/internal/config"
	"github.com/mithrel/sakura/pkg/api"
)

func testConfig(t *testing.T) *viper.Viper {
	v := viper.New()
	require.NoError(t, config.Load(context.Background(), v))
	return v
}

func TestBuildRequestDefaults(t *testing.T) {
	cfg := testConfig(t)

	req, err := buildRequest(cfg, "tokyo", searchFlags{limit: -1})
	require.NoError(t, err)

	assert.Equal(t, "tokyo", req.Query)
	assert.Equal(t, 100, req.Limit)
	assert.Equal(t, api.SortByUpdatedTime, req.SortBy)
	assert.Equal(t, api.SortDesc, req.SortOrder)
	assert.Equal(t, 0.8, req.FuzzyThreshold)
	assert.Equal(t, 50, req.BatchSize)
	assert.Equal(t, [2]string{"<mark>", "</mark>"}, req.HighlightTags)
	assert.True(t, req.EnableCache)
	assert.Equal(t, 5*time.Minute, req.CacheTTL)
}

func TestBuildRequestFlagsOverrideConfig(t *testing.T) {
	cfg := testConfig(t)

	req, err := buildRequest(cfg, "tokyo", searchFlags{
		limit:          10,
		offset:         20,
		sortBy:         "title",
		sortOrder:      "asc",
		fuzzy:          true,
		fuzzyThreshold: 0.6,
		boolean:        true,
		stream:         true,
		batchSize:      5,
		noCache:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, req.Limit)
	assert.Equal(t, 20, req.Offset)
	assert.Equal(t, "title", req.SortBy)
	assert.Equal(t, "asc", req.SortOrder)
	assert.True(t, req.FuzzyMatching)
	assert.Equal(t, 0.6, req.FuzzyThreshold)
	assert.True(t, req.EnableBooleanOperators)
	assert.True(t, req.StreamResults)
	assert.Equal(t, 5, req.BatchSize)
	assert.False(t, req.EnableCache)
}

func TestBuildRequestStructuredFlags(t *testing.T) {
	cfg := testConfig(t)

	req, err := buildRequest(cfg, "*", searchFlags{
		limit:     -1,
		facetsCSV: "parent_id, is_todo",
		boosts:    []string{"title=2.0"},
		filters:   []string{"is_todo:=:true"},
		aggs:      []string{"by_month:date_histogram:updated_time:month"},
	})
	require.NoError(t, err)

	assert.True(t, req.IncludeFacets)
	assert.Equal(t, []string{"parent_id", "is_todo"}, req.FacetFields)
	assert.Equal(t, map[string]float64{"title": 2.0}, req.BoostFields)

	require.Len(t, req.Filters, 1)
	assert.Equal(t, api.FieldPredicate{Field: "is_todo", Operator: "=", Value: "true"}, req.Filters[0])

	require.Contains(t, req.Aggregations, "by_month")
	assert.Equal(t, api.Aggregation{Type: "date_histogram", Field: "updated_time", Interval: "month"}, req.Aggregations["by_month"])
}

func TestBuildRequestSinceUntil(t *testing.T) {
	cfg := testConfig(t)

	req, err := buildRequest(cfg, "tokyo", searchFlags{
		limit: -1,
		since: "2024-01-01",
		until: "2024-06-30",
	})
	require.NoError(t, err)

	assert.Equal(t, "tokyo updated_time:[2024-01-01 TO 2024-06-30]", req.Query)
	assert.True(t, req.EnableDateQueries)
}

func TestBuildRequestBadFlags(t *testing.T) {
	cfg := testConfig(t)

	cases := map[string]searchFlags{
		"boost without multiplier": {limit: -1, boosts: []string{"title"}},
		"boost bad number":         {limit: -1, boosts: []string{"title=lots"}},
		"filter missing op":        {limit: -1, filters: []string{"is_todo:true"}},
		"agg missing field":        {limit: -1, aggs: []string{"by_month:terms"}},
		"bad since":                {limit: -1, since: "whenever"},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := buildRequest(cfg, "tokyo", f)
			assert.Error(t, err)
		})
	}
}

func TestParsePredicateValueWithColons(t *testing.T) {
	p, err := parsePredicate("title:contains:a:b")
	require.NoError(t, err)
	assert.Equal(t, "a:b", p.Value)
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV("a, b,"))
	assert.Nil(t, splitCSV(""))
}

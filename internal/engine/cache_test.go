package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/sakura/pkg/api"
)

func TestResultCache(t *testing.T) {
	t.Run("get returns what was put", func(t *testing.T) {
		c := newResultCache()
		c.Put("k", api.SearchResult{TotalCount: 7})

		got, ok := c.Get("k")
		require.True(t, ok)
		assert.Equal(t, 7, got.TotalCount)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		c := newResultCache()
		_, ok := c.Get("nope")
		assert.False(t, ok)
	})

	t.Run("sweep evicts only expired entries", func(t *testing.T) {
		c := newResultCache()
		now := time.Now()
		c.now = func() time.Time { return now }

		c.Put("old", api.SearchResult{})
		now = now.Add(10 * time.Minute)
		c.Put("fresh", api.SearchResult{})

		c.Sweep(5 * time.Minute)
		_, ok := c.Get("old")
		assert.False(t, ok)
		_, ok = c.Get("fresh")
		assert.True(t, ok)
		assert.Equal(t, 1, c.Len())
	})
}

func TestFingerprintSensitivity(t *testing.T) {
	base := api.SearchRequest{Query: "tokyo"}.Normalized()

	t.Run("identical requests share a key", func(t *testing.T) {
		other := api.SearchRequest{Query: "tokyo"}.Normalized()
		assert.Equal(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("any parameter change produces a new key", func(t *testing.T) {
		variants := []api.SearchRequest{
			{Query: "kyoto"},
			{Query: "tokyo", Limit: 5},
			{Query: "tokyo", Offset: 2},
			{Query: "tokyo", SortBy: api.SortByTitle},
			{Query: "tokyo", SortOrder: api.SortAsc},
			{Query: "tokyo", FuzzyMatching: true},
			{Query: "tokyo", FuzzyMatching: true, FuzzyThreshold: 0.5},
			{Query: "tokyo", EnableBooleanOperators: true},
			{Query: "tokyo", IncludeBody: true},
			{Query: "tokyo", HighlightMatches: true},
			{Query: "tokyo", IncludeFacets: true, FacetFields: []string{"parent_id"}},
			{Query: "tokyo", BoostFields: map[string]float64{"title": 2}},
			{Query: "tokyo", Filters: []api.FieldPredicate{{Field: "title", Value: "x", Operator: "contains"}}},
		}
		seen := map[string]int{base.Fingerprint(): -1}
		for i, v := range variants {
			key := v.Normalized().Fingerprint()
			prev, dup := seen[key]
			assert.False(t, dup, "variant %d collides with %d", i, prev)
			seen[key] = i
		}
	})
}

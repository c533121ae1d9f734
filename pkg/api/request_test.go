package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalized(t *testing.T) {
	t.Run("zero values get defaults", func(t *testing.T) {
		req := SearchRequest{Query: "x"}.Normalized()
		assert.Equal(t, 100, req.Limit)
		assert.Equal(t, SortByUpdatedTime, req.SortBy)
		assert.Equal(t, SortDesc, req.SortOrder)
		assert.Equal(t, 0.8, req.FuzzyThreshold)
		assert.Equal(t, DefaultHighlightTags, req.HighlightTags)
		assert.Equal(t, 50, req.BatchSize)
		assert.Equal(t, 5*time.Minute, req.CacheTTL)
		assert.Equal(t, 3, req.SuggestionLimit)
	})

	t.Run("set values survive", func(t *testing.T) {
		req := SearchRequest{Query: "x", Limit: 7, SortBy: SortByTitle}.Normalized()
		assert.Equal(t, 7, req.Limit)
		assert.Equal(t, SortByTitle, req.SortBy)
	})

	t.Run("negative limit is preserved for validation", func(t *testing.T) {
		req := SearchRequest{Query: "x", Limit: -5}.Normalized()
		assert.Equal(t, -5, req.Limit)
		assert.ErrorIs(t, req.Validate(), ErrInvalidLimit)
	})
}

func TestValidate(t *testing.T) {
	t.Run("blank query", func(t *testing.T) {
		err := SearchRequest{Query: " \t\n"}.Normalized().Validate()
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("unknown sort field", func(t *testing.T) {
		err := SearchRequest{Query: "x", SortBy: "color"}.Normalized().Validate()
		assert.ErrorIs(t, err, ErrInvalidSortField)
	})

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, SearchRequest{Query: "x"}.Normalized().Validate())
	})
}

package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/sakura/pkg/api"
)

func TestBuildItem(t *testing.T) {
	note := api.Note{
		ID:          "n1",
		Title:       "Trip to Japan",
		Body:        "visited Tokyo last spring",
		CreatedTime: 100,
		UpdatedTime: 200,
		ParentID:    "travel",
	}
	base := api.SearchRequest{Query: "tokyo"}.Normalized()

	t.Run("always carries the identity fields", func(t *testing.T) {
		item, err := buildItem(scoredNote{note: note}, Parse("tokyo"), base)
		require.NoError(t, err)
		assert.Equal(t, "n1", item["id"])
		assert.Equal(t, "Trip to Japan", item["title"])
		assert.Equal(t, int64(100), item["created_time"])
		assert.Equal(t, int64(200), item["updated_time"])
		assert.Equal(t, "travel", item["parent_id"])
	})

	t.Run("excerpt replaces body by default", func(t *testing.T) {
		item, err := buildItem(scoredNote{note: note}, Parse("tokyo"), base)
		require.NoError(t, err)
		assert.Equal(t, note.Body, item["excerpt"])
		assert.NotContains(t, item, "body")
	})

	t.Run("includeBody carries the body verbatim", func(t *testing.T) {
		req := base
		req.IncludeBody = true
		item, err := buildItem(scoredNote{note: note}, Parse("tokyo"), req)
		require.NoError(t, err)
		assert.Equal(t, note.Body, item["body"])
		assert.NotContains(t, item, "excerpt")
	})

	t.Run("missing id skips the note", func(t *testing.T) {
		_, err := buildItem(scoredNote{note: api.Note{Title: "orphan"}}, Parse("x"), base)
		assert.Error(t, err)
	})
}

func TestExcerpt(t *testing.T) {
	t.Run("500-char body truncates to exactly 203", func(t *testing.T) {
		got := excerpt(strings.Repeat("a", 500))
		assert.Len(t, got, 203)
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("short body passes through without ellipsis", func(t *testing.T) {
		assert.Equal(t, "short", excerpt("short"))
	})

	t.Run("exactly 200 chars gets no ellipsis", func(t *testing.T) {
		body := strings.Repeat("b", 200)
		assert.Equal(t, body, excerpt(body))
	})
}

func TestHighlights(t *testing.T) {
	note := api.Note{ID: "n1", Title: "Tokyo Guide", Body: "Tokyo has great food. tokyo again."}

	t.Run("wraps case-insensitive matches, originals untouched", func(t *testing.T) {
		req := api.SearchRequest{Query: "tokyo", HighlightMatches: true}.Normalized()
		item, err := buildItem(scoredNote{note: note}, Parse("tokyo"), req)
		require.NoError(t, err)

		assert.Equal(t, "Tokyo Guide", item["title"])
		assert.Equal(t, "<mark>Tokyo</mark> Guide", item["title_highlighted"])
		assert.Equal(t, "<mark>Tokyo</mark> has great food. <mark>tokyo</mark> again.", item["excerpt_highlighted"])
	})

	t.Run("custom tags", func(t *testing.T) {
		req := api.SearchRequest{
			Query:            "tokyo",
			HighlightMatches: true,
			HighlightTags:    [2]string{"**", "**"},
		}.Normalized()
		item, err := buildItem(scoredNote{note: note}, Parse("tokyo"), req)
		require.NoError(t, err)
		assert.Equal(t, "**Tokyo** Guide", item["title_highlighted"])
	})

	t.Run("no free terms means no highlight fields", func(t *testing.T) {
		req := api.SearchRequest{Query: "title:tokyo", HighlightMatches: true}.Normalized()
		item, err := buildItem(scoredNote{note: note}, Parse("title:tokyo"), req)
		require.NoError(t, err)
		assert.NotContains(t, item, "title_highlighted")
	})
}

func TestRelevanceScore(t *testing.T) {
	note := api.Note{ID: "n1", Title: "Tokyo Guide", Body: "All about Tokyo."}

	t.Run("term in both title and body scores full", func(t *testing.T) {
		// one term, in both title and body: (0.5+0.2)/0.7 = 1.0
		assert.InDelta(t, 1.0, relevanceScore(note, []string{"tokyo"}, nil), 1e-9)
	})

	t.Run("body-only hit", func(t *testing.T) {
		n := api.Note{ID: "n2", Title: "Guide", Body: "All about Tokyo."}
		assert.InDelta(t, 0.2/0.7, relevanceScore(n, []string{"tokyo"}, nil), 1e-9)
	})

	t.Run("boost multiplies then clamps to 1", func(t *testing.T) {
		got := relevanceScore(note, []string{"tokyo"}, map[string]float64{"title": 5.0})
		assert.Equal(t, 1.0, got)
	})

	t.Run("no terms scores 0", func(t *testing.T) {
		assert.Equal(t, 0.0, relevanceScore(note, nil, nil))
	})
}

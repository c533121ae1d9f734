package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/sakura/pkg/api"
)

func TestParseBooleanClauses(t *testing.T) {
	t.Run("plain terms form one clause", func(t *testing.T) {
		pq := Parse("grocery list")
		require.Len(t, pq.Clauses, 1)
		assert.Equal(t, "grocery list", pq.Clauses[0].Term)
		assert.Equal(t, OpNone, pq.Clauses[0].Op)
		assert.Equal(t, []string{"grocery", "list"}, pq.FreeTerms)
	})

	t.Run("operators split clauses", func(t *testing.T) {
		pq := Parse("apple AND banana OR cherry NOT durian")
		require.Len(t, pq.Clauses, 4)
		assert.Equal(t, Clause{Term: "apple", Op: OpNone}, pq.Clauses[0])
		assert.Equal(t, Clause{Term: "banana", Op: OpAnd}, pq.Clauses[1])
		assert.Equal(t, Clause{Term: "cherry", Op: OpOr}, pq.Clauses[2])
		assert.Equal(t, Clause{Term: "durian", Op: OpNot}, pq.Clauses[3])
	})

	t.Run("operators are case-insensitive", func(t *testing.T) {
		pq := Parse("apple and banana")
		require.Len(t, pq.Clauses, 2)
		assert.Equal(t, OpAnd, pq.Clauses[1].Op)
	})

	t.Run("trailing operator is dropped", func(t *testing.T) {
		pq := Parse("apple AND")
		require.Len(t, pq.Clauses, 1)
		assert.Equal(t, "apple", pq.Clauses[0].Term)
	})
}

func TestParseFieldTerms(t *testing.T) {
	t.Run("extracts field terms", func(t *testing.T) {
		pq := Parse("title:meeting notes")
		assert.Equal(t, []string{"meeting", "notes"}, pq.FieldTerms["title"])
		assert.Empty(t, pq.FreeTerms)
	})

	t.Run("repeated fields accumulate", func(t *testing.T) {
		pq := Parse("title:alpha title:beta")
		assert.Equal(t, []string{"alpha", "beta"}, pq.FieldTerms["title"])
	})

	t.Run("literal AND inside a field value is not an operator", func(t *testing.T) {
		pq := Parse("title:cats AND dogs")
		assert.Equal(t, []string{"cats", "AND", "dogs"}, pq.FieldTerms["title"])
		assert.Empty(t, pq.Clauses)
	})
}

func TestParseDateRanges(t *testing.T) {
	t.Run("parses inclusive bounds at local midnight", func(t *testing.T) {
		pq := Parse("created_time:[2024-01-01 TO 2024-01-31]")
		require.Len(t, pq.DateRanges["created_time"], 1)
		r := pq.DateRanges["created_time"][0]

		start, err := time.ParseInLocation("2006-01-02", "2024-01-01", time.Local)
		require.NoError(t, err)
		end, err := time.ParseInLocation("2006-01-02", "2024-01-31", time.Local)
		require.NoError(t, err)
		assert.Equal(t, start.UnixMilli(), r.Start)
		assert.Equal(t, end.UnixMilli(), r.End)
	})

	t.Run("range span does not leak into field terms", func(t *testing.T) {
		pq := Parse("created_time:[2024-01-01 TO 2024-01-31] report")
		assert.Empty(t, pq.FieldTerms)
		assert.Equal(t, []string{"report"}, pq.FreeTerms)
	})

	t.Run("bad bound drops only that clause", func(t *testing.T) {
		pq := Parse("created_time:[not-a-date TO 2024-01-31] updated_time:[2024-02-01 TO 2024-02-29]")
		assert.Empty(t, pq.DateRanges["created_time"])
		assert.Len(t, pq.DateRanges["updated_time"], 1)
		require.Len(t, pq.Errs, 1)
		assert.ErrorIs(t, pq.Errs[0], api.ErrInvalidDateFormat)
	})
}

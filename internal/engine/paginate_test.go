package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mithrel/sakura/pkg/api"
)

func TestPaginate(t *testing.T) {
	notes := make([]scoredNote, 10)
	for i := range notes {
		notes[i] = scoredNote{note: api.Note{ID: fmt.Sprintf("n%d", i)}}
	}

	t.Run("first page", func(t *testing.T) {
		page, hasMore, total, pageNum := paginate(notes, 0, 3)
		assert.Len(t, page, 3)
		assert.True(t, hasMore)
		assert.Equal(t, 10, total)
		assert.Equal(t, 1, pageNum)
	})

	t.Run("last partial page", func(t *testing.T) {
		page, hasMore, total, pageNum := paginate(notes, 9, 3)
		assert.Len(t, page, 1)
		assert.False(t, hasMore)
		assert.Equal(t, 10, total)
		assert.Equal(t, 4, pageNum)
	})

	t.Run("offset past the end", func(t *testing.T) {
		page, hasMore, _, _ := paginate(notes, 50, 3)
		assert.Empty(t, page)
		assert.False(t, hasMore)
	})

	t.Run("invariant holds across the range", func(t *testing.T) {
		for offset := 0; offset <= 12; offset++ {
			for limit := 1; limit <= 12; limit++ {
				page, hasMore, total, _ := paginate(notes, offset, limit)
				assert.LessOrEqual(t, len(page), limit)
				assert.Equal(t, offset+limit < total, hasMore,
					"offset=%d limit=%d", offset, limit)
			}
		}
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 4, totalPages(10, 3))
	assert.Equal(t, 1, totalPages(3, 3))
	assert.Equal(t, 0, totalPages(0, 3))
	assert.Equal(t, 1, totalPages(10, 0))
}

package engine

// paginate slices the ranked set to one page. totalCount reflects the
// pre-pagination length; page numbers are 1-based. Inputs are validated
// upstream, so offset and limit are assumed non-negative here.
func paginate(notes []scoredNote, offset, limit int) (page []scoredNote, hasMore bool, totalCount, pageNum int) {
	totalCount = len(notes)
	hasMore = offset+limit < totalCount

	pageNum = 1
	if limit > 0 {
		pageNum = offset/limit + 1
	}

	start := offset
	if start > totalCount {
		start = totalCount
	}
	end := start + limit
	if end > totalCount {
		end = totalCount
	}
	return notes[start:end], hasMore, totalCount, pageNum
}

// totalPages mirrors the pagination block semantics: ceil division, one
// page minimum when limit is unset.
func totalPages(totalCount, limit int) int {
	if limit <= 0 {
		return 1
	}
	return (totalCount + limit - 1) / limit
}

package engine

import (
	"github.com/sahilm/fuzzy"

	"github.com/mithrel/sakura/pkg/api"
)

// suggestTitles offers related-note titles for the raw query, fuzzy-matched
// over the full snapshot rather than the filtered set so a query with zero
// hits still gets pointers. Scores are scaled against the best match.
func suggestTitles(notes []api.Note, query string, limit int) []api.Suggestion {
	if query == "" || limit <= 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(notes))
	titles := make([]string, 0, len(notes))
	for _, n := range notes {
		if n.Title == "" {
			continue
		}
		if _, dup := seen[n.Title]; dup {
			continue
		}
		seen[n.Title] = struct{}{}
		titles = append(titles, n.Title)
	}

	matches := fuzzy.Find(query, titles)
	if len(matches) == 0 {
		return nil
	}
	if len(matches) < limit {
		limit = len(matches)
	}

	best := float64(matches[0].Score)
	out := make([]api.Suggestion, limit)
	for i := 0; i < limit; i++ {
		score := 1.0
		if best > 0 {
			score = float64(matches[i].Score) / best
		}
		out[i] = api.Suggestion{Type: "title", Text: matches[i].Str, Score: score}
	}
	return out
}

package engine

import (
	"sort"
	"strings"

	"github.com/mithrel/sakura/pkg/api"
)

// scoredNote pairs a note with its working relevance score. Pipeline stages
// pass these wrappers around instead of annotating the notes themselves, so
// the caller's records are never touched.
type scoredNote struct {
	note  api.Note
	score float64
}

func wrapNotes(notes []api.Note) []scoredNote {
	out := make([]scoredNote, len(notes))
	for i, n := range notes {
		out[i] = scoredNote{note: n, score: 1.0}
	}
	return out
}

// Similarity computes case-folded Levenshtein similarity in [0,1]:
// 1 - distance/max(len). Two empty strings score 0, not 1, so unset fields
// never match spuriously.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	dist := levenshtein(ra, rb)
	return 1 - float64(dist)/float64(maxLen)
}

// levenshtein is the classic two-row edit distance.
func levenshtein(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range a {
		cur[0] = i + 1
		for j, cb := range b {
			sub := prev[j]
			if ca != cb {
				sub++
			}
			ins := prev[j+1] + 1
			del := cur[j] + 1
			cur[j+1] = minInt(sub, minInt(ins, del))
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// FuzzyScore is the best per-term similarity across the note's title and
// body.
func FuzzyScore(n api.Note, terms []string) float64 {
	best := 0.0
	for _, term := range terms {
		if s := Similarity(term, n.Title); s > best {
			best = s
		}
		if s := Similarity(term, n.Body); s > best {
			best = s
		}
	}
	return best
}

// fuzzyFilter retains notes whose best score meets the threshold, attaches
// that score, and returns the survivors sorted by descending score. The
// sort is stable: ties keep their input order.
func fuzzyFilter(notes []scoredNote, terms []string, threshold float64) []scoredNote {
	if len(terms) == 0 || threshold < 0 || threshold > 1 {
		return notes
	}
	matched := make([]scoredNote, 0, len(notes))
	for _, sn := range notes {
		score := FuzzyScore(sn.note, terms)
		if score >= threshold {
			sn.score = score
			matched = append(matched, sn)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})
	return matched
}

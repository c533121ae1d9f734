package engine

import (
	"sort"

	"github.com/mithrel/sakura/pkg/api"
)

// rank stable-sorts a copy of the candidates. Boost factors multiply each
// note's working relevance whenever the boosted field's string value is
// non-empty; relevance ordering then uses the boosted score. Any other sort
// field compares canonically with nil/absent values last regardless of
// direction.
func rank(notes []scoredNote, sortBy, sortOrder string, boostFields map[string]float64) []scoredNote {
	out := make([]scoredNote, len(notes))
	copy(out, notes)

	if len(boostFields) > 0 {
		for i := range out {
			for field, boost := range boostFields {
				if v, ok := out[i].note.StringField(field); ok && v != "" {
					out[i].score *= boost
				}
			}
		}
	}

	desc := sortOrder == api.SortDesc

	if sortBy == api.SortByRelevance {
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].score > out[j].score
			}
			return out[i].score < out[j].score
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return lessByField(out[i].note, out[j].note, sortBy, desc)
	})
	return out
}

// lessByField compares two notes by a named field. Absent values sort last
// in both directions; numeric fields compare numerically, everything else
// as case-sensitive strings.
func lessByField(a, b api.Note, field string, desc bool) bool {
	_, aok := a.Field(field)
	_, bok := b.Field(field)
	if !aok || !bok {
		// present-before-absent, independent of sort direction
		return aok && !bok
	}

	if an, ok := a.NumberField(field); ok {
		bn, _ := b.NumberField(field)
		if desc {
			return an > bn
		}
		return an < bn
	}

	as, _ := a.StringField(field)
	bs, _ := b.StringField(field)
	if desc {
		return as > bs
	}
	return as < bs
}

package engine

import (
	"sort"
	"time"

	"github.com/mithrel/sakura/pkg/api"
)

// facets counts distinct values per requested field across the filtered
// (unpaginated) set, sorted by descending count with ties broken by the
// value's canonical string form.
func facets(notes []scoredNote, fields []string) map[string][]api.FacetValue {
	out := make(map[string][]api.FacetValue, len(fields))
	for _, field := range fields {
		out[field] = countField(notes, field)
	}
	return out
}

func countField(notes []scoredNote, field string) []api.FacetValue {
	counts := make(map[any]int)
	for _, sn := range notes {
		if v, ok := sn.note.Field(field); ok {
			counts[v]++
		}
	}
	values := make([]api.FacetValue, 0, len(counts))
	for v, c := range counts {
		values = append(values, api.FacetValue{Value: v, Count: c})
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return canonicalString(values[i].Value) < canonicalString(values[j].Value)
	})
	return values
}

// aggregate computes the named aggregations over the filtered set. An
// aggregation with no matching values is omitted from the result entirely,
// never reported as zeros.
func aggregate(notes []scoredNote, aggs map[string]api.Aggregation) map[string]any {
	out := make(map[string]any, len(aggs))
	for name, cfg := range aggs {
		if cfg.Field == "" {
			continue
		}
		switch cfg.Type {
		case "terms":
			out[name] = countField(notes, cfg.Field)
		case "date_histogram":
			if buckets := dateHistogram(notes, cfg.Field, cfg.Interval); buckets != nil {
				out[name] = buckets
			}
		case "stats":
			if st, ok := fieldStats(notes, cfg.Field); ok {
				out[name] = st
			}
		}
	}
	return out
}

// dateHistogram buckets an epoch-ms timestamp field by day, month, or year,
// returning buckets sorted by key ascending. Unknown intervals yield nil.
func dateHistogram(notes []scoredNote, field, interval string) []api.HistogramBucket {
	var layout string
	switch interval {
	case "", "day":
		layout = "2006-01-02"
	case "month":
		layout = "2006-01"
	case "year":
		layout = "2006"
	default:
		return nil
	}

	counts := make(map[string]int)
	for _, sn := range notes {
		ts, ok := sn.note.NumberField(field)
		if !ok {
			continue
		}
		key := time.UnixMilli(int64(ts)).Format(layout)
		counts[key]++
	}
	if len(counts) == 0 {
		return nil
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]api.HistogramBucket, len(keys))
	for i, k := range keys {
		buckets[i] = api.HistogramBucket{Date: k, Count: counts[k]}
	}
	return buckets
}

// fieldStats summarizes the numeric values of a field, skipping notes where
// the field is not numeric. ok is false when nothing matched.
func fieldStats(notes []scoredNote, field string) (api.Stats, bool) {
	var st api.Stats
	for _, sn := range notes {
		v, ok := sn.note.NumberField(field)
		if !ok {
			continue
		}
		if st.Count == 0 || v < st.Min {
			st.Min = v
		}
		if st.Count == 0 || v > st.Max {
			st.Max = v
		}
		st.Sum += v
		st.Count++
	}
	if st.Count == 0 {
		return api.Stats{}, false
	}
	st.Avg = st.Sum / float64(st.Count)
	return st, true
}

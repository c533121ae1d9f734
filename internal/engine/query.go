package engine

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mithrel/sakura/pkg/api"
)

// BoolOp combines a clause with the running boolean during left-fold
// evaluation. The first clause of a query carries OpNone.
type BoolOp string

const (
	OpNone BoolOp = ""
	OpAnd  BoolOp = "AND"
	OpOr   BoolOp = "OR"
	OpNot  BoolOp = "NOT"
)

// Clause is one boolean clause: a term (possibly multi-word) plus the
// operator that binds it to the clauses before it.
type Clause struct {
	Term string
	Op   BoolOp
}

// DateRange bounds a numeric field inclusively, in epoch milliseconds.
type DateRange struct {
	Start int64
	End   int64
}

// ParsedQuery is the structured form of a raw query string. Parsing is pure
// and never fails outright: malformed clauses are dropped and recorded in
// Errs while the rest of the query still parses.
type ParsedQuery struct {
	FreeTerms  []string
	Clauses    []Clause
	FieldTerms map[string][]string
	DateRanges map[string][]DateRange
	Errs       []error
}

var (
	dateRangePattern   = regexp.MustCompile(`(\w+):\[([^\]]+)\s+TO\s+([^\]]+)\]`)
	fieldMarkerPattern = regexp.MustCompile(`(\w+):`)
)

// Parse turns a raw query into a ParsedQuery. Field and date-range markers
// bind before boolean splitting, so a literal AND inside a field:value span
// is never treated as an operator.
func Parse(raw string) ParsedQuery {
	pq := ParsedQuery{
		FieldTerms: make(map[string][]string),
		DateRanges: make(map[string][]DateRange),
	}

	rest := parseDateRanges(raw, &pq)
	rest = parseFieldTerms(rest, &pq)
	parseClauses(rest, &pq)
	return pq
}

// parseDateRanges extracts field:[start TO end] clauses and returns the raw
// query with those spans removed. A bound that is not a YYYY-MM-DD date is
// a per-clause ErrInvalidDateFormat: the clause is dropped, parsing goes on.
func parseDateRanges(raw string, pq *ParsedQuery) string {
	matches := dateRangePattern.FindAllStringSubmatch(raw, -1)
	for _, m := range matches {
		field, startStr, endStr := m[1], strings.TrimSpace(m[2]), strings.TrimSpace(m[3])
		start, err := parseDay(startStr)
		if err != nil {
			pq.Errs = append(pq.Errs, fmt.Errorf("%w: %q", api.ErrInvalidDateFormat, startStr))
			continue
		}
		end, err := parseDay(endStr)
		if err != nil {
			pq.Errs = append(pq.Errs, fmt.Errorf("%w: %q", api.ErrInvalidDateFormat, endStr))
			continue
		}
		pq.DateRanges[field] = append(pq.DateRanges[field], DateRange{Start: start, End: end})
	}
	return dateRangePattern.ReplaceAllString(raw, " ")
}

// parseDay parses YYYY-MM-DD to epoch milliseconds at local midnight.
func parseDay(s string) (int64, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// parseFieldTerms extracts field:value spans. A value runs from its marker
// to the next field marker or end of input and splits into
// whitespace-separated terms; terms for a repeated field accumulate. Only
// text before the first marker survives for boolean splitting.
func parseFieldTerms(raw string, pq *ParsedQuery) string {
	locs := fieldMarkerPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(locs) == 0 {
		return raw
	}
	for i, loc := range locs {
		field := raw[loc[2]:loc[3]]
		valueEnd := len(raw)
		if i+1 < len(locs) {
			valueEnd = locs[i+1][0]
		}
		pq.FieldTerms[field] = append(pq.FieldTerms[field], strings.Fields(raw[loc[1]:valueEnd])...)
	}
	return raw[:locs[0][0]]
}

// parseClauses tokenizes the remaining text on whitespace. Operator tokens
// flush the accumulated clause; everything else accumulates into the
// current clause term and into FreeTerms.
func parseClauses(raw string, pq *ParsedQuery) {
	var current []string
	var pending BoolOp

	flush := func() {
		if len(current) == 0 {
			return
		}
		pq.Clauses = append(pq.Clauses, Clause{Term: strings.Join(current, " "), Op: pending})
		current = current[:0]
		pending = OpNone
	}

	for _, tok := range strings.Fields(raw) {
		switch strings.ToUpper(tok) {
		case string(OpAnd), string(OpOr), string(OpNot):
			flush()
			pending = BoolOp(strings.ToUpper(tok))
		default:
			current = append(current, tok)
			pq.FreeTerms = append(pq.FreeTerms, tok)
		}
	}
	flush()
}

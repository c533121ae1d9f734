package engine

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mithrel/sakura/pkg/api"
)

// applyFilters runs the enabled filter stages over the candidate set in a
// fixed order: boolean clauses, field queries, date ranges, fuzzy matching,
// then arbitrary field predicates. The exact-match stages run before the
// more expensive fuzzy stage; every stage narrows the set further.
func applyFilters(notes []scoredNote, pq ParsedQuery, req api.SearchRequest) []scoredNote {
	if !req.EnableBooleanOperators && !req.FuzzyMatching {
		notes = filterTerms(notes, pq.FreeTerms)
	}
	if req.EnableBooleanOperators {
		notes = filterBoolean(notes, pq.Clauses)
	}
	if req.EnableFieldQueries {
		notes = filterFields(notes, pq.FieldTerms)
	}
	if req.EnableDateQueries {
		notes = filterDateRanges(notes, pq.DateRanges)
	}
	if req.FuzzyMatching {
		notes = fuzzyFilter(notes, pq.FreeTerms, req.FuzzyThreshold)
	}
	for _, pred := range req.Filters {
		notes = filterPredicate(notes, pred)
	}
	return notes
}

// wildcardTerm is the accepts-all sentinel callers substitute for an empty
// query.
const wildcardTerm = "*"

// filterTerms is the plain-text baseline when neither boolean operators nor
// fuzzy matching handle the free terms: every term must be a
// case-insensitive substring of title or body.
func filterTerms(notes []scoredNote, terms []string) []scoredNote {
	required := terms[:0:0]
	for _, t := range terms {
		if t != wildcardTerm {
			required = append(required, t)
		}
	}
	if len(required) == 0 {
		return notes
	}
	out := notes[:0:0]
	for _, sn := range notes {
		keep := true
		for _, t := range required {
			if !clauseMatches(sn.note, t) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, sn)
		}
	}
	return out
}

// filterBoolean evaluates clauses as a left fold: the first clause's match
// establishes the running boolean, each later clause combines with it via
// its operator (NOT means AND with the negation). No precedence, no
// parentheses.
func filterBoolean(notes []scoredNote, clauses []Clause) []scoredNote {
	if len(clauses) == 0 {
		return notes
	}
	out := notes[:0:0]
	for _, sn := range notes {
		matches := clauseMatches(sn.note, clauses[0].Term)
		for _, c := range clauses[1:] {
			m := clauseMatches(sn.note, c.Term)
			switch c.Op {
			case OpAnd, OpNone:
				matches = matches && m
			case OpOr:
				matches = matches || m
			case OpNot:
				matches = matches && !m
			}
		}
		if matches {
			out = append(out, sn)
		}
	}
	return out
}

// clauseMatches reports a case-insensitive substring match against title or
// body.
func clauseMatches(n api.Note, term string) bool {
	if term == wildcardTerm {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(n.Title), t) ||
		strings.Contains(strings.ToLower(n.Body), t)
}

// filterFields keeps notes where every term of every queried field is a
// case-insensitive substring of that field's string form.
func filterFields(notes []scoredNote, fieldTerms map[string][]string) []scoredNote {
	if len(fieldTerms) == 0 {
		return notes
	}
	out := notes[:0:0]
	for _, sn := range notes {
		if noteMatchesFields(sn.note, fieldTerms) {
			out = append(out, sn)
		}
	}
	return out
}

func noteMatchesFields(n api.Note, fieldTerms map[string][]string) bool {
	for field, terms := range fieldTerms {
		value, _ := n.StringField(field)
		lowered := strings.ToLower(value)
		for _, term := range terms {
			if !strings.Contains(lowered, strings.ToLower(term)) {
				return false
			}
		}
	}
	return true
}

// filterDateRanges keeps notes whose numeric value for each queried field
// lies within all of that field's ranges, bounds inclusive. A non-numeric
// or unset field reads as zero.
func filterDateRanges(notes []scoredNote, ranges map[string][]DateRange) []scoredNote {
	if len(ranges) == 0 {
		return notes
	}
	out := notes[:0:0]
	for _, sn := range notes {
		if noteMatchesRanges(sn.note, ranges) {
			out = append(out, sn)
		}
	}
	return out
}

func noteMatchesRanges(n api.Note, ranges map[string][]DateRange) bool {
	for field, rs := range ranges {
		value, _ := n.NumberField(field)
		for _, r := range rs {
			if value < float64(r.Start) || value > float64(r.End) {
				return false
			}
		}
	}
	return true
}

// filterPredicate applies one {field, value, operator} predicate.
// Type-mismatched comparisons drop the note rather than erroring.
func filterPredicate(notes []scoredNote, pred api.FieldPredicate) []scoredNote {
	if pred.Field == "" || pred.Value == nil {
		return notes
	}
	out := notes[:0:0]
	for _, sn := range notes {
		if predicateMatches(sn.note, pred) {
			out = append(out, sn)
		}
	}
	return out
}

func predicateMatches(n api.Note, pred api.FieldPredicate) bool {
	value, ok := n.Field(pred.Field)
	if !ok {
		return false
	}
	switch pred.Operator {
	case "=", "":
		return equalValues(value, pred.Value)
	case "!=":
		return !equalValues(value, pred.Value)
	case ">", "<", ">=", "<=":
		a, aok := toNumber(value)
		b, bok := toNumber(pred.Value)
		if !aok || !bok {
			return false
		}
		switch pred.Operator {
		case ">":
			return a > b
		case "<":
			return a < b
		case ">=":
			return a >= b
		default:
			return a <= b
		}
	case "contains":
		a, b, ok := stringPair(value, pred.Value)
		return ok && strings.Contains(a, b)
	case "starts_with":
		a, b, ok := stringPair(value, pred.Value)
		return ok && strings.HasPrefix(a, b)
	case "ends_with":
		a, b, ok := stringPair(value, pred.Value)
		return ok && strings.HasSuffix(a, b)
	default:
		return false
	}
}

// equalValues compares numerically when both sides are numeric, otherwise
// by canonical string form.
func equalValues(a, b any) bool {
	if na, ok := toNumber(a); ok {
		if nb, ok := toNumber(b); ok {
			return na == nb
		}
	}
	return canonicalString(a) == canonicalString(b)
}

// stringPair lowercases both sides for the substring-style operators.
func stringPair(a, b any) (string, string, bool) {
	as, aok := a.(string)
	bs, bok := b.(string)
	if !aok || !bok {
		return "", "", false
	}
	return strings.ToLower(as), strings.ToLower(bs), true
}

// toNumber also parses numeric strings, so predicates arriving as text
// (CLI flags, loosely typed JSON) still compare numerically.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func canonicalString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return ""
	}
}

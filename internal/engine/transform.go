package engine

import (
	"errors"
	"regexp"
	"strings"

	"github.com/mithrel/sakura/pkg/api"
)

const excerptLength = 200

var errMissingID = errors.New("note has no id")

// buildItem converts one ranked note into a transport item. Failures are
// per-item: the caller skips the note and keeps the batch.
func buildItem(sn scoredNote, pq ParsedQuery, req api.SearchRequest) (api.Item, error) {
	n := sn.note
	if n.ID == "" {
		return nil, errMissingID
	}

	item := api.Item{
		"id":           n.ID,
		"title":        n.Title,
		"created_time": n.CreatedTime,
		"updated_time": n.UpdatedTime,
		"parent_id":    n.ParentID,
	}

	if req.IncludeBody {
		item["body"] = n.Body
	} else {
		item["excerpt"] = excerpt(n.Body)
	}

	if req.HighlightMatches {
		addHighlights(item, pq.FreeTerms, req.HighlightTags)
	}

	if req.IncludeScores {
		item["relevance_score"] = relevanceScore(n, pq.FreeTerms, req.BoostFields)
	}

	return item, nil
}

// excerpt is the first 200 bytes of the body, with an ellipsis only when
// the body is longer. No word-boundary snapping.
func excerpt(body string) string {
	if len(body) <= excerptLength {
		return body
	}
	return body[:excerptLength] + "..."
}

// addHighlights wraps case-insensitive term occurrences in the title and in
// whichever of body/excerpt is present, writing *_highlighted fields next
// to the untouched originals.
func addHighlights(item api.Item, terms []string, tags [2]string) {
	if len(terms) == 0 || (tags[0] == "" && tags[1] == "") {
		return
	}
	if title, ok := item["title"].(string); ok {
		item["title_highlighted"] = highlight(title, terms, tags)
	}
	bodyField := "body"
	if _, ok := item["body"]; !ok {
		bodyField = "excerpt"
	}
	if content, ok := item[bodyField].(string); ok {
		item[bodyField+"_highlighted"] = highlight(content, terms, tags)
	}
}

func highlight(text string, terms []string, tags [2]string) string {
	out := text
	for _, term := range terms {
		if term == "" || !strings.Contains(strings.ToLower(out), strings.ToLower(term)) {
			continue
		}
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
		if err != nil {
			continue
		}
		out = re.ReplaceAllString(out, tags[0]+"$0"+tags[1])
	}
	return out
}

// relevanceScore scores term presence: +0.5 per term in the title, +0.2 per
// term in the body, multiplied by the boost of every boosted field that
// contains a term, then normalized by termCount*0.7 and clamped to [0,1].
func relevanceScore(n api.Note, terms []string, boostFields map[string]float64) float64 {
	if len(terms) == 0 {
		return 0
	}

	title := strings.ToLower(n.Title)
	body := strings.ToLower(n.Body)

	score := 0.0
	for _, term := range terms {
		t := strings.ToLower(term)
		if strings.Contains(title, t) {
			score += 0.5
		}
		if strings.Contains(body, t) {
			score += 0.2
		}
	}

	for field, boost := range boostFields {
		value, ok := n.StringField(field)
		if !ok {
			continue
		}
		lowered := strings.ToLower(value)
		for _, term := range terms {
			if strings.Contains(lowered, strings.ToLower(term)) {
				score *= boost
			}
		}
	}

	max := float64(len(terms)) * 0.7
	normalized := score / max
	if normalized > 1 {
		return 1
	}
	return normalized
}

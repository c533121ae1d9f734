package present

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mithrel/sakura/pkg/api"
)

// exportColumns is the canonical CSV column order. A column appears only
// when at least one item carries it.
var exportColumns = []string{
	"id", "title", "created_time", "updated_time", "parent_id",
	"excerpt", "body", "relevance_score",
}

// Export writes the result in one of the supported interchange formats.
func Export(w io.Writer, res api.SearchResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "csv":
		return exportCSV(w, res.Items)
	case "markdown":
		return exportMarkdown(w, res)
	default:
		return fmt.Errorf("%w: %q", api.ErrUnsupportedExportFormat, format)
	}
}

func exportCSV(w io.Writer, items []api.Item) error {
	cols := make([]string, 0, len(exportColumns))
	for _, c := range exportColumns {
		for _, item := range items {
			if _, ok := item[c]; ok {
				cols = append(cols, c)
				break
			}
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for _, item := range items {
		for i, c := range cols {
			row[i] = cellString(item[c])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func exportMarkdown(w io.Writer, res api.SearchResult) error {
	var b strings.Builder
	b.WriteString("# Search Results\n\n")
	if res.Metadata != nil {
		b.WriteString(fmt.Sprintf("Query: `%s`\n\n", res.Metadata.Query))
	}
	b.WriteString(fmt.Sprintf("%d results\n\n", res.TotalCount))

	for _, item := range res.Items {
		title, _ := item["title"].(string)
		if title == "" {
			title, _ = item["id"].(string)
		}
		b.WriteString("## " + title + "\n\n")
		if id, ok := item["id"].(string); ok {
			b.WriteString("- id: " + id + "\n")
		}
		if parent, ok := item["parent_id"].(string); ok && parent != "" {
			b.WriteString("- folder: " + parent + "\n")
		}
		if score, ok := item["relevance_score"].(float64); ok {
			b.WriteString(fmt.Sprintf("- score: %.2f\n", score))
		}
		snippet, _ := item["excerpt"].(string)
		if snippet == "" {
			snippet, _ = item["body"].(string)
		}
		if snippet != "" {
			b.WriteString("\n" + snippet + "\n")
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

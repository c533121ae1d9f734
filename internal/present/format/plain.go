package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/sakura/pkg/api"
)

// TSV columns: id, title, parent_id, updated_unix_ms, excerpt
var headerLine = "id\ttitle\tparent_id\tupdated_unix_ms\texcerpt\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func itemString(item api.Item, key string) string {
	if v, ok := item[key].(string); ok {
		return v
	}
	return ""
}

func itemInt64(item api.Item, key string) int64 {
	switch v := item[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// itemSnippet prefers the excerpt and falls back to the body when the
// request carried full bodies.
func itemSnippet(item api.Item) string {
	if s := itemString(item, "excerpt"); s != "" {
		return s
	}
	return itemString(item, "body")
}

func writePlainItem(tw io.Writer, item api.Item) {
	line := fmt.Sprintf("%s\t%s\t%s\t%d\t%s\n",
		esc(itemString(item, "id")),
		esc(itemString(item, "title")),
		esc(itemString(item, "parent_id")),
		itemInt64(item, "updated_time"),
		esc(itemSnippet(item)))
	_, _ = io.WriteString(tw, line)
}

func WritePlainItems(w io.Writer, items []api.Item, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, item := range items {
		writePlainItem(tw, item)
	}
	return tw.Flush()
}

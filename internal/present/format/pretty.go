package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/mithrel/sakura/pkg/api"
)

var summaryStyle = lipgloss.NewStyle().Faint(true)

// WritePrettyResult renders the result as markdown via glamour, with a faint
// count/paging summary footer.
func WritePrettyResult(w io.Writer, res api.SearchResult) error {
	var md strings.Builder

	for _, item := range res.Items {
		title := itemString(item, "title")
		if title == "" {
			title = itemString(item, "id")
		}
		md.WriteString("# " + title + "\n\n")
		md.WriteString("> **ID:** " + itemString(item, "id"))
		if parent := itemString(item, "parent_id"); parent != "" {
			md.WriteString(" | **Folder:** " + parent)
		}
		if score, ok := item["relevance_score"].(float64); ok {
			md.WriteString(fmt.Sprintf(" | **Score:** %.2f", score))
		}
		md.WriteString("\n\n")
		if snippet := strings.TrimSpace(itemSnippet(item)); snippet != "" {
			md.WriteString(snippet + "\n\n")
		}
		md.WriteString("---\n\n")
	}

	for field, values := range res.Facets {
		md.WriteString("**" + field + ":** ")
		parts := make([]string, len(values))
		for i, fv := range values {
			parts[i] = fmt.Sprintf("%v (%d)", fv.Value, fv.Count)
		}
		md.WriteString(strings.Join(parts, ", ") + "\n\n")
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(wrapWidth()),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md.String())
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d of %d results (page %d)", len(res.Items), res.TotalCount, res.Page)
	if res.HasMore {
		summary += ", more available"
	}
	_, err = io.WriteString(w, summaryStyle.Render(summary)+"\n")
	return err
}

func wrapWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		if w > 120 {
			return 120
		}
		return w
	}
	return 80
}

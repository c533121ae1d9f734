package present

import (
	"context"
	"io"

	"github.com/mithrel/sakura/internal/present/format"
	"github.com/mithrel/sakura/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
}

// ParseMode parses a string like "plain", "pretty", "json", "ndjson".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	default:
		return ModePlain, false
	}
}

// RenderResult renders one complete search result according to options.
func RenderResult(ctx context.Context, w io.Writer, res api.SearchResult, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONResult(w, res, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONItems(w, res.Items)
	case ModePretty:
		return format.WritePrettyResult(w, res)
	default:
		return format.WritePlainItems(w, res.Items, opts.Headers)
	}
}

// StreamWriter receives streamed batches incrementally.
type StreamWriter interface {
	WriteItems(items []api.Item) error
	Close() error
}

// NewStreamWriter returns a writer for streamed batches. Pretty mode has no
// incremental form and falls back to plain.
func NewStreamWriter(w io.Writer, opts Options) StreamWriter {
	switch opts.Mode {
	case ModeJSON:
		return format.NewJSONStreamWriter(w, opts.JSONIndent)
	case ModeNDJSON:
		return format.NewNDJSONStreamWriter(w)
	default:
		return format.NewPlainStreamWriter(w, opts.Headers)
	}
}

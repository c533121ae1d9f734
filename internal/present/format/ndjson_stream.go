package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/sakura/pkg/api"
)

// NDJSONStreamWriter incrementally writes items as NDJSON.
type NDJSONStreamWriter struct {
	enc *json.Encoder
}

// NewNDJSONStreamWriter creates a streaming NDJSON writer.
func NewNDJSONStreamWriter(w io.Writer) *NDJSONStreamWriter {
	return &NDJSONStreamWriter{enc: json.NewEncoder(w)}
}

// WriteItems writes a batch of items.
func (nw *NDJSONStreamWriter) WriteItems(items []api.Item) error {
	for _, item := range items {
		if err := nw.enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op for NDJSON output.
func (nw *NDJSONStreamWriter) Close() error { return nil }

package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/sakura/pkg/api"
)

// WriteNDJSONItems writes items as newline-delimited JSON objects.
func WriteNDJSONItems(w io.Writer, items []api.Item) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

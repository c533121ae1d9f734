package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/sakura/pkg/api"
)

func WriteJSONResult(w io.Writer, res api.SearchResult, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}

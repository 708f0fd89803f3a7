package sink

import (
	"encoding/json"
	"io"

	"github.com/moriyoshi/delimscan/types"
)

// JSON writes records as JSON lines.
type JSON struct {
	enc *json.Encoder
}

func NewJSON(w io.Writer) *JSON {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSON{enc: enc}
}

func (j *JSON) Emit(r types.Record) error {
	return j.enc.Encode(r)
}

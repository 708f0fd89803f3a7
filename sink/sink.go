package sink

import (
	"fmt"
	"io"

	"github.com/moriyoshi/delimscan/types"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// New returns a sink writing to w in the given format.
func New(format string, w io.Writer, withSource bool) (types.Sink, error) {
	switch format {
	case FormatText, "":
		return &Text{Writer: w, WithSource: withSource}, nil
	case FormatJSON:
		return NewJSON(w), nil
	case FormatYAML:
		return NewYAML(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// Close flushes s if it buffers its output.
func Close(s types.Sink) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

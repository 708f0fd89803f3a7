package sink

import (
	"io"

	yaml "gopkg.in/yaml.v3"

	"github.com/moriyoshi/delimscan/types"
)

// YAML collects records and writes them as a single sequence on Close.
type YAML struct {
	w     io.Writer
	store Store
}

func NewYAML(w io.Writer) *YAML {
	return &YAML{w: w}
}

func (y *YAML) Emit(r types.Record) error {
	return y.store.Emit(r)
}

func (y *YAML) Close() error {
	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	records := []types.Record(y.store)
	if records == nil {
		records = []types.Record{}
	}
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

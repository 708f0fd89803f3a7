package types

// Record is one value extracted from an input.
type Record struct {
	// Source names the input the record came from.
	Source string `json:"source" yaml:"source"`
	// Index is the zero-based position of the record within its input.
	Index int      `json:"index" yaml:"index"`
	Kind  Mode     `json:"kind" yaml:"kind"`
	Text  string   `json:"text" yaml:"text"`
	Int   *int64   `json:"int,omitempty" yaml:"int,omitempty"`
	Float *float64 `json:"float,omitempty" yaml:"float,omitempty"`
	// Valid is false for numeric records whose text did not parse.
	Valid bool `json:"valid" yaml:"valid"`
}

func NewTextRecord(source string, index int, kind Mode, text string) Record {
	return Record{
		Source: source,
		Index:  index,
		Kind:   kind,
		Text:   text,
		Valid:  true,
	}
}

func NewIntRecord(source string, index int, text string, v int64, ok bool) Record {
	r := Record{Source: source, Index: index, Kind: ModeInts, Text: text, Valid: ok}
	if ok {
		r.Int = &v
	}
	return r
}

func NewFloatRecord(source string, index int, text string, v float64, ok bool) Record {
	r := Record{Source: source, Index: index, Kind: ModeFloats, Text: text, Valid: ok}
	if ok {
		r.Float = &v
	}
	return r
}

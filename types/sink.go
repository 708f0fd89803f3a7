package types

// Sink receives extracted records.
// A non-nil error stops the extraction of the current input.
type Sink interface {
	Emit(Record) error
}

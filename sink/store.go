package sink

import (
	"github.com/moriyoshi/delimscan/types"
)

// Store keeps records in memory in the order they were emitted.
type Store []types.Record

func (s *Store) Emit(r types.Record) error {
	*s = append(*s, r)
	return nil
}

func (s *Store) Replay(dst types.Sink) error {
	for _, r := range *s {
		if err := dst.Emit(r); err != nil {
			return err
		}
	}
	return nil
}

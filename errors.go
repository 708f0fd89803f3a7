package delimscan

import (
	"errors"
	"fmt"

	"github.com/moriyoshi/delimscan/internal/bufio"
)

var (
	// ErrInvalidRadix is returned when a radix outside [2, 36] is configured
	// or passed to a one-shot radix accessor.
	ErrInvalidRadix = errors.New("radix must be between 2 and 36")
	// ErrBufferFull is returned when a token or line does not fit in the
	// maximum buffer size set with WithMaxBufferSize.
	ErrBufferFull = bufio.ErrBufferFull
)

// ReadError reports a failure of the underlying source. It is never used for
// the end of the stream, which is reported as an absent value instead.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "delimscan: read failed: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func invalidRadix(radix int) error {
	return fmt.Errorf("%w: %d", ErrInvalidRadix, radix)
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bufio.ErrBufferFull):
		return err
	default:
		return &ReadError{Err: err}
	}
}

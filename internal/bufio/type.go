package bufio

import (
	"errors"
	"io"
)

// ErrBufferFull is returned when satisfying a request would grow the buffer
// beyond its configured maximum size.
var ErrBufferFull = errors.New("delimscan: buffer full")

// Source is the byte producer a Buffer pulls from. Any io.Reader will do.
type Source = io.Reader

// Discarder consumes bytes that have already been inspected.
type Discarder interface {
	Buffered() int
	Discard(n int) (int, error)
}

type Scanner interface {
	ReadUpTo(delim byte) ([]byte, error)
}

// Filler exposes the unconsumed window and extends it on request.
type Filler interface {
	Bytes() []byte
	Fill() (int, error)
	EOF() bool
}

type BufferedReader interface {
	Discarder
	Scanner
	Filler
}

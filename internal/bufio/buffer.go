package bufio

import (
	"errors"
	"io"
	"log/slog"

	"github.com/moriyoshi/delimscan/internal/logging"
)

// DefaultSize is the initial capacity of a Buffer created with a
// non-positive size.
const DefaultSize = 4096

const maxConsecutiveEmptyReads = 100

var errNegativeRead = errors.New("delimscan: reader returned invalid count from Read")

// Buffer is a growable window over a Source. Bytes in buf[r:w] have been
// read from the source but not consumed yet.
//
// The capacity only ever grows; consumed space is reclaimed by compaction.
// Slices handed out by Bytes and ReadUpTo stay valid until the next
// call that may refill the buffer.
type Buffer struct {
	src     Source
	buf     []byte
	r, w    int
	eof     bool
	maxSize int
	logger  *slog.Logger
}

func NewBuffer(src Source, size int) *Buffer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Buffer{
		src:    src,
		buf:    make([]byte, size),
		logger: slog.New(logging.BlackholeHandler{}),
	}
}

func (b *Buffer) SetLogger(logger *slog.Logger) {
	b.logger = logging.OrBlackhole(logger)
}

// SetMaxSize caps the capacity the buffer may grow to. Zero removes the cap.
// A cap below the current capacity only prevents further growth.
func (b *Buffer) SetMaxSize(n int) {
	if n < 0 {
		n = 0
	}
	b.maxSize = n
}

// Bytes returns the unconsumed bytes.
func (b *Buffer) Bytes() []byte {
	return b.buf[b.r:b.w]
}

func (b *Buffer) Buffered() int {
	return b.w - b.r
}

func (b *Buffer) Cap() int {
	return len(b.buf)
}

// EOF reports whether the source has been exhausted. Buffered bytes may
// still remain.
func (b *Buffer) EOF() bool {
	return b.eof
}

// Compact moves the unconsumed bytes to the front of the buffer.
func (b *Buffer) Compact() {
	if b.r == 0 {
		return
	}
	copy(b.buf, b.buf[b.r:b.w])
	b.w -= b.r
	b.r = 0
}

func (b *Buffer) grow() error {
	size := len(b.buf) * 2
	if b.maxSize > 0 && size > b.maxSize {
		if len(b.buf) >= b.maxSize {
			return ErrBufferFull
		}
		size = b.maxSize
	}
	buf := make([]byte, size)
	copy(buf, b.buf[b.r:b.w])
	b.logger.Debug(
		"buffer grown",
		slog.Int("from", len(b.buf)),
		slog.Int("to", size),
		slog.Int("buffered", b.w-b.r),
	)
	b.w -= b.r
	b.r = 0
	b.buf = buf
	return nil
}

// Fill appends at most one read's worth of bytes from the source and
// returns the number of bytes appended. When there is no room left at the
// tail, the buffer is compacted if more than half of it has been consumed
// and grown otherwise.
//
// io.EOF from the source marks the buffer as exhausted and is not returned.
// Once exhausted, Fill returns (0, nil).
func (b *Buffer) Fill() (int, error) {
	if b.eof {
		return 0, nil
	}
	if b.w == len(b.buf) {
		if b.r > len(b.buf)/2 {
			b.Compact()
		} else if err := b.grow(); err != nil {
			if b.r == 0 {
				return 0, err
			}
			b.Compact()
		}
	}
	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := b.src.Read(b.buf[b.w:])
		if n < 0 || n > len(b.buf)-b.w {
			return 0, errNegativeRead
		}
		b.w += n
		if err == io.EOF {
			b.eof = true
			b.logger.Debug("source exhausted", slog.Int("buffered", b.w-b.r))
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if n > 0 {
			return n, nil
		}
	}
	return 0, io.ErrNoProgress
}

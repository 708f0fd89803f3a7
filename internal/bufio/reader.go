package bufio

import (
	"bytes"
	"io"
)

// Discard skips the next n bytes, refilling as needed.
func (b *Buffer) Discard(n int) (int, error) {
	discarded := 0
	for discarded < n {
		if b.r == b.w {
			if b.eof {
				return discarded, io.EOF
			}
			if _, err := b.Fill(); err != nil {
				return discarded, err
			}
			continue
		}
		m := min(n-discarded, b.w-b.r)
		b.r += m
		discarded += m
	}
	if b.r == b.w {
		b.r, b.w = 0, 0
	}
	return discarded, nil
}

// ReadUpTo returns the bytes up to and including the first occurrence of
// delim, consuming them. If the source runs out first, the remaining bytes
// are returned with io.EOF; (nil, io.EOF) means nothing was left.
func (b *Buffer) ReadUpTo(delim byte) ([]byte, error) {
	from := 0
	for {
		window := b.Bytes()
		if i := bytes.IndexByte(window[from:], delim); i >= 0 {
			n := from + i + 1
			b.r += n
			return window[:n], nil
		}
		from = len(window)
		if b.eof {
			if len(window) == 0 {
				return nil, io.EOF
			}
			b.r = b.w
			return window, io.EOF
		}
		if _, err := b.Fill(); err != nil {
			return nil, err
		}
	}
}

var _ BufferedReader = &Buffer{}

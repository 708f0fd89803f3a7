// Package match locates delimiter boundaries inside a buffered window.
//
// Patterns compiled here use leftmost-longest semantics: the earliest match
// wins and, among matches starting at the same offset, the longest one.
package match

import (
	"io"
	"unicode/utf8"

	"github.com/grafana/regexp"

	"github.com/moriyoshi/delimscan/internal/bufio"
)

// Engine is the pattern capability the matcher relies on. Both
// github.com/grafana/regexp and the standard regexp package satisfy it.
type Engine interface {
	FindIndex(b []byte) (loc []int)
	FindReaderIndex(r io.RuneReader) (loc []int)
}

type Result int

const (
	// Incomplete means the boundary cannot be decided until more bytes
	// arrive or the source is exhausted.
	Incomplete Result = iota
	// Found means window[start:end] is the next token.
	Found
	// Exhausted means nothing but delimiters remain.
	Exhausted
)

func (r Result) String() string {
	switch r {
	case Incomplete:
		return "incomplete"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Whitespace is the default delimiter: runs of Unicode White_Space
// characters. RE2's \s alone covers only ASCII [\t\n\f\r ].
var Whitespace = MustCompile(`[\s\v\x{85}\p{Z}]+`)

// Compile compiles expr and switches it to leftmost-longest matching.
func Compile(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	re.Longest()
	return re, nil
}

func MustCompile(expr string) *regexp.Regexp {
	re, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return re
}

// Literal returns a pattern matching exactly s.
func Literal(s string) *regexp.Regexp {
	return MustCompile(regexp.QuoteMeta(s))
}

type Matcher struct {
	Engine Engine
}

// Next returns the bounds of the first non-empty match in b that starts at
// or after off, or nil. Empty matches are never delimiters; the search
// steps over them one rune at a time.
func (m Matcher) Next(b []byte, off int) []int {
	for off <= len(b) {
		loc := m.Engine.FindIndex(b[off:])
		if loc == nil {
			return nil
		}
		if loc[1] > loc[0] {
			return []int{off + loc[0], off + loc[1]}
		}
		_, size := utf8.DecodeRune(b[off+loc[0]:])
		if size == 0 {
			return nil
		}
		off += loc[0] + size
	}
	return nil
}

// Split looks for the next token in window. Delimiter runs before the token
// are skipped as a unit. The token ends where the next delimiter starts.
//
// A delimiter that reaches the end of window while atEOF is false could
// still grow, so Split reports Incomplete rather than guessing; the same
// applies when no delimiter is found at all.
func (m Matcher) Split(window []byte, atEOF bool) (start, end int, r Result) {
	for {
		loc := m.Next(window, start)
		if loc == nil {
			if !atEOF {
				return 0, 0, Incomplete
			}
			if start == len(window) {
				return start, start, Exhausted
			}
			return start, len(window), Found
		}
		if loc[1] == len(window) && !atEOF {
			return 0, 0, Incomplete
		}
		if loc[0] > start {
			return start, loc[0], Found
		}
		start = loc[1]
	}
}

// runeReader feeds the window of src to an Engine starting at off,
// refilling src when the engine asks for bytes past the window.
type runeReader struct {
	src bufio.Filler
	off int
	err error
}

func (rr *runeReader) ReadRune() (rune, int, error) {
	for {
		b := rr.src.Bytes()
		if rr.off < len(b) && (utf8.FullRune(b[rr.off:]) || rr.src.EOF()) {
			r, size := utf8.DecodeRune(b[rr.off:])
			rr.off += size
			return r, size, nil
		}
		if rr.src.EOF() {
			return 0, 0, io.EOF
		}
		if _, err := rr.src.Fill(); err != nil {
			rr.err = err
			return 0, 0, err
		}
	}
}

func (m Matcher) pull(src bufio.Filler, off int) ([]int, error) {
	for {
		rr := &runeReader{src: src, off: off}
		loc := m.Engine.FindReaderIndex(rr)
		if rr.err != nil {
			return nil, rr.err
		}
		if loc == nil {
			return nil, nil
		}
		if loc[1] > loc[0] {
			return []int{off + loc[0], off + loc[1]}, nil
		}
		b := src.Bytes()
		p := off + loc[0]
		if p >= len(b) {
			return nil, nil
		}
		_, size := utf8.DecodeRune(b[p:])
		off = p + size
	}
}

func drain(src bufio.Filler) error {
	for !src.EOF() {
		if _, err := src.Fill(); err != nil {
			return err
		}
	}
	return nil
}

// Scan settles the boundary Split reported as Incomplete. Instead of
// retrying Split after every refill, it runs the engine once over a reader
// that pulls from src on demand, so each byte is examined a bounded number
// of times however small the reads from the source are. Offsets are relative
// to src.Bytes() and nothing is consumed.
//
// The engine looks a couple of runes past the end of a match. If a refill
// fails, Scan falls back to Split on what was buffered and reports the error
// only when that does not settle the boundary either.
func (m Matcher) Scan(src bufio.Filler) (start, end int, found bool, err error) {
	fallback := func(err error) (int, int, bool, error) {
		start, end, r := m.Split(src.Bytes(), false)
		if r == Found {
			return start, end, true, nil
		}
		return 0, 0, false, err
	}
	for {
		loc, err := m.pull(src, start)
		if err != nil {
			return fallback(err)
		}
		if loc == nil {
			// Anchored patterns can give up before the source is drained.
			if err := drain(src); err != nil {
				return fallback(err)
			}
			window := src.Bytes()
			if start >= len(window) {
				return len(window), len(window), false, nil
			}
			return start, len(window), true, nil
		}
		if loc[0] > start {
			return start, loc[0], true, nil
		}
		start = loc[1]
	}
}

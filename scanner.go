// Package delimscan splits a byte stream into tokens separated by a
// configurable delimiter pattern and parses them as numbers in any radix
// between 2 and 36.
//
// Extraction methods return a value, a false ok when nothing (or nothing
// well-formed) is left, or an error when the source itself fails. Reaching
// the end of the stream is never an error.
//
// A Scanner is not safe for concurrent use.
package delimscan

import (
	"io"
	"log/slog"

	"github.com/moriyoshi/delimscan/internal/bufio"
	"github.com/moriyoshi/delimscan/internal/logging"
	"github.com/moriyoshi/delimscan/internal/match"
	"github.com/moriyoshi/delimscan/internal/radix"
)

// Delimiter is a compiled pattern. *regexp.Regexp from both the standard
// library and github.com/grafana/regexp implement it. FindReaderIndex is
// used when a boundary lies past the buffered bytes. Patterns compiled by
// the Scanner itself use leftmost-longest matching; call Longest on your own
// expression to get the same behaviour for alternations.
type Delimiter interface {
	FindIndex(b []byte) (loc []int)
	FindReaderIndex(r io.RuneReader) (loc []int)
	String() string
}

// Scanner reads tokens, lines and numbers from a source.
type Scanner struct {
	buf           bufio.BufferedReader
	delim         Delimiter
	matcher       match.Matcher
	radix         int
	groupSep      rune
	bufferSize    int
	maxBufferSize int
	logger        *slog.Logger
}

// NewScanner returns a Scanner reading from src. The Scanner takes src over
// for its whole lifetime; reading from src elsewhere loses data.
func NewScanner(src io.Reader, options ...OptionFunc) (*Scanner, error) {
	s := &Scanner{
		radix:      radix.Decimal,
		groupSep:   ',',
		bufferSize: bufio.DefaultSize,
		logger:     slog.New(logging.BlackholeHandler{}),
	}
	s.setDelimiter(match.Whitespace)
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	if s.maxBufferSize > 0 && s.bufferSize > s.maxBufferSize {
		s.bufferSize = s.maxBufferSize
	}
	buf := bufio.NewBuffer(src, s.bufferSize)
	buf.SetMaxSize(s.maxBufferSize)
	buf.SetLogger(s.logger)
	s.buf = buf
	return s, nil
}

func (s *Scanner) setDelimiter(d Delimiter) {
	s.delim = d
	s.matcher = match.Matcher{Engine: d}
}

// SetDelimiter replaces the delimiter. A nil delimiter restores the default
// whitespace pattern. Tokens already returned are not affected.
func (s *Scanner) SetDelimiter(d Delimiter) {
	if d == nil {
		d = match.Whitespace
	}
	s.setDelimiter(d)
	s.logger.Debug("delimiter changed", slog.String("pattern", d.String()))
}

// SetDelimiterPattern compiles expr and uses it as the delimiter.
func (s *Scanner) SetDelimiterPattern(expr string) error {
	re, err := match.Compile(expr)
	if err != nil {
		return err
	}
	s.SetDelimiter(re)
	return nil
}

// SetDelimiterString uses lit, taken literally, as the delimiter.
func (s *Scanner) SetDelimiterString(lit string) {
	s.SetDelimiter(match.Literal(lit))
}

// Delimiter returns the delimiter in use.
func (s *Scanner) Delimiter() Delimiter {
	return s.delim
}

// SetRadix sets the base numeric accessors parse in. The radix is left
// unchanged and ErrInvalidRadix returned when r is outside [2, 36].
func (s *Scanner) SetRadix(r int) error {
	if !radix.Valid(r) {
		return invalidRadix(r)
	}
	s.radix = r
	return nil
}

// Radix returns the base used by the numeric accessors.
func (s *Scanner) Radix() int {
	return s.radix
}

// SetGroupSeparator sets the character stripped from numeric tokens. Zero
// disables stripping.
func (s *Scanner) SetGroupSeparator(sep rune) {
	s.groupSep = sep
}

func (s *Scanner) fill() error {
	n, err := s.buf.Fill()
	if err != nil {
		s.logger.Debug("refill failed", slog.Any("error", err))
		return mapErr(err)
	}
	s.logger.Debug("refilled", slog.Int("read", n), slog.Int("buffered", s.buf.Buffered()), slog.Bool("eof", s.buf.EOF()))
	return nil
}

// locate returns the bounds of the next token relative to the unconsumed
// bytes, reading more only when the buffered bytes do not settle the
// boundary. Nothing is consumed.
func (s *Scanner) locate() (start, end int, found bool, err error) {
	start, end, r := s.matcher.Split(s.buf.Bytes(), s.buf.EOF())
	switch r {
	case match.Found:
		return start, end, true, nil
	case match.Exhausted:
		return 0, 0, false, nil
	}
	start, end, found, err = s.matcher.Scan(s.buf)
	if err != nil {
		s.logger.Debug("refill failed", slog.Any("error", err))
		return 0, 0, false, mapErr(err)
	}
	return start, end, found, nil
}

func (s *Scanner) peek() (string, bool, error) {
	start, end, found, err := s.locate()
	if !found || err != nil {
		return "", false, err
	}
	return string(s.buf.Bytes()[start:end]), true, nil
}

// Next returns the next token. Delimiters before the token are consumed;
// the delimiter after it is left in place, so a following NextLine returns
// the rest of the current line.
//
// Token bytes are returned as they are. Invalid UTF-8 is not rejected or
// replaced; use utf8.ValidString where that matters.
func (s *Scanner) Next() (string, bool, error) {
	start, end, found, err := s.locate()
	if !found || err != nil {
		return "", false, err
	}
	token := string(s.buf.Bytes()[start:end])
	s.buf.Discard(end)
	return token, true, nil
}

// HasNext reports whether Next would return a token. It may read from the
// source but never consumes anything.
func (s *Scanner) HasNext() (bool, error) {
	_, _, found, err := s.locate()
	return found, err
}

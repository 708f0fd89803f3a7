package delimscan

import (
	"fmt"
	"log/slog"

	"github.com/moriyoshi/delimscan/internal/logging"
	"github.com/moriyoshi/delimscan/internal/match"
	"github.com/moriyoshi/delimscan/internal/radix"
)

// OptionFunc configures a Scanner in NewScanner.
type OptionFunc func(s *Scanner) error

// WithLogger sets the logger. A nil logger discards everything.
func WithLogger(logger *slog.Logger) OptionFunc {
	return func(s *Scanner) error {
		s.logger = logging.OrBlackhole(logger)
		return nil
	}
}

// WithBufferSize sets the initial buffer capacity.
func WithBufferSize(n int) OptionFunc {
	return func(s *Scanner) error {
		if n <= 0 {
			return fmt.Errorf("buffer size must be positive: %d", n)
		}
		s.bufferSize = n
		return nil
	}
}

// WithMaxBufferSize bounds buffer growth. Operations that would need a
// larger buffer fail with ErrBufferFull. Zero, the default, means unbounded.
func WithMaxBufferSize(n int) OptionFunc {
	return func(s *Scanner) error {
		if n < 0 {
			return fmt.Errorf("maximum buffer size must not be negative: %d", n)
		}
		s.maxBufferSize = n
		return nil
	}
}

// WithDelimiter sets a compiled delimiter.
func WithDelimiter(d Delimiter) OptionFunc {
	return func(s *Scanner) error {
		if d == nil {
			return fmt.Errorf("delimiter must not be nil")
		}
		s.setDelimiter(d)
		return nil
	}
}

// WithDelimiterPattern compiles expr with leftmost-longest matching and uses
// it as the delimiter.
func WithDelimiterPattern(expr string) OptionFunc {
	return func(s *Scanner) error {
		re, err := match.Compile(expr)
		if err != nil {
			return fmt.Errorf("invalid delimiter pattern: %w", err)
		}
		s.setDelimiter(re)
		return nil
	}
}

// WithLiteralDelimiter uses lit, taken literally, as the delimiter. An empty
// lit never splits.
func WithLiteralDelimiter(lit string) OptionFunc {
	return func(s *Scanner) error {
		s.setDelimiter(match.Literal(lit))
		return nil
	}
}

// WithRadix sets the base for the numeric accessors, between 2 and 36.
func WithRadix(r int) OptionFunc {
	return func(s *Scanner) error {
		if !radix.Valid(r) {
			return invalidRadix(r)
		}
		s.radix = r
		return nil
	}
}

// WithGroupSeparator sets the character stripped from numeric tokens before
// parsing. The default is ','. Zero disables stripping.
func WithGroupSeparator(sep rune) OptionFunc {
	return func(s *Scanner) error {
		s.groupSep = sep
		return nil
	}
}

package delimscan

import (
	"strconv"

	"github.com/moriyoshi/delimscan/internal/radix"
)

// ParseInt parses s as a signed integer of bitSize bits in the given radix.
// ok is false for empty or malformed text, overflow, or an invalid radix.
func ParseInt(s string, base int, bitSize int) (int64, bool) {
	return radix.ParseInt(s, base, bitSize)
}

func ParseUint(s string, base int, bitSize int) (uint64, bool) {
	return radix.ParseUint(s, base, bitSize)
}

// ParseFloat parses s as a float. In radices other than 10 only a plain
// "digits.digits" mantissa is accepted.
func ParseFloat(s string, base int, bitSize int) (float64, bool) {
	return radix.ParseFloat(s, base, bitSize)
}

func (s *Scanner) numeric(token string) string {
	return radix.StripGrouping(token, s.groupSep)
}

// The numeric accessors below consume the token even when it does not
// parse; use HasNextInt or HasNextFloat to check first.

func (s *Scanner) nextInt(base int, bitSize int) (int64, bool, error) {
	token, ok, err := s.Next()
	if !ok || err != nil {
		return 0, false, err
	}
	v, ok := radix.ParseInt(s.numeric(token), base, bitSize)
	return v, ok, nil
}

func (s *Scanner) nextFloat(base int, bitSize int) (float64, bool, error) {
	token, ok, err := s.Next()
	if !ok || err != nil {
		return 0, false, err
	}
	v, ok := radix.ParseFloat(s.numeric(token), base, bitSize)
	return v, ok, nil
}

func (s *Scanner) NextInt() (int, bool, error) {
	v, ok, err := s.nextInt(s.radix, strconv.IntSize)
	return int(v), ok, err
}

func (s *Scanner) NextInt32() (int32, bool, error) {
	v, ok, err := s.nextInt(s.radix, 32)
	return int32(v), ok, err
}

func (s *Scanner) NextInt64() (int64, bool, error) {
	return s.nextInt(s.radix, 64)
}

func (s *Scanner) NextUint64() (uint64, bool, error) {
	token, ok, err := s.Next()
	if !ok || err != nil {
		return 0, false, err
	}
	v, ok := radix.ParseUint(s.numeric(token), s.radix, 64)
	return v, ok, nil
}

func (s *Scanner) NextFloat32() (float32, bool, error) {
	v, ok, err := s.nextFloat(s.radix, 32)
	return float32(v), ok, err
}

func (s *Scanner) NextFloat64() (float64, bool, error) {
	return s.nextFloat(s.radix, 64)
}

// NextIntRadix is NextInt with a one-off radix. An invalid radix returns
// ErrInvalidRadix and leaves the token in place.
func (s *Scanner) NextIntRadix(base int) (int, bool, error) {
	if !radix.Valid(base) {
		return 0, false, invalidRadix(base)
	}
	v, ok, err := s.nextInt(base, strconv.IntSize)
	return int(v), ok, err
}

func (s *Scanner) NextInt64Radix(base int) (int64, bool, error) {
	if !radix.Valid(base) {
		return 0, false, invalidRadix(base)
	}
	return s.nextInt(base, 64)
}

func (s *Scanner) NextFloat64Radix(base int) (float64, bool, error) {
	if !radix.Valid(base) {
		return 0, false, invalidRadix(base)
	}
	return s.nextFloat(base, 64)
}

// HasNextInt reports whether the next token parses as an int in the current
// radix, without consuming it.
func (s *Scanner) HasNextInt() (bool, error) {
	token, ok, err := s.peek()
	if !ok || err != nil {
		return false, err
	}
	_, ok = radix.ParseInt(s.numeric(token), s.radix, strconv.IntSize)
	return ok, nil
}

func (s *Scanner) HasNextFloat() (bool, error) {
	token, ok, err := s.peek()
	if !ok || err != nil {
		return false, err
	}
	_, ok = radix.ParseFloat(s.numeric(token), s.radix, 64)
	return ok, nil
}

// ParseInt parses token as the scanner's numeric accessors would, using the
// current radix and group separator.
func (s *Scanner) ParseInt(token string) (int64, bool) {
	return radix.ParseInt(s.numeric(token), s.radix, 64)
}

func (s *Scanner) ParseFloat(token string) (float64, bool) {
	return radix.ParseFloat(s.numeric(token), s.radix, 64)
}

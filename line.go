package delimscan

import (
	"io"
)

func trimLineTerminator(l []byte) []byte {
	if len(l) > 0 && l[len(l)-1] == '\n' {
		if len(l) >= 2 && l[len(l)-2] == '\r' {
			return l[:len(l)-2]
		}
		return l[:len(l)-1]
	}
	return l
}

// NextLine returns the rest of the current line without its "\n" or "\r\n"
// terminator, ignoring the delimiter. The last line need not be terminated.
func (s *Scanner) NextLine() (string, bool, error) {
	l, err := s.buf.ReadUpTo('\n')
	if err != nil && err != io.EOF {
		return "", false, mapErr(err)
	}
	if l == nil {
		return "", false, nil
	}
	return string(trimLineTerminator(l)), true, nil
}

// HasNextLine reports whether NextLine would return a line.
func (s *Scanner) HasNextLine() (bool, error) {
	for s.buf.Buffered() == 0 {
		if s.buf.EOF() {
			return false, nil
		}
		if err := s.fill(); err != nil {
			return false, err
		}
	}
	return true, nil
}

package sink

import (
	"io"
	"strconv"

	"github.com/moriyoshi/delimscan/types"
)

// Text writes one record per line. Numeric records are written as their
// decimal value; records that failed to parse are written verbatim unless
// SkipInvalid is set.
type Text struct {
	io.Writer
	WithSource  bool
	SkipInvalid bool
	shortWrite  bool
	buf         []byte
}

func (t *Text) write(b []byte) error {
	n, err := t.Writer.Write(b)
	if n != len(b) {
		t.shortWrite = true
	}
	if err == nil && t.shortWrite {
		err = io.ErrShortWrite
	}
	return err
}

func (t *Text) Emit(r types.Record) error {
	if !r.Valid && t.SkipInvalid {
		return nil
	}
	b := t.buf[:0]
	if t.WithSource {
		b = append(b, r.Source...)
		b = append(b, ':')
		b = strconv.AppendInt(b, int64(r.Index), 10)
		b = append(b, '\t')
	}
	switch {
	case r.Int != nil:
		b = strconv.AppendInt(b, *r.Int, 10)
	case r.Float != nil:
		b = strconv.AppendFloat(b, *r.Float, 'g', -1, 64)
	default:
		b = append(b, r.Text...)
	}
	b = append(b, '\n')
	t.buf = b
	return t.write(b)
}

func (t *Text) ShortWrite() bool {
	return t.shortWrite
}

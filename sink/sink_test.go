package sink

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/moriyoshi/delimscan/types"
)

var records = []types.Record{
	types.NewTextRecord("a.txt", 0, types.ModeTokens, "hello"),
	types.NewIntRecord("a.txt", 1, "ff", 255, true),
	types.NewIntRecord("a.txt", 2, "zz", 0, false),
	types.NewFloatRecord("b.txt", 0, "2.5", 2.5, true),
}

func TestText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		sink     Text
		expected string
	}{
		{name: "plain", sink: Text{}, expected: "hello\n255\nzz\n2.5\n"},
		{name: "with source", sink: Text{WithSource: true}, expected: "a.txt:0\thello\na.txt:1\t255\na.txt:2\tzz\nb.txt:0\t2.5\n"},
		{name: "skip invalid", sink: Text{SkipInvalid: true}, expected: "hello\n255\n2.5\n"},
	}

	for i, c := range cases {
		t.Run(fmt.Sprintf("#%d: %s", i, c.name), func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			s := c.sink
			s.Writer = buf
			for _, r := range records {
				require.NoError(t, s.Emit(r))
			}
			assert.Equal(t, c.expected, buf.String())
			assert.False(t, s.ShortWrite())
		})
	}
}

type shortWriter struct{}

func (shortWriter) Write(b []byte) (int, error) {
	return len(b) / 2, nil
}

func TestTextShortWrite(t *testing.T) {
	t.Parallel()
	s := &Text{Writer: shortWriter{}}
	err := s.Emit(records[0])
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.True(t, s.ShortWrite())
}

func TestJSON(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	s, err := New(FormatJSON, buf, false)
	require.NoError(t, err)
	require.NoError(t, s.Emit(records[1]))
	require.NoError(t, s.Emit(records[2]))
	require.NoError(t, Close(s))
	assert.Equal(t,
		`{"source":"a.txt","index":1,"kind":"ints","text":"ff","int":255,"valid":true}`+"\n"+
			`{"source":"a.txt","index":2,"kind":"ints","text":"zz","valid":false}`+"\n",
		buf.String(),
	)
}

func TestYAML(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	s, err := New(FormatYAML, buf, false)
	require.NoError(t, err)
	for _, r := range records {
		require.NoError(t, s.Emit(r))
	}
	require.NoError(t, Close(s))

	var decoded []types.Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, records, decoded)
}

func TestYAMLEmpty(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	require.NoError(t, NewYAML(buf).Close())
	assert.Equal(t, "[]\n", buf.String())
}

type failingSink struct{ n int }

var errFull = errors.New("full")

func (f *failingSink) Emit(types.Record) error {
	if f.n == 0 {
		return errFull
	}
	f.n--
	return nil
}

func TestStoreReplay(t *testing.T) {
	t.Parallel()
	var s Store
	for _, r := range records {
		require.NoError(t, s.Emit(r))
	}
	var dst Store
	require.NoError(t, s.Replay(&dst))
	assert.Equal(t, s, dst)

	assert.ErrorIs(t, s.Replay(&failingSink{n: 2}), errFull)
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()
	_, err := New("xml", io.Discard, false)
	assert.Error(t, err)
}

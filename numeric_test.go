package delimscan

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIntHandlesGroupSeparators(t *testing.T) {
	t.Parallel()
	s := newTestScanner(t, strings.NewReader("2,147,483,647"))
	v, ok, err := s.NextInt32()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(2147483647), v)

	s = newTestScanner(t, strings.NewReader("1,000"), WithGroupSeparator(0))
	_, ok, err = s.NextInt()
	require.NoError(t, err)
	assert.False(t, ok)

	s = newTestScanner(t, strings.NewReader("1_000"), WithGroupSeparator('_'))
	n, ok, err := s.NextInt()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1000, n)
}

func TestNextInt32Overflow(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"2147483648", "-2147483649"} {
		s := newTestScanner(t, strings.NewReader(input))
		_, ok, err := s.NextInt32()
		require.NoError(t, err)
		assert.Falsef(t, ok, "input %q", input)
	}
}

func TestNextIntConsumesMalformedToken(t *testing.T) {
	t.Parallel()
	s := newTestScanner(t, strings.NewReader("abc 5"))
	_, ok, err := s.NextInt()
	require.NoError(t, err)
	assert.False(t, ok)
	v, ok, err := s.NextInt()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5, v)
	_, ok, err = s.NextInt()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasNextIntDoesNotConsume(t *testing.T) {
	t.Parallel()
	s := newTestScanner(t, strings.NewReader("12 x 1.5"))
	ok, err := s.HasNextInt()
	require.NoError(t, err)
	assert.True(t, ok)
	v, _, err := s.NextInt()
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	ok, err = s.HasNextInt()
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.HasNextFloat()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "x", mustNext(t, s))

	ok, err = s.HasNextInt()
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.HasNextFloat()
	require.NoError(t, err)
	assert.True(t, ok)
	f, ok, err := s.NextFloat64()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)
}

func TestRadix16(t *testing.T) {
	t.Parallel()
	s := newTestScanner(t, strings.NewReader("ff ff"), WithRadix(16))
	v, ok, err := s.NextInt()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 255, v)

	require.NoError(t, s.SetRadix(10))
	_, ok, err = s.NextInt()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNextIntRadix(t *testing.T) {
	t.Parallel()
	s := newTestScanner(t, strings.NewReader("11010"))

	_, ok, err := s.NextIntRadix(1)
	assert.ErrorIs(t, err, ErrInvalidRadix)
	assert.False(t, ok)

	v, ok, err := s.NextIntRadix(2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 26, v)
	assert.Equal(t, 10, s.Radix())
}

func TestNextFloat(t *testing.T) {
	t.Parallel()
	s := newTestScanner(t, strings.NewReader("2.5 -1e3 x"))
	f, ok, err := s.NextFloat64()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	f32, ok, err := s.NextFloat32()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float32(-1000), f32)

	_, ok, err = s.NextFloat64()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNextFloatBase2(t *testing.T) {
	t.Parallel()
	s := newTestScanner(t, strings.NewReader("11010.1"))

	_, ok, err := s.NextFloat64Radix(1)
	assert.ErrorIs(t, err, ErrInvalidRadix)
	assert.False(t, ok)

	f, ok, err := s.NextFloat64Radix(2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 26.5, f)
}

func TestNextUint64(t *testing.T) {
	t.Parallel()
	s := newTestScanner(t, strings.NewReader("18446744073709551615 -1"))
	v, ok, err := s.NextUint64()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), v)
	_, ok, err = s.NextUint64()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNextInt64RadixRoundTrip(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(3))
	for base := 2; base <= 36; base++ {
		values := []int64{0, math.MaxInt64, math.MinInt64, rng.Int63(), -rng.Int63()}
		var sb strings.Builder
		for _, v := range values {
			sb.WriteString(strconv.FormatInt(v, base))
			sb.WriteByte(' ')
		}
		s := newTestScanner(t, strings.NewReader(sb.String()), WithBufferSize(7))
		for _, expected := range values {
			v, ok, err := s.NextInt64Radix(base)
			require.NoError(t, err)
			if assert.Truef(t, ok, "base %d", base) {
				assert.Equal(t, expected, v)
			}
		}
	}
}

func TestPackageLevelParsers(t *testing.T) {
	t.Parallel()
	v, ok := ParseInt("-zz", 36, 64)
	assert.True(t, ok)
	assert.Equal(t, int64(-1295), v)

	u, ok := ParseUint("777", 8, 16)
	assert.True(t, ok)
	assert.Equal(t, uint64(511), u)

	f, ok := ParseFloat("0.8", 16, 64)
	assert.True(t, ok)
	assert.Equal(t, 0.5, f)

	_, ok = ParseFloat("1", 40, 64)
	assert.False(t, ok)
}

func TestScannerParseUsesConfiguration(t *testing.T) {
	t.Parallel()
	s := newTestScanner(t, strings.NewReader(""), WithRadix(2), WithGroupSeparator('\''))
	v, ok := s.ParseInt("1'0000")
	assert.True(t, ok)
	assert.Equal(t, int64(16), v)
	f, ok := s.ParseFloat("1.1")
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)
	_, ok = s.ParseInt("2")
	assert.False(t, ok)
}

package hbuf_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
)

func TestBuffer_Append(t *testing.T) {
	t.Parallel()

	buf := hbuf.New(4)
	require.NoError(t, buf.PutString("ab"))
	require.NoError(t, buf.PutByte('c'))
	require.NoError(t, buf.Put([]byte("def")))
	require.NoError(t, buf.PutInt(-42))
	require.NoError(t, buf.Printf("[%d|%s]", 7, "x"))
	require.NoError(t, buf.PutBuffer(hbuf.ViewString("!")))

	assert.Equal(t, "abcdef-42[7|x]!", buf.String())
	assert.LessOrEqual(t, buf.Len(), buf.Cap())
}

func TestBuffer_GrowthNeverShrinks(t *testing.T) {
	t.Parallel()

	buf := hbuf.New(8)
	require.NoError(t, buf.PutString(strings.Repeat("x", 100)))
	capBefore := buf.Cap()

	require.NoError(t, buf.Truncate())
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, capBefore, buf.Cap())
}

func TestBuffer_ReadOnlyRejectsMutation(t *testing.T) {
	t.Parallel()

	view := hbuf.ViewString("fixed")

	tests := []struct {
		name string
		op   func() error
	}{
		{"Put", func() error { return view.Put([]byte("x")) }},
		{"PutString", func() error { return view.PutString("x") }},
		{"PutByte", func() error { return view.PutByte('x') }},
		{"PutInt", func() error { return view.PutInt(1) }},
		{"Printf", func() error { return view.Printf("%d", 1) }},
		{"Truncate", view.Truncate},
		{"Grow", func() error { return view.Grow(10) }},
		{"ReadFrom", func() error {
			_, err := view.ReadFrom(strings.NewReader("more"))
			return err
		}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.op()
			require.ErrorIs(t, err, hbuf.ErrReadOnly)
			assert.Equal(t, "fixed", view.String())
		})
	}
}

func TestBuffer_ViewAliasesInput(t *testing.T) {
	t.Parallel()

	src := []byte("alias")
	view := hbuf.View(src)
	assert.True(t, view.ReadOnly())
	assert.Equal(t, &src[0], &view.Bytes()[0])
}

func TestBuffer_Limit(t *testing.T) {
	t.Parallel()

	buf := hbuf.New(2, hbuf.WithLimit(5))
	require.NoError(t, buf.PutString("abcd"))

	err := buf.PutString("ef")
	require.ErrorIs(t, err, hbuf.ErrNoSpace)
	assert.Equal(t, "abcd", buf.String(), "failed append must not change contents")

	require.NoError(t, buf.PutByte('e'))
	assert.Equal(t, "abcde", buf.String())
	assert.LessOrEqual(t, buf.Cap(), 5)
}

func TestBuffer_ReadFrom(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("0123456789", 1000)

	buf := hbuf.New(16)
	require.NoError(t, buf.PutString(">"))
	n, err := buf.ReadFrom(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, int64(len(input)), n)
	assert.Equal(t, ">"+input, buf.String())
}

func TestBuffer_ReadFromLimit(t *testing.T) {
	t.Parallel()

	buf := hbuf.New(16, hbuf.WithLimit(8))
	_, err := buf.ReadFrom(strings.NewReader("0123456789"))
	require.ErrorIs(t, err, hbuf.ErrNoSpace)
	assert.Equal(t, "01234567", buf.String())

	exact := hbuf.New(16, hbuf.WithLimit(4))
	_, err = exact.ReadFrom(strings.NewReader("0123"))
	require.NoError(t, err)
	assert.Equal(t, "0123", exact.String())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestBuffer_ReadFromError(t *testing.T) {
	t.Parallel()

	buf := hbuf.New(0)
	_, err := buf.ReadFrom(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestBuffer_Comparisons(t *testing.T) {
	t.Parallel()

	buf := hbuf.New(0)
	require.NoError(t, buf.PutString("<p>hello"))

	assert.True(t, buf.HasPrefix("<p>"))
	assert.True(t, buf.HasPrefix(""))
	assert.False(t, buf.HasPrefix("<pre>"))
	assert.False(t, buf.HasPrefix("<p>hello world"))

	assert.True(t, buf.EqualString("<p>hello"))
	assert.False(t, buf.EqualString("<p>hell"))

	assert.True(t, buf.Equal(hbuf.ViewString("<p>hello")))
	assert.False(t, buf.Equal(hbuf.ViewString("<p>")))
	assert.False(t, buf.Equal(nil))
}

func TestBuffer_Clone(t *testing.T) {
	t.Parallel()

	view := hbuf.ViewString("source")
	clone, err := view.Clone(8)
	require.NoError(t, err)
	assert.False(t, clone.ReadOnly())
	require.NoError(t, clone.PutString("!"))
	assert.Equal(t, "source!", clone.String())
	assert.Equal(t, "source", view.String())
}

func TestBuffer_Write(t *testing.T) {
	t.Parallel()

	buf := hbuf.New(0)
	n, err := buf.Write([]byte("io"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = hbuf.ViewString("").Write([]byte("x"))
	require.ErrorIs(t, err, hbuf.ErrReadOnly)
	assert.Equal(t, 0, n)
}

package html_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/render/html"
)

const escapeInput = `a<b>&"'/`

func TestEscaper(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		escaper  html.Escaper
		literal  bool
		expected string
	}{
		{"text minimal", html.Escaper{}, false, `a&lt;b&gt;&amp;"'/`},
		{"literal minimal", html.Escaper{}, true, `a&lt;b&gt;&amp;&quot;'/`},
		{"text owasp", html.Escaper{OWASP: true}, false, `a&lt;b&gt;&amp;&quot;&#39;&#47;`},
		{"literal owasp", html.Escaper{OWASP: true}, true, `a&lt;b&gt;&amp;&quot;&#39;&#47;`},
		{"text numeric", html.Escaper{Numeric: true}, false, `a&#60;b&#62;&#38;"'/`},
		{"literal owasp numeric", html.Escaper{OWASP: true, Numeric: true}, true, `a&#60;b&#62;&#38;&#34;&#39;&#47;`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ob := hbuf.New(0)
			escape := testCase.escaper.Text
			if testCase.literal {
				escape = testCase.escaper.Literal
			}
			require.NoError(t, escape(ob, []byte(escapeInput)))
			assert.Equal(t, testCase.expected, ob.String())
		})
	}
}

func TestAttr(t *testing.T) {
	t.Parallel()

	ob := hbuf.New(0)
	require.NoError(t, html.Attr(ob, []byte(escapeInput)))
	assert.Equal(t, `a&lt;b&gt;&amp;&quot;&#39;/`, ob.String())
}

func TestHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"http://a.b/c?d=1&e=2#f", "http://a.b/c?d=1&amp;e=2#f"},
		{"it's here", "it&#x27;s%20here"},
		{`"><script>`, "%22%3E%3Cscript%3E"},
		{"ü", "%C3%BC"},
		{"a%20b", "a%20b"},
	}

	for _, testCase := range tests {
		ob := hbuf.New(0)
		require.NoError(t, html.Href(ob, []byte(testCase.input)))
		assert.Equal(t, testCase.expected, ob.String(), "input %q", testCase.input)
	}
}

// stripReferences removes the character references the escapers emit.
func stripReferences(s string) string {
	return strings.NewReplacer(
		"&amp;", "", "&lt;", "", "&gt;", "", "&quot;", "",
		"&#39;", "", "&#47;", "", "&#x27;", "",
		"&#38;", "", "&#60;", "", "&#62;", "", "&#34;", "",
	).Replace(s)
}

func TestEscaping_Totality(t *testing.T) {
	t.Parallel()

	all := make([]byte, 0, 256)
	for c := range 256 {
		all = append(all, byte(c))
	}

	attr := hbuf.New(0)
	require.NoError(t, html.Attr(attr, all))
	assert.False(t, strings.ContainsAny(stripReferences(attr.String()), `<>&"'`))

	href := hbuf.New(0)
	require.NoError(t, html.Href(href, all))
	assert.False(t, strings.ContainsAny(stripReferences(href.String()), `<>&"' `))

	for _, escaper := range []html.Escaper{{}, {OWASP: true}, {Numeric: true}} {
		text := hbuf.New(0)
		require.NoError(t, escaper.Literal(text, all))
		assert.False(t, strings.ContainsAny(stripReferences(text.String()), `<>&"`))
	}
}

func TestEscape_ReadOnlyFails(t *testing.T) {
	t.Parallel()

	view := hbuf.ViewString("")
	require.ErrorIs(t, html.Attr(view, []byte("x")), hbuf.ErrReadOnly)
	require.ErrorIs(t, html.Href(view, []byte("x")), hbuf.ErrReadOnly)
	require.ErrorIs(t, html.Escaper{}.Text(view, []byte("<")), hbuf.ErrReadOnly)
}

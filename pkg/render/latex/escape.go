package latex

import (
	"github.com/yaklabco/gomdrender/pkg/hbuf"
)

// Escape writes src with the LaTeX special characters escaped:
// & % $ # _ { } get a backslash, ~ ^ \ become text macros.
func Escape(ob *hbuf.Buffer, src []byte) error {
	start := 0
	for i, c := range src {
		var repl string
		switch c {
		case '&', '%', '$', '#', '_', '{', '}':
			repl = string([]byte{'\\', c})
		case '~':
			repl = `\textasciitilde{}`
		case '^':
			repl = `\textasciicircum{}`
		case '\\':
			repl = `\textbackslash{}`
		default:
			continue
		}
		if err := ob.Put(src[start:i]); err != nil {
			return err
		}
		if err := ob.PutString(repl); err != nil {
			return err
		}
		start = i + 1
	}
	return ob.Put(src[start:])
}

// EscapeString is Escape for strings.
func EscapeString(ob *hbuf.Buffer, s string) error {
	return Escape(ob, []byte(s))
}

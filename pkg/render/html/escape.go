package html

import (
	"github.com/yaklabco/gomdrender/pkg/hbuf"
)

const hexDigits = "0123456789ABCDEF"

// Character references, indexed by escape class.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	namedRefs = [...]string{
		escAmp:   "&amp;",
		escLT:    "&lt;",
		escGT:    "&gt;",
		escQuot:  "&quot;",
		escApos:  "&#39;",
		escSlash: "&#47;",
	}
	numericRefs = [...]string{
		escAmp:   "&#38;",
		escLT:    "&#60;",
		escGT:    "&#62;",
		escQuot:  "&#34;",
		escApos:  "&#39;",
		escSlash: "&#47;",
	}
)

const (
	escNone = iota
	escAmp
	escLT
	escGT
	escQuot
	escApos
	escSlash
)

func escapeClass(c byte) int {
	switch c {
	case '&':
		return escAmp
	case '<':
		return escLT
	case '>':
		return escGT
	case '"':
		return escQuot
	case '\'':
		return escApos
	case '/':
		return escSlash
	default:
		return escNone
	}
}

// Escaper escapes text for HTML element content.
type Escaper struct {
	// OWASP escapes & < > " ' / everywhere.
	OWASP bool
	// Numeric uses numeric character references for every escape.
	Numeric bool
}

// Text escapes body text. Outside OWASP mode only & < > are escaped.
func (e Escaper) Text(ob *hbuf.Buffer, src []byte) error {
	return e.escape(ob, src, false)
}

// Literal escapes code content. Outside OWASP mode & < > " are escaped.
func (e Escaper) Literal(ob *hbuf.Buffer, src []byte) error {
	return e.escape(ob, src, true)
}

func (e Escaper) escape(ob *hbuf.Buffer, src []byte, literal bool) error {
	refs := &namedRefs
	if e.Numeric {
		refs = &numericRefs
	}

	start := 0
	for i, c := range src {
		class := escapeClass(c)
		switch {
		case class == escNone:
			continue
		case e.OWASP:
		case class == escQuot && literal:
		case class == escApos || class == escSlash || class == escQuot:
			continue
		}

		if err := ob.Put(src[start:i]); err != nil {
			return err
		}
		if err := ob.PutString(refs[class]); err != nil {
			return err
		}
		start = i + 1
	}

	return ob.Put(src[start:])
}

// Attr escapes an attribute value. & < > " ' are always escaped.
func Attr(ob *hbuf.Buffer, src []byte) error {
	start := 0
	for i, c := range src {
		class := escapeClass(c)
		if class == escNone || class == escSlash {
			continue
		}
		if err := ob.Put(src[start:i]); err != nil {
			return err
		}
		if err := ob.PutString(namedRefs[class]); err != nil {
			return err
		}
		start = i + 1
	}
	return ob.Put(src[start:])
}

// hrefSafe marks bytes that pass through Href unchanged.
//
//nolint:gochecknoglobals // Read-only lookup table.
var hrefSafe = func() (safe [256]bool) {
	for c := '0'; c <= '9'; c++ {
		safe[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		safe[c] = true
		safe[c-'a'+'A'] = true
	}
	for _, c := range []byte("-_.~!*();:@=+$,/?#[]%") {
		safe[c] = true
	}
	return safe
}()

// Href escapes a URL for an href or src attribute. URL syntax passes
// through, & and ' become references and everything else is
// percent-encoded.
func Href(ob *hbuf.Buffer, src []byte) error {
	start := 0
	for i, c := range src {
		if hrefSafe[c] {
			continue
		}
		if err := ob.Put(src[start:i]); err != nil {
			return err
		}
		var err error
		switch c {
		case '&':
			err = ob.PutString("&amp;")
		case '\'':
			err = ob.PutString("&#x27;")
		default:
			err = ob.Put([]byte{'%', hexDigits[c>>4], hexDigits[c&0xF]})
		}
		if err != nil {
			return err
		}
		start = i + 1
	}
	return ob.Put(src[start:])
}

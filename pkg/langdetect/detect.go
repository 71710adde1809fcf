// Package langdetect guesses the language of code blocks that carry no
// info string, so renderers can still emit a language class.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// rule recognises a language from unmistakable markers.
type rule struct {
	lang  string
	match func(code, trimmed []byte) bool
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	rules = []rule{
		{"go", func(_, trimmed []byte) bool {
			return bytes.HasPrefix(trimmed, []byte("package "))
		}},
		{"python", func(code, _ []byte) bool {
			return containsAll(code, "def ", "):") || bytes.Contains(code, []byte("__main__"))
		}},
		{"html", func(_, trimmed []byte) bool {
			lower := bytes.ToLower(trimmed)
			return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
		}},
		{"json", func(_, trimmed []byte) bool {
			return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
				bytes.Contains(trimmed, []byte(`":`))
		}},
		{"dockerfile", func(_, trimmed []byte) bool {
			return bytes.HasPrefix(trimmed, []byte("FROM ")) && bytes.Contains(trimmed, []byte("\nRUN "))
		}},
		{"sql", func(_, trimmed []byte) bool {
			upper := bytes.ToUpper(trimmed)
			for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
				if bytes.HasPrefix(upper, []byte(verb)) {
					return true
				}
			}
			return false
		}},
		{"rust", func(code, _ []byte) bool {
			return containsAll(code, "fn ", "let ") || bytes.Contains(code, []byte("println!"))
		}},
	}

	// candidates bounds the classifier to languages commonly fenced in
	// documents.
	candidates = []string{
		"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
		"Java", "C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS", "Makefile",
	}
)

// Detect returns a fence tag for code and whether the guess is reliable.
// Shebangs are trusted first, then marker rules, then go-enry's
// classifier when it is confident.
func Detect(code []byte) (string, bool) {
	trimmed := bytes.TrimSpace(code)
	if len(trimmed) == 0 {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return normalize(lang), true
	}

	for _, r := range rules {
		if r.match(code, trimmed) {
			return r.lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(code, candidates); safe && lang != "" {
		return normalize(lang), true
	}
	return "", false
}

// ForFile returns the fence tag for a file name, e.g. "main.go" → "go".
func ForFile(name string) (string, bool) {
	lang, safe := enry.GetLanguageByExtension(name)
	if !safe || lang == "" {
		return "", false
	}
	return normalize(lang), true
}

func containsAll(code []byte, needles ...string) bool {
	for _, needle := range needles {
		if !bytes.Contains(code, []byte(needle)) {
			return false
		}
	}
	return true
}

// normalize turns a go-enry language name into a fence tag.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	default:
		return strings.ToLower(strings.ReplaceAll(lang, " ", "-"))
	}
}

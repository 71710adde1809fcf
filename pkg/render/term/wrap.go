package term

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// minColumns is the narrowest width paragraphs are wrapped to.
const minColumns = 20

// wrapWords fills words greedily into lines of at most width visible
// columns. Styling escapes do not count toward the width. A word wider
// than the line gets a line of its own.
func wrapWords(text string, width int) []string {
	width = max(width, minColumns)

	var (
		lines []string
		line  strings.Builder
		used  int
	)
	for _, word := range strings.Fields(text) {
		w := lipgloss.Width(word)
		if used > 0 && used+1+w > width {
			lines = append(lines, line.String())
			line.Reset()
			used = 0
		}
		if used > 0 {
			line.WriteByte(' ')
			used++
		}
		line.WriteString(word)
		used += w
	}
	if used > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// indentLines prefixes the first line with first and every following
// non-empty line with rest.
func indentLines(text, first, rest string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	var out strings.Builder
	for i, line := range lines {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		if line != "" || i == 0 {
			out.WriteString(prefix)
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String()
}

// shortLink reduces a link target to its host and last path segment.
// Targets that do not parse as absolute URLs are returned unchanged.
func shortLink(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return target
	}

	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	switch len(segments) {
	case 0:
		return u.Host
	case 1:
		return u.Host + "/" + segments[0]
	default:
		return u.Host + "/.../" + segments[len(segments)-1]
	}
}

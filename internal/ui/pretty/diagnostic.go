package pretty

import "fmt"

// FormatError formats an error for stderr.
func (s *Styles) FormatError(err error) string {
	return s.Error.Render("error:") + " " + err.Error()
}

// FormatWarning formats a non-fatal message for stderr.
func (s *Styles) FormatWarning(message string) string {
	return s.Warning.Render("warning:") + " " + message
}

// FormatWarnings formats one warning per line, prefixed by source if set.
func (s *Styles) FormatWarnings(source string, messages []string) string {
	var out string
	for _, message := range messages {
		if source != "" {
			message = fmt.Sprintf("%s: %s", s.FilePath.Render(source), message)
		}
		out += s.FormatWarning(message) + "\n"
	}
	return out
}

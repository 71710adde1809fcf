package term

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles holds the lipgloss styles of one renderer.
type styles struct {
	Heading   lipgloss.Style
	Emphasis  lipgloss.Style
	Strong    lipgloss.Style
	Strike    lipgloss.Style
	Highlight lipgloss.Style
	Code      lipgloss.Style
	Link      lipgloss.Style
	Dim       lipgloss.Style
	Inserted  lipgloss.Style
	Deleted   lipgloss.Style
}

// newStyles builds styles bound to their own lipgloss renderer, so the
// colour decision is made by the caller and not by sniffing the output.
func newStyles(colour bool) *styles {
	if !colour {
		plain := lipgloss.NewStyle()
		return &styles{
			Heading:   plain,
			Emphasis:  plain,
			Strong:    plain,
			Strike:    plain,
			Highlight: plain,
			Code:      plain,
			Link:      plain,
			Dim:       plain,
			Inserted:  plain,
			Deleted:   plain,
		}
	}

	re := lipgloss.NewRenderer(io.Discard)
	re.SetColorProfile(termenv.ANSI256)

	return &styles{
		Heading:   re.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Emphasis:  re.NewStyle().Italic(true),
		Strong:    re.NewStyle().Bold(true),
		Strike:    re.NewStyle().Strikethrough(true),
		Highlight: re.NewStyle().Reverse(true),
		Code:      re.NewStyle().Foreground(lipgloss.Color("11")),
		Link:      re.NewStyle().Foreground(lipgloss.Color("14")).Underline(true),
		Dim:       re.NewStyle().Foreground(lipgloss.Color("8")),
		Inserted:  re.NewStyle().Foreground(lipgloss.Color("10")).Underline(true),
		Deleted:   re.NewStyle().Foreground(lipgloss.Color("9")).Strikethrough(true),
	}
}

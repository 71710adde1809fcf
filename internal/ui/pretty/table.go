package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomdrender/pkg/meta"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minKeyWidth      = 8
	minValueWidth    = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableFormatter formats metadata as a styled two-column table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatMetaTable formats metadata entries in document order. The
// resolved document header, if any field is set, follows in its own
// section.
func (t *TableFormatter) FormatMetaTable(entries []meta.Entry, header meta.Header) string {
	if len(entries) == 0 {
		return ""
	}

	rows := make([][2]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, [2]string{entry.Key, entry.Value})
	}
	headerRows := headerFields(header)

	keyWidth, valueWidth := t.columnWidths(append(rows, headerRows...))

	var builder strings.Builder
	builder.WriteString(t.formatHeader(keyWidth, valueWidth) + "\n")
	builder.WriteString(t.formatSeparator(keyWidth, valueWidth, heavySeparator) + "\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, keyWidth, valueWidth) + "\n")
	}

	if len(headerRows) > 0 {
		builder.WriteString(t.formatSeparator(keyWidth, valueWidth, lightSeparator) + "\n")
		for _, row := range headerRows {
			builder.WriteString(t.formatRow(row, keyWidth, valueWidth) + "\n")
		}
	}

	builder.WriteString(t.formatSeparator(keyWidth, valueWidth, heavySeparator) + "\n")
	return builder.String()
}

// headerFields lists the set fields of a resolved header, prefixed so
// they read apart from raw keys.
func headerFields(header meta.Header) [][2]string {
	fields := [][2]string{
		{"=title", header.Title},
		{"=author", header.Author},
		{"=affiliation", header.Affiliation},
		{"=copyright", header.Copyright},
		{"=date", header.Date},
		{"=css", header.CSS},
		{"=javascript", header.JavaScript},
	}

	set := fields[:0]
	for _, field := range fields {
		if field[1] != "" {
			set = append(set, field)
		}
	}
	return set
}

func (t *TableFormatter) columnWidths(rows [][2]string) (int, int) {
	keyWidth := minKeyWidth
	valueWidth := minValueWidth
	for _, row := range rows {
		keyWidth = max(keyWidth, lipgloss.Width(row[0]))
		valueWidth = max(valueWidth, lipgloss.Width(oneLine(row[1])))
	}

	available := t.termWidth - tablePadding*3
	if keyWidth+valueWidth > available {
		valueWidth = max(minValueWidth, available-keyWidth)
	}
	return keyWidth, valueWidth
}

func (t *TableFormatter) formatHeader(keyWidth, valueWidth int) string {
	return t.styles.TableHeader.Render(fmt.Sprintf(" %-*s  %-*s", keyWidth, "KEY", valueWidth, "VALUE"))
}

func (t *TableFormatter) formatSeparator(keyWidth, valueWidth int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, keyWidth+valueWidth+tablePadding*2))
}

func (t *TableFormatter) formatRow(row [2]string, keyWidth, valueWidth int) string {
	key := truncateString(row[0], keyWidth)
	value := truncateString(oneLine(row[1]), valueWidth)
	return " " + t.styles.TableKey.Render(pad(key, keyWidth)) + "  " + t.styles.TableValue.Render(value)
}

// oneLine collapses newlines so multi-line values fit a table row.
func oneLine(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func pad(value string, width int) string {
	return value + strings.Repeat(" ", max(0, width-lipgloss.Width(value)))
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

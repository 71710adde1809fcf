// Package cli provides the Cobra command structure for gomdrender.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdrender/internal/ui/pretty"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// minFlagGap is the run of spaces pflag puts between a flag and its usage.
const minFlagGap = 2

// HelpFormatter renders Cobra help with the shared pretty styles.
type HelpFormatter struct {
	styles   *pretty.Styles
	registry *render.Registry
}

// NewHelpFormatter creates a help formatter for the given color mode.
// The output types listed in help come from registry, or the default
// registry when nil.
func NewHelpFormatter(colorMode string, writer io.Writer, registry *render.Registry) *HelpFormatter {
	if registry == nil {
		registry = render.DefaultRegistry
	}
	return &HelpFormatter{
		styles:   pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer)),
		registry: registry,
	}
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":     h.styles.TableHeader.Render,
		"command":     h.styles.Bold.Render,
		"subcommand":  h.styles.Type.Render,
		"dim":         h.styles.Dim.Render,
		"flags":       h.flagUsages,
		"outputTypes": h.outputTypes,
		"rpad":        rpad,
		"trimRight":   trimTrailingWhitespaces,
		"join":        strings.Join,
	}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .LocalFlags.Lookup "type"}}

{{ heading "Output Types:" }}
  {{ outputTypes }}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimRight }}

{{end}}` + usageTemplate

// ApplyToCommand installs the styled help and usage functions on cmd.
// Subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) outputTypes() string {
	types := h.registry.Types()
	names := make([]string, len(types))
	for i, outputType := range types {
		names[i] = h.styles.Type.Render(string(outputType))
	}
	return strings.Join(names, ", ")
}

// flagUsages styles the flag names in pflag's usage block, leaving the
// column layout intact.
func (h *HelpFormatter) flagUsages(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	split := strings.Index(trimmed, strings.Repeat(" ", minFlagGap))
	if trimmed == "" || split < 0 {
		return line
	}
	names, rest := trimmed[:split], trimmed[split:]

	tokens := strings.Fields(names)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = h.styles.Dim.Render(token)
			continue
		}
		clean, comma := strings.CutSuffix(token, ",")
		tokens[i] = h.styles.TableKey.Render(clean)
		if comma {
			tokens[i] += ","
		}
	}
	return indent + strings.Join(tokens, " ") + rest
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

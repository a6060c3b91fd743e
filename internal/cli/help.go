package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/htmlcheck/internal/ui/pretty"
)

// flagColumnGap separates the flag column from its usage text.
const flagColumnGap = 3

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Example    lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles derives help styles from the output styles so help and
// diagnostics share one palette.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	styles := pretty.NewStyles(colorEnabled)
	return &HelpStyles{
		Command:    styles.FilePath,
		Heading:    styles.SummaryTitle,
		Subcommand: styles.Success.UnsetBold(),
		Flag:       styles.Tag,
		Example:    styles.Dim,
		Dim:        styles.Dim,
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{
		styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer)),
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
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

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.Heading.Render,
		"command":    h.styles.Command.Render,
		"subcommand": h.styles.Subcommand.Render,
		"example":    h.styles.Example.Render,
		"flags":      h.renderFlags,
		"pad":        pad,
		"trim":       trimTrailingWhitespace,
	}
}

// flagRow is one line of a flag table before styling.
type flagRow struct {
	short    string
	long     string
	typeName string
	usage    string
}

func (r flagRow) width() int {
	width := len("    --") + runewidth.StringWidth(r.long)
	if r.typeName != "" {
		width += 1 + runewidth.StringWidth(r.typeName)
	}
	return width
}

// renderFlags lays out the visible flags of set in two aligned columns.
func (h *HelpFormatter) renderFlags(set *pflag.FlagSet) string {
	var rows []flagRow
	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		typeName, usage := pflag.UnquoteUsage(flag)
		if flag.DefValue != "" && flag.DefValue != "false" && flag.DefValue != "[]" && flag.DefValue != "0" {
			usage += fmt.Sprintf(" (default %s)", flag.DefValue)
		}
		rows = append(rows, flagRow{
			short:    flag.Shorthand,
			long:     flag.Name,
			typeName: typeName,
			usage:    usage,
		})
	})

	column := 0
	for _, row := range rows {
		column = max(column, row.width())
	}

	var out strings.Builder
	for i, row := range rows {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString("  ")
		if row.short != "" {
			out.WriteString(h.styles.Flag.Render("-" + row.short))
			out.WriteString(", ")
		} else {
			out.WriteString("    ")
		}
		out.WriteString(h.styles.Flag.Render("--" + row.long))
		if row.typeName != "" {
			out.WriteString(" " + h.styles.Dim.Render(row.typeName))
		}
		out.WriteString(strings.Repeat(" ", column-row.width()+flagColumnGap))
		out.WriteString(row.usage)
	}
	return out.String()
}

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit
// them. The --color flag is read again when help is shown, so a value given
// on the command line applies.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(h.forCommand(command).funcs()).Parse(usageTemplate)
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(command.OutOrStderr(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(h.forCommand(command).funcs()).Parse(helpTemplate)
		if err != nil {
			command.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) forCommand(command *cobra.Command) *HelpFormatter {
	mode, err := command.Flags().GetString("color")
	if err != nil {
		return h
	}
	return NewHelpFormatter(mode, command.OutOrStdout())
}

func pad(str string, width int) string {
	if gap := width - runewidth.StringWidth(str); gap > 0 {
		return str + strings.Repeat(" ", gap)
	}
	return str
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/htmlcheck/internal/ui/pretty"
	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	json       bool
}

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Tags        []string `json:"tags"`
	Advisory    bool     `json:"advisory,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the diagnostic rules",
		Long: `List every diagnostic htmlcheck can report with its ID, name, default
severity and tags. IDs and names are both accepted wherever a rule is
configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()
			if flags.json {
				return writeRulesJSON(cmd.OutOrStdout(), rules)
			}

			format := config.RuleFormat(flags.ruleFormat)
			if !format.IsValid() {
				return fmt.Errorf("%w: invalid rule format %q", ErrUsage, flags.ruleFormat)
			}

			colorMode, _ := cmd.Flags().GetString("color")
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
			return writeRulesText(cmd.OutOrStdout(), rules, format, styles)
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatCombined),
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")

	return cmd
}

func writeRulesText(w io.Writer, rules []*lint.Rule, format config.RuleFormat, styles *pretty.Styles) error {
	for _, rule := range rules {
		label := config.FormatRuleID(format, rule.ID(), rule.Name())
		line := fmt.Sprintf("%s  %s  %s  %s\n",
			styles.RuleID.Render(label),
			styles.FormatSeverity(rule.DefaultSeverity()),
			rule.Title(),
			styles.Dim.Render("["+strings.Join(rule.Tags(), ", ")+"]"),
		)
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write rules: %w", err)
		}
		if _, err := fmt.Fprintf(w, "    %s\n", rule.Description()); err != nil {
			return fmt.Errorf("write rules: %w", err)
		}
	}
	return nil
}

func writeRulesJSON(w io.Writer, rules []*lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Title:       rule.Title(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Tags:        rule.Tags(),
			Advisory:    rule.Advisory(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

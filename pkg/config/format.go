package config

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "hierarchy-mismatch"
	RuleFormatID       RuleFormat = "id"       // "HC019"
	RuleFormatCombined RuleFormat = "combined" // "HC019/hierarchy-mismatch"
)

// ruleLabelSeparator joins the code and name in the combined format.
const ruleLabelSeparator = "/"

// IsValid reports whether f names a known format.
func (f RuleFormat) IsValid() bool {
	switch f {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return true
	default:
		return false
	}
}

// FormatRuleID renders a rule label. A rule without a name is always shown
// by its code, and unknown formats render combined.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	switch {
	case ruleName == "", format == RuleFormatID:
		return ruleID
	case format == RuleFormatName:
		return ruleName
	default:
		return ruleID + ruleLabelSeparator + ruleName
	}
}

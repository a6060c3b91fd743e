package lint

import (
	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/validate"
)

// Rule tags.
const (
	TagLexical    = "lexical"
	TagTag        = "tag"
	TagComment    = "comment"
	TagDoctype    = "doctype"
	TagAttribute  = "attribute"
	TagHierarchy  = "hierarchy"
	TagVocabulary = "vocabulary"
)

// BuiltinRules returns one rule per diagnostic code, in code order.
// Every code defaults to error severity. The unknown-tag advisory fails a
// document too; configure HC021 as a warning to accept custom elements.
func BuiltinRules() []*Rule {
	rules := make([]*Rule, 0, len(validate.Codes()))
	for _, code := range validate.Codes() {
		rules = append(rules, NewRule(code, config.SeverityError, codeTags(code)...))
	}
	return rules
}

func codeTags(code validate.Code) []string {
	switch code {
	case validate.CodeTagAtEndOfInput, validate.CodeUnterminatedTagName, validate.CodeEmptyTagName,
		validate.CodeInvalidTagNameStart, validate.CodeInvalidTagStart, validate.CodeInvalidTagNameChar,
		validate.CodeEmptyClosingTagName, validate.CodeInvalidClosingTagStart, validate.CodeInvalidSelfClose,
		validate.CodeUnterminatedTag:
		return []string{TagLexical, TagTag}
	case validate.CodeUnterminatedComment, validate.CodeMalformedCommentStart:
		return []string{TagLexical, TagComment}
	case validate.CodeUnterminatedDoctype:
		return []string{TagLexical, TagDoctype}
	case validate.CodeInvalidAttributeStart, validate.CodeInvalidAttributeNameChar,
		validate.CodeUnquotedOrMissingAttributeValue, validate.CodeUnterminatedAttributeValue,
		validate.CodeUnterminatedTagDueToOpenAttribute:
		return []string{TagLexical, TagAttribute}
	case validate.CodeHierarchyMismatch, validate.CodeUnterminatedHierarchy:
		return []string{TagHierarchy}
	case validate.CodeUnknownTagAdvisory:
		return []string{TagVocabulary}
	default:
		return nil
	}
}

// builtinAliases maps alternative names onto rule IDs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var builtinAliases = map[string]validate.Code{
	"nesting":           validate.CodeHierarchyMismatch,
	"unclosed-elements": validate.CodeUnterminatedHierarchy,
	"unknown-elements":  validate.CodeUnknownTagAdvisory,
	"unquoted-value":    validate.CodeUnquotedOrMissingAttributeValue,
}

func newDefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, rule := range BuiltinRules() {
		reg.Register(rule)
	}
	for alias, code := range builtinAliases {
		reg.RegisterAlias(alias, code.ID())
	}
	return reg
}

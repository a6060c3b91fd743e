package validate

import "fmt"

// Code identifies the kind of defect a Diagnostic reports.
type Code int

const (
	CodeTagAtEndOfInput Code = iota + 1
	CodeUnterminatedTagName
	CodeEmptyTagName
	CodeInvalidTagNameStart
	CodeInvalidTagStart
	CodeInvalidTagNameChar
	CodeEmptyClosingTagName
	CodeInvalidClosingTagStart
	CodeUnterminatedComment
	CodeMalformedCommentStart
	CodeUnterminatedDoctype
	CodeInvalidAttributeStart
	CodeInvalidAttributeNameChar
	CodeUnquotedOrMissingAttributeValue
	CodeUnterminatedAttributeValue
	CodeUnterminatedTagDueToOpenAttribute
	CodeInvalidSelfClose
	CodeUnterminatedTag
	CodeHierarchyMismatch
	CodeUnterminatedHierarchy
	CodeUnknownTagAdvisory
)

type codeInfo struct {
	name        string
	title       string
	description string
}

//nolint:gochecknoglobals // Read-only code table.
var codeTable = map[Code]codeInfo{
	CodeTagAtEndOfInput: {
		"tag-at-end-of-input", "Tag at end of input",
		"A '<' is the last character of the document.",
	},
	CodeUnterminatedTagName: {
		"unterminated-tag-name", "Unterminated tag name",
		"No '>', whitespace or quote follows a '<', so the tag never ends.",
	},
	CodeEmptyTagName: {
		"empty-tag-name", "Empty tag name",
		"The tag '<>' has no name.",
	},
	CodeInvalidTagNameStart: {
		"invalid-tag-name-start", "Invalid tag name start",
		"A '<' is followed by whitespace or a quote instead of a tag name. Write '&lt;' for a literal '<'.",
	},
	CodeInvalidTagStart: {
		"invalid-tag-start", "Invalid tag start",
		"A tag name must start with a letter.",
	},
	CodeInvalidTagNameChar: {
		"invalid-tag-name-char", "Invalid character in tag name",
		"Tag names may contain letters, digits and '-', '_', ':' or '.'.",
	},
	CodeEmptyClosingTagName: {
		"empty-closing-tag-name", "Empty closing tag name",
		"The closing tag '</>' has no name.",
	},
	CodeInvalidClosingTagStart: {
		"invalid-closing-tag-start", "Invalid closing tag start",
		"A closing tag name must follow '</' directly and start with a letter.",
	},
	CodeUnterminatedComment: {
		"unterminated-comment", "Unterminated comment",
		"A comment opened with '<!--' is never closed with '-->'.",
	},
	CodeMalformedCommentStart: {
		"malformed-comment-start", "Malformed comment start",
		"A '<!' must start a comment '<!--' or a '<!DOCTYPE' declaration.",
	},
	CodeUnterminatedDoctype: {
		"unterminated-doctype", "Unterminated doctype",
		"A '<!DOCTYPE' declaration is never closed with '>'.",
	},
	CodeInvalidAttributeStart: {
		"invalid-attribute-start", "Invalid attribute start",
		"An attribute name must start with a letter or '-', '_', ':' or '.'.",
	},
	CodeInvalidAttributeNameChar: {
		"invalid-attribute-name-char", "Invalid character in attribute name",
		"Attribute names may contain letters, digits and '-', '_', ':' or '.'.",
	},
	CodeUnquotedOrMissingAttributeValue: {
		"unquoted-attribute-value", "Unquoted or missing attribute value",
		"An attribute value after '=' must be enclosed in double or single quotes.",
	},
	CodeUnterminatedAttributeValue: {
		"unterminated-attribute-value", "Unterminated attribute value",
		"A quoted attribute value is never closed with its matching quote.",
	},
	CodeUnterminatedTagDueToOpenAttribute: {
		"unterminated-tag-open-attribute", "Unterminated tag with open attribute",
		"The document ends while an attribute name is still open.",
	},
	CodeInvalidSelfClose: {
		"invalid-self-close", "Invalid self-closing marker",
		"A '/' inside a tag must be followed by '>'.",
	},
	CodeUnterminatedTag: {
		"unterminated-tag", "Unterminated tag",
		"The document ends before the tag is closed with '>'.",
	},
	CodeHierarchyMismatch: {
		"hierarchy-mismatch", "Hierarchy mismatch",
		"A closing tag does not match the innermost open element.",
	},
	CodeUnterminatedHierarchy: {
		"unterminated-hierarchy", "Unterminated hierarchy",
		"Paired elements are still open at the end of the document.",
	},
	CodeUnknownTagAdvisory: {
		"unknown-tags", "Unknown tags",
		"The document uses tags outside the known element vocabulary.",
	},
}

// Codes returns every diagnostic code in declaration order.
func Codes() []Code {
	out := make([]Code, 0, len(codeTable))
	for c := CodeTagAtEndOfInput; c <= CodeUnknownTagAdvisory; c++ {
		out = append(out, c)
	}
	return out
}

// ID returns the stable rule identifier, e.g. "HC019".
func (c Code) ID() string {
	return fmt.Sprintf("HC%03d", int(c))
}

// String returns the kebab-case name of the code.
func (c Code) String() string {
	if info, ok := codeTable[c]; ok {
		return info.name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Title returns the short human-readable title.
func (c Code) Title() string {
	return codeTable[c].title
}

// Description returns a one-sentence remediation hint.
func (c Code) Description() string {
	return codeTable[c].description
}

// IsAdvisory reports whether the code summarises the run rather than
// pointing at a single defect.
func (c Code) IsAdvisory() bool {
	return c == CodeUnknownTagAdvisory
}

// Diagnostic is one positioned defect or advisory.
type Diagnostic struct {
	// Code identifies the defect.
	Code Code `json:"code"`

	// Pos is where the defect is anchored. Lexical defects anchor at the '<'
	// of the tag being scanned, not at the bad character. Nesting defects
	// anchor at the '<' of the offending tag, and aggregates at the first
	// tag they list.
	Pos Position `json:"position"`

	// End is where the scanner detected the defect. For lexical defects it
	// lands on the offending character, so the source rune at End.Offset is
	// the one the message names. Unterminated constructs end at the end of
	// input.
	End Position `json:"end"`

	// Title is a short heading.
	Title string `json:"title"`

	// Message explains the defect and how to fix it.
	Message string `json:"message"`

	// Excerpt is the offending source region, verbatim.
	Excerpt string `json:"excerpt,omitempty"`
}

// sink accumulates diagnostics in detection order.
type sink struct {
	diags []Diagnostic
}

func (s *sink) add(d Diagnostic) {
	if d.Title == "" {
		d.Title = d.Code.Title()
	}
	s.diags = append(s.diags, d)
}

func (s *sink) empty() bool {
	return len(s.diags) == 0
}

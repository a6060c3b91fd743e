package validate

// Character roles used by every scanner state. Only U+0020, tab and LF count
// as whitespace inside a tag; input is LF-normalized before scanning.
const (
	charSpace       = ' '
	charTab         = '\t'
	charNewline     = '\n'
	charOpen        = '<'
	charClose       = '>'
	charSlash       = '/'
	charAssign      = '='
	charDoubleQuote = '"'
	charSingleQuote = '\''
	charEscape      = '\\'
	charBang        = '!'
)

// isInsideTagWhitespace reports whether r separates tokens inside a tag.
func isInsideTagWhitespace(r rune) bool {
	return r == charSpace || r == charTab || r == charNewline
}

// isQuote reports whether r opens or closes an attribute value.
func isQuote(r rune) bool {
	return r == charDoubleQuote || r == charSingleQuote
}

// isTagTerminator reports whether r ends a tag name.
func isTagTerminator(r rune) bool {
	return r == charClose || isInsideTagWhitespace(r) || isQuote(r)
}

// isAttrNameTerminator reports whether r ends an attribute name.
func isAttrNameTerminator(r rune) bool {
	return isTagTerminator(r)
}

func isSelfCloseMarker(r rune) bool { return r == charSlash }

func isAssign(r rune) bool { return r == charAssign }

func isEscape(r rune) bool { return r == charEscape }

// isAlpha reports ASCII letters only; names are ASCII by construction.
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlnum(r rune) bool {
	return isAlpha(r) || isDigit(r)
}

// isTagNameExtra reports the punctuation allowed after the first character
// of a tag name.
func isTagNameExtra(r rune) bool {
	return r == '-' || r == '_' || r == ':' || r == '.'
}

// isAttrNameExtra reports the punctuation allowed anywhere in an attribute
// name.
func isAttrNameExtra(r rune) bool {
	return r == '-' || r == '_' || r == ':' || r == '.'
}

func isTagNameStart(r rune) bool {
	return isAlpha(r)
}

func isTagNameChar(r rune) bool {
	return isAlnum(r) || isTagNameExtra(r)
}

func isAttrNameStart(r rune) bool {
	return isAlpha(r) || isAttrNameExtra(r)
}

func isAttrNameChar(r rune) bool {
	return isAlnum(r) || isAttrNameExtra(r)
}

// IsTagName reports whether name is a tag name the scanner accepts.
func IsTagName(name string) bool {
	for i, r := range name {
		if i == 0 && !isTagNameStart(r) || !isTagNameChar(r) {
			return false
		}
	}
	return name != ""
}

package validate

// beforeAttr sits between attributes: after the tag name, after a value,
// or after a name with no value.
func (s *scanner) beforeAttr() state {
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case isInsideTagWhitespace(r):
			s.pos++
		case r == charClose:
			return s.finishTag()
		case isSelfCloseMarker(r):
			if s.tag.closing {
				return s.failAt(CodeInvalidAttributeStart, s.pos,
					"closing tag </%s> cannot be self-closed", s.tag.name)
			}
			s.pos++
			return stateSelfClose
		case isQuote(r):
			// A quoted value without a name is tolerated.
			s.tag.attrName = ""
			return s.openValue(r)
		case isAttrNameStart(r):
			s.tag.attrStart = s.pos
			return stateAttrName
		default:
			return s.failAt(CodeInvalidAttributeStart, s.pos,
				"attribute in tag <%s starts with invalid character %q", s.tag.name, r)
		}
	}
	return s.failAtEOF(CodeUnterminatedTag, "tag <%s is never closed with '>'", s.tag.name)
}

// attrName consumes an attribute name.
func (s *scanner) attrName() state {
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case isAttrNameChar(r):
			s.pos++
		case isAssign(r):
			s.endAttrName()
			s.pos++
			return stateAttrAssign
		case isInsideTagWhitespace(r):
			s.endAttrName()
			return stateAfterAttrName
		case isAttrNameTerminator(r), isSelfCloseMarker(r):
			s.endAttrName()
			return stateBeforeAttr
		default:
			s.endAttrName()
			return s.failAt(CodeInvalidAttributeNameChar, s.pos,
				"attribute name %q in tag <%s uses invalid character %q", s.tag.attrName, s.tag.name, r)
		}
	}

	s.endAttrName()
	return s.failAtEOF(CodeUnterminatedTagDueToOpenAttribute,
		"tag <%s is not closed; the document ends inside attribute %q", s.tag.name, s.tag.attrName)
}

func (s *scanner) endAttrName() {
	s.tag.attrName = string(s.src[s.tag.attrStart:s.pos])
}

// afterAttrName allows whitespace between a name and its '='.
func (s *scanner) afterAttrName() state {
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case isInsideTagWhitespace(r):
			s.pos++
		case isAssign(r):
			s.pos++
			return stateAttrAssign
		default:
			return stateBeforeAttr
		}
	}
	return s.failAtEOF(CodeUnterminatedTagDueToOpenAttribute,
		"tag <%s is not closed; the document ends after attribute %q", s.tag.name, s.tag.attrName)
}

// attrAssign expects optional whitespace and an opening quote after '='.
func (s *scanner) attrAssign() state {
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case isInsideTagWhitespace(r):
			s.pos++
		case isQuote(r):
			return s.openValue(r)
		case r == charClose:
			return s.failAt(CodeUnquotedOrMissingAttributeValue, s.pos,
				"attribute %q in tag <%s is assigned with '=' but has no value", s.tag.attrName, s.tag.name)
		default:
			return s.failAt(CodeUnquotedOrMissingAttributeValue, s.pos,
				"attribute %q in tag <%s has an unquoted value starting with %q; enclose it in quotes",
				s.tag.attrName, s.tag.name, r)
		}
	}
	return s.failAtEOF(CodeUnquotedOrMissingAttributeValue,
		"attribute %q in tag <%s is assigned with '=' but has no value", s.tag.attrName, s.tag.name)
}

func (s *scanner) openValue(quote rune) state {
	s.tag.quote = quote
	s.tag.quoteStart = s.pos
	s.pos++
	return stateAttrValue
}

// attrValue consumes a quoted value. A backslash makes the next character
// literal.
func (s *scanner) attrValue() state {
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case isEscape(r):
			s.pos += 2
		case r == s.tag.quote:
			s.pos++
			return stateBeforeAttr
		default:
			s.pos++
		}
	}

	quotePos := s.track.at(s.tag.quoteStart)
	return s.failAtEOF(CodeUnterminatedAttributeValue,
		"value of attribute %q in tag <%s opened with %c at %d:%d is never closed",
		s.tag.attrName, s.tag.name, s.tag.quote, quotePos.Line, quotePos.Column)
}

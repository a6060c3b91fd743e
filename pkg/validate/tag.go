package validate

import "slices"

const (
	commentOpen  = "!--"
	commentClose = "-->"
	doctypeOpen  = "!DOCTYPE"
)

// rawTextElements switch the scanner into raw-text mode when opened.
//
//nolint:gochecknoglobals // Read-only element list.
var rawTextElements = []string{"script", "style"}

// tagOpen dispatches on the character after '<'.
func (s *scanner) tagOpen() state {
	next := s.tag.start + 1
	if next >= len(s.src) {
		return s.failAtEOF(CodeTagAtEndOfInput,
			"'<' is the last character of the document; write '&lt;' for a literal '<'")
	}

	first := s.src[next]
	if first == charBang {
		switch {
		case s.hasPrefix(next, commentOpen):
			s.pos = next + len(commentOpen)
			return stateComment
		case s.hasPrefixFold(next, doctypeOpen):
			s.pos = next + len(doctypeOpen)
			return stateDoctype
		default:
			return s.fail(CodeMalformedCommentStart, next, s.excerptEnd(next),
				"'<!' must start a comment '<!--' or a '<!DOCTYPE' declaration")
		}
	}

	term := s.indexFunc(next, isTagTerminator)
	switch {
	case term < 0:
		return s.failAtEOF(CodeUnterminatedTagName,
			"the tag name starting at '<' is never followed by '>', whitespace or a quote")
	case term == next && s.src[term] == charClose:
		return s.failAt(CodeEmptyTagName, next, "'<>' has no tag name")
	case term == next:
		return s.failAt(CodeInvalidTagNameStart, next,
			"'<' is followed by %q instead of a tag name; write '&lt;' for a literal '<'", first)
	}

	switch {
	case isTagNameStart(first):
		s.tag.nameStart = next
		s.pos = next
		return stateTagName
	case isSelfCloseMarker(first):
		s.tag.closing = true
		s.pos = next + 1
		return stateClosingTag
	default:
		return s.failAt(CodeInvalidTagStart, next,
			"a tag name must start with a letter, found %q", first)
	}
}

// comment skips to the end of a '<!--' comment.
func (s *scanner) comment() state {
	end := s.index(s.pos, commentClose)
	if end < 0 {
		return s.failAtEOF(CodeUnterminatedComment, "comment opened with '<!--' is never closed with '-->'")
	}
	s.pos = end + len(commentClose)
	return s.resume()
}

// doctype skips to the end of a '<!DOCTYPE' declaration.
func (s *scanner) doctype() state {
	end := s.indexFunc(s.pos, func(r rune) bool { return r == charClose })
	if end < 0 {
		return s.failAtEOF(CodeUnterminatedDoctype, "'<!DOCTYPE' declaration is never closed with '>'")
	}
	s.pos = end + 1
	return s.resume()
}

// closingTag validates the first character after '</'.
func (s *scanner) closingTag() state {
	if s.pos >= len(s.src) {
		return s.failAtEOF(CodeUnterminatedTagName, "closing tag '</' is never completed")
	}

	first := s.src[s.pos]
	switch {
	case first == charClose:
		return s.failAt(CodeEmptyClosingTagName, s.pos, "'</>' has no tag name")
	case !isTagNameStart(first):
		return s.failAt(CodeInvalidClosingTagStart, s.pos,
			"a closing tag name must follow '</' directly and start with a letter, found %q", first)
	}

	s.tag.nameStart = s.pos
	return stateTagName
}

// tagName consumes the name of an opening or closing tag.
func (s *scanner) tagName() state {
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case isTagNameChar(r):
			s.pos++
		case r == charClose:
			s.endTagName()
			return s.finishTag()
		case isTagTerminator(r):
			s.endTagName()
			return stateBeforeAttr
		case isSelfCloseMarker(r) && !s.tag.closing:
			s.endTagName()
			s.pos++
			return stateSelfClose
		default:
			s.endTagName()
			return s.failAt(CodeInvalidTagNameChar, s.pos,
				"tag name %q is followed by invalid character %q", s.tag.name, r)
		}
	}

	s.endTagName()
	return s.failAtEOF(CodeUnterminatedTag, "tag <%s is never closed with '>'", s.tag.name)
}

// endTagName captures the tag name ending at the cursor. Unknown names are
// recorded here so tags that later fail to lex still reach the advisory.
func (s *scanner) endTagName() {
	s.tag.name = string(s.src[s.tag.nameStart:s.pos])
	s.tag.unknown = s.unknown.record(s.vocab, s.tag.name, !s.tag.closing, s.tag.pos)
}

// selfClose expects optional whitespace and '>' after a '/'.
func (s *scanner) selfClose() state {
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case isInsideTagWhitespace(r):
			s.pos++
		case r == charClose:
			s.tag.selfClosed = true
			return s.finishTag()
		default:
			return s.failAt(CodeInvalidSelfClose, s.pos,
				"'/' in tag <%s must be followed by '>', found %q", s.tag.name, r)
		}
	}
	return s.failAtEOF(CodeUnterminatedTag, "tag <%s is never closed with '>'", s.tag.name)
}

// finishTag completes the tag whose '>' is at the cursor and applies it to
// the hierarchy.
func (s *scanner) finishTag() state {
	end := s.pos + 1
	opening := !s.tag.closing && !s.tag.selfClosed
	kind := s.vocab.Classify(s.tag.name, opening)

	rec := TagRecord{
		Name:       s.tag.name,
		Kind:       kind,
		Raw:        string(s.src[s.tag.start:end]),
		Pos:        s.tag.pos,
		End:        s.track.at(s.pos),
		SelfClosed: s.tag.selfClosed,
		start:      s.tag.start,
		end:        end,
	}
	s.pos = end
	s.tags++

	// Self-closing syntax on a paired element is XHTML-style authoring and
	// is not tracked.
	if s.tag.unknown && rec.SelfClosed {
		s.unknown.selfClosed()
	}
	if !(rec.SelfClosed && kind == PairedClosing) {
		if diag := s.stack.check(rec, s.src); diag != nil {
			s.sink.add(*diag)
			return stateDone
		}
	}

	switch {
	case s.tag.closing:
		s.rawTag = ""
	case opening && slices.Contains(rawTextElements, rec.Name):
		s.rawTag = rec.Name
	}

	return s.resume()
}

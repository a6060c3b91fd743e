package validate

// rawText skips script or style content. A '<' only starts a tag when it
// begins a closing tag, and quoted string literals are skipped whole so
// that tag-like text inside them is ignored.
func (s *scanner) rawText() state {
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case r == charOpen:
			if s.closingTagAhead(s.pos + 1) {
				return s.beginTag()
			}
			s.pos++
		case isQuote(r):
			if end, ok := s.matchQuote(s.pos); ok {
				s.pos = end + 1
			} else {
				s.pos++
			}
		default:
			s.pos++
		}
	}
	return stateDone
}

// closingTagAhead reports whether optional whitespace and '/' follow idx.
func (s *scanner) closingTagAhead(idx int) bool {
	for idx < len(s.src) && isInsideTagWhitespace(s.src[idx]) {
		idx++
	}
	return idx < len(s.src) && isSelfCloseMarker(s.src[idx])
}

// matchQuote finds the unescaped quote closing the literal opened at start.
// An unmatched quote is plain content.
func (s *scanner) matchQuote(start int) (int, bool) {
	quote := s.src[start]
	for idx := start + 1; idx < len(s.src); idx++ {
		switch r := s.src[idx]; {
		case isEscape(r):
			idx++
		case r == quote:
			return idx, true
		}
	}
	return 0, false
}

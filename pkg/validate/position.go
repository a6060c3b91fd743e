package validate

import "unicode/utf8"

// Position is a location in LF-normalized text.
type Position struct {
	// Line is the 1-based line number.
	Line int `json:"line"`

	// Column is the 1-based column, counted in characters.
	Column int `json:"column"`

	// Offset is the byte offset into the normalized text.
	Offset int `json:"offset"`
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// tracker converts rune indices into positions. It only moves forward, so
// a whole run costs one walk over the input however many positions are
// requested.
type tracker struct {
	src []rune

	index      int // rune index reached so far
	byteOffset int // byte offset of index
	line       int
	lineStart  int // rune index of the first character on line
}

func newTracker(src []rune) *tracker {
	return &tracker{src: src, line: 1}
}

// at returns the position of the character at rune index idx. idx may equal
// len(src) to address the end of input. Requests behind the cursor are
// answered by rewinding from the start of the input.
func (t *tracker) at(idx int) Position {
	if idx < t.index {
		t.index, t.byteOffset, t.line, t.lineStart = 0, 0, 1, 0
	}

	for t.index < idx && t.index < len(t.src) {
		r := t.src[t.index]
		t.byteOffset += utf8.RuneLen(r)
		t.index++
		if r == charNewline {
			t.line++
			t.lineStart = t.index
		}
	}

	return Position{
		Line:   t.line,
		Column: t.index - t.lineStart + 1,
		Offset: t.byteOffset,
	}
}

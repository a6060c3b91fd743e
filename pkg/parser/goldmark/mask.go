package goldmark

import (
	"slices"
	"unicode/utf8"
)

// Segment is a half-open byte range [Start, Stop) of raw HTML.
type Segment struct {
	Start int
	Stop  int

	// Block is true for lines of an HTML block and false for inline HTML.
	Block bool
}

// Len returns the number of bytes in the segment.
func (s Segment) Len() int {
	return s.Stop - s.Start
}

// Masked is Markdown content reduced to its embedded HTML.
type Masked struct {
	// Content has the original length; bytes outside Segments are blanked.
	Content []byte

	// Segments lists the kept HTML ranges in source order.
	Segments []Segment
}

// HasHTML reports whether any raw HTML was found.
func (m *Masked) HasHTML() bool {
	return len(m.Segments) > 0
}

// Blank runes of each UTF-8 width. None of them is '<', so the validator
// reads them as text, and each keeps the byte and rune count of the rune it
// replaces.
const (
	blank1 = ' '
	blank2 = '\u00a0'
	blank3 = '\u2000'
	blank4 = '\U000e0020'
)

// blank copies content, replacing each rune outside segments by a blank rune
// of the same encoded width. Line feeds are kept.
func blank(content []byte, segments []Segment) []byte {
	out := make([]byte, 0, len(content))

	next := 0
	for idx := 0; idx < len(content); {
		for next < len(segments) && segments[next].Stop <= idx {
			next++
		}
		if next < len(segments) && segments[next].Start <= idx {
			stop := min(segments[next].Stop, len(content))
			out = append(out, content[idx:stop]...)
			idx = stop
			continue
		}

		r, size := utf8.DecodeRune(content[idx:])
		if r == '\n' {
			out = append(out, '\n')
		} else {
			out = utf8.AppendRune(out, blankOfWidth(size))
		}
		idx += size
	}

	return out
}

func blankOfWidth(size int) rune {
	switch size {
	case 2:
		return blank2
	case 3:
		return blank3
	case 4:
		return blank4
	default:
		return blank1
	}
}

// sortSegments orders segments by start and drops empty ones.
func sortSegments(segments []Segment) []Segment {
	segments = slices.DeleteFunc(segments, func(s Segment) bool { return s.Len() <= 0 })
	slices.SortStableFunc(segments, func(a, b Segment) int { return a.Start - b.Start })
	return segments
}

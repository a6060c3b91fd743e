package validate

import (
	"fmt"
	"strings"
)

// TagRecord is one completed tag occurrence.
type TagRecord struct {
	Name string
	Kind TagKind

	// Raw is the tag source from '<' to '>' inclusive.
	Raw string

	// Pos is the position of the opening '<'.
	Pos Position

	// End is the position of the closing '>'.
	End Position

	// SelfClosed is set for tags written as <name .../>.
	SelfClosed bool

	start int // rune index of '<'
	end   int // rune index just past '>'
}

// hierarchy is the stack of open paired and unknown elements. It owns the
// pending records until they are popped.
type hierarchy struct {
	stack []TagRecord
}

func (h *hierarchy) push(rec TagRecord) {
	h.stack = append(h.stack, rec)
}

func (h *hierarchy) pop() (TagRecord, bool) {
	if len(h.stack) == 0 {
		return TagRecord{}, false
	}
	top := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return top, true
}

// check applies one completed tag to the stack. It returns a diagnostic when
// a closing tag does not match the innermost open element.
func (h *hierarchy) check(rec TagRecord, src []rune) *Diagnostic {
	switch rec.Kind {
	case PairedOpening, UnknownOpening:
		h.push(rec)
		return nil
	case VoidOpening, VoidClosingViolation:
		return nil
	case PairedClosing, UnknownClosing:
		top, ok := h.pop()
		if ok && strings.EqualFold(top.Name, rec.Name) {
			return nil
		}
		return mismatch(rec, top, ok, src)
	default:
		return nil
	}
}

func mismatch(rec, top TagRecord, hasTop bool, src []rune) *Diagnostic {
	diag := &Diagnostic{
		Code:    CodeHierarchyMismatch,
		Pos:     rec.Pos,
		End:     rec.End,
		Excerpt: rec.Raw,
	}

	switch {
	case rec.SelfClosed:
		diag.Message = fmt.Sprintf(
			"%s is written as self-closing, but <%s> is not a known void element, "+
				"so it is treated as a closing tag; previous-level tag: %s",
			rec.Raw, rec.Name, describeOpen(top, hasTop))
	case !hasTop:
		diag.Message = fmt.Sprintf(
			"closing tag %s has no open element to close; previous-level tag: %s",
			rec.Raw, describeOpen(top, hasTop))
	default:
		diag.Message = fmt.Sprintf(
			"expected </%s> to close the previous-level %s, but found %s",
			top.Name, describeOpen(top, hasTop), rec.Raw)
		if top.start < rec.end && rec.end <= len(src) {
			diag.Excerpt = string(src[top.start:rec.end])
		}
	}

	return diag
}

func describeOpen(rec TagRecord, ok bool) string {
	if !ok {
		return "none, no element is open"
	}
	return fmt.Sprintf("%s element %s opened at %d:%d",
		rec.Kind.Family(), rec.Raw, rec.Pos.Line, rec.Pos.Column)
}

// drain empties the stack innermost first and reports paired elements that
// were never closed. Unknown openers are left to the unknown-tag advisory.
func (h *hierarchy) drain(eof Position) *Diagnostic {
	var (
		lines []string
		raws  []string
		first *TagRecord
	)

	for {
		rec, ok := h.pop()
		if !ok {
			break
		}
		if rec.Kind == UnknownOpening {
			continue
		}
		if first == nil {
			first = &rec
		}
		lines = append(lines, fmt.Sprintf("  %d:%d %s: %s lacks </%s>",
			rec.Pos.Line, rec.Pos.Column, rec.Kind.Family(), rec.Raw, rec.Name))
		raws = append(raws, rec.Raw)
	}

	if first == nil {
		return nil
	}

	return &Diagnostic{
		Code: CodeUnterminatedHierarchy,
		Pos:  first.Pos,
		End:  eof,
		Message: fmt.Sprintf("%d element(s) still open at end of document:\n%s",
			len(lines), strings.Join(lines, "\n")),
		Excerpt: strings.Join(raws, "\n"),
	}
}

package validate

import (
	"context"
	"fmt"
	"strings"
)

// state names one step of the scanner. Each state consumes input and
// returns the next state; stateDone ends the pass.
type state int

const (
	stateText state = iota
	stateRawText
	stateTagOpen
	stateComment
	stateDoctype
	stateClosingTag
	stateTagName
	stateBeforeAttr
	stateAttrName
	stateAfterAttrName
	stateAttrAssign
	stateAttrValue
	stateSelfClose
	stateDone
)

func (st state) String() string {
	switch st {
	case stateText:
		return "text"
	case stateRawText:
		return "raw-text"
	case stateTagOpen:
		return "tag-open"
	case stateComment:
		return "comment"
	case stateDoctype:
		return "doctype"
	case stateClosingTag:
		return "closing-tag"
	case stateTagName:
		return "tag-name"
	case stateBeforeAttr:
		return "before-attr"
	case stateAttrName:
		return "attr-name"
	case stateAfterAttrName:
		return "after-attr-name"
	case stateAttrAssign:
		return "attr-assign"
	case stateAttrValue:
		return "attr-value"
	case stateSelfClose:
		return "self-close"
	case stateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(st))
	}
}

type stepFunc func(s *scanner) state

// transitions maps each state to the step that handles it. Keeping the
// mapping in one table avoids nested recursion between the tag and
// attribute scanners and makes every state testable on its own.
//
//nolint:gochecknoglobals // Read-only dispatch table.
var transitions = [...]stepFunc{
	stateText:          (*scanner).text,
	stateRawText:       (*scanner).rawText,
	stateTagOpen:       (*scanner).tagOpen,
	stateComment:       (*scanner).comment,
	stateDoctype:       (*scanner).doctype,
	stateClosingTag:    (*scanner).closingTag,
	stateTagName:       (*scanner).tagName,
	stateBeforeAttr:    (*scanner).beforeAttr,
	stateAttrName:      (*scanner).attrName,
	stateAfterAttrName: (*scanner).afterAttrName,
	stateAttrAssign:    (*scanner).attrAssign,
	stateAttrValue:     (*scanner).attrValue,
	stateSelfClose:     (*scanner).selfClose,
}

// tagScan is the state of the tag currently being scanned.
type tagScan struct {
	start     int      // rune index of '<'
	pos       Position // position of '<'
	nameStart int
	name      string
	closing   bool
	unknown   bool

	selfClosed bool

	attrStart int
	attrName  string

	quote      rune
	quoteStart int
}

// scanner owns every piece of mutable state for one validation run.
type scanner struct {
	ctx   context.Context
	vocab *Vocabulary

	src   []rune
	pos   int
	state state
	track *tracker

	stack   hierarchy
	unknown unknownTracker
	sink    sink

	// rawTag is "script" or "style" while inside raw-text content.
	rawTag string

	tag  tagScan
	tags int
}

func newScanner(ctx context.Context, vocab *Vocabulary, text string) *scanner {
	src := []rune(text)
	return &scanner{
		ctx:   ctx,
		vocab: vocab,
		src:   src,
		state: stateText,
		track: newTracker(src),
	}
}

// run drives the state machine to completion and appends the end-of-run
// aggregates.
func (s *scanner) run() error {
	for s.state != stateDone {
		select {
		case <-s.ctx.Done():
			return fmt.Errorf("validation cancelled: %w", s.ctx.Err())
		default:
		}

		s.state = transitions[s.state](s)
	}

	if s.sink.empty() {
		if diag := s.stack.drain(s.track.at(len(s.src))); diag != nil {
			s.sink.add(*diag)
		}
	}
	if diag := s.unknown.advisory(); diag != nil {
		s.sink.add(*diag)
	}

	return nil
}

// resume returns the content state to continue with after a tag, comment or
// declaration.
func (s *scanner) resume() state {
	if s.rawTag != "" {
		return stateRawText
	}
	return stateText
}

// text skips character data up to the next '<'.
func (s *scanner) text() state {
	for s.pos < len(s.src) {
		if s.src[s.pos] == charOpen {
			return s.beginTag()
		}
		s.pos++
	}
	return stateDone
}

// beginTag records the start of a tag at the cursor.
func (s *scanner) beginTag() state {
	s.tag = tagScan{
		start: s.pos,
		pos:   s.track.at(s.pos),
	}
	return stateTagOpen
}

// fail records a lexical defect in the current tag and stops the run.
// detected is the rune index where the defect was found; excerptEnd bounds
// the excerpt, which always starts at the tag's '<'.
func (s *scanner) fail(code Code, detected, excerptEnd int, format string, args ...any) state {
	excerptEnd = min(max(excerptEnd, s.tag.start), len(s.src))

	s.sink.add(Diagnostic{
		Code:    code,
		Pos:     s.tag.pos,
		End:     s.track.at(min(detected, len(s.src))),
		Message: fmt.Sprintf(format, args...),
		Excerpt: string(s.src[s.tag.start:excerptEnd]),
	})

	return stateDone
}

// failAtEOF records a defect detected at the end of input.
func (s *scanner) failAtEOF(code Code, format string, args ...any) state {
	return s.fail(code, len(s.src), len(s.src), format, args...)
}

// failAt records a defect triggered by the character at idx.
func (s *scanner) failAt(code Code, idx int, format string, args ...any) state {
	return s.fail(code, idx, idx+1, format, args...)
}

func (s *scanner) hasPrefix(idx int, prefix string) bool {
	for _, r := range prefix {
		if idx >= len(s.src) || s.src[idx] != r {
			return false
		}
		idx++
	}
	return true
}

func (s *scanner) hasPrefixFold(idx int, prefix string) bool {
	n := len([]rune(prefix))
	if idx+n > len(s.src) {
		return false
	}
	return strings.EqualFold(string(s.src[idx:idx+n]), prefix)
}

// index returns the rune index of the first occurrence of needle at or after
// from, or -1.
func (s *scanner) index(from int, needle string) int {
	for i := from; i < len(s.src); i++ {
		if s.hasPrefix(i, needle) {
			return i
		}
	}
	return -1
}

// indexFunc returns the rune index of the first character at or after from
// satisfying fn, or -1.
func (s *scanner) indexFunc(from int, fn func(rune) bool) int {
	for i := from; i < len(s.src); i++ {
		if fn(s.src[i]) {
			return i
		}
	}
	return -1
}

// excerptEnd returns the index just past the next '>' at or after from, or
// the end of input.
func (s *scanner) excerptEnd(from int) int {
	if idx := s.indexFunc(from, func(r rune) bool { return r == charClose }); idx >= 0 {
		return idx + 1
	}
	return len(s.src)
}

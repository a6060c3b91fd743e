// Package validate checks that HTML markup is lexically well formed and that
// element nesting is balanced.
//
// Validation is a single left-to-right pass driven by an explicit state
// machine. It is fail-fast: the first lexical defect or hierarchy mismatch
// ends the pass. Unclosed elements and unknown tags are summarised at the
// end of the run. The package keeps no global mutable state, so one
// Validator may be used from many goroutines at once.
package validate

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyDocument is returned for empty or whitespace-only input.
var ErrEmptyDocument = errors.New("empty document")

// Result is the outcome of validating one document.
type Result struct {
	// OK is true iff Diagnostics is empty.
	OK bool `json:"ok"`

	// Diagnostics lists defects in detection order. The unclosed-element
	// summary and the unknown-tag advisory, when present, come last.
	Diagnostics []Diagnostic `json:"diagnostics"`

	// Unknown lists every tag whose name is outside the vocabulary.
	Unknown []UnknownTag `json:"unknown,omitempty"`

	// Tags is the number of tags completed before the pass ended.
	Tags int `json:"tags"`
}

// Validator validates documents against an element vocabulary.
type Validator struct {
	vocab *Vocabulary
}

// New returns a Validator using vocab, or the built-in vocabulary when
// vocab is nil.
func New(vocab *Vocabulary) *Validator {
	if vocab == nil {
		vocab = builtinVocabulary
	}
	return &Validator{vocab: vocab}
}

// Vocabulary returns the vocabulary the validator classifies tags with.
func (v *Validator) Vocabulary() *Vocabulary {
	return v.vocab
}

// Validate runs one pass over text. Line endings are normalized first, so
// diagnostic positions refer to Normalize(text). The only errors are
// ErrEmptyDocument and context cancellation; defects are reported in the
// Result.
func (v *Validator) Validate(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	scan := newScanner(ctx, v.vocab, Normalize(text))
	if err := scan.run(); err != nil {
		return nil, err
	}

	return &Result{
		OK:          scan.sink.empty(),
		Diagnostics: scan.sink.diags,
		Unknown:     scan.unknown.tags,
		Tags:        scan.tags,
	}, nil
}

// Validate runs one pass over text with the built-in vocabulary.
func Validate(ctx context.Context, text string) (*Result, error) {
	return New(nil).Validate(ctx, text)
}

// Normalize converts CRLF and lone CR line endings to LF and replaces
// invalid UTF-8 with U+FFFD, so that offsets and columns are stable.
func Normalize(text string) string {
	text = strings.ToValidUTF8(text, "\uFFFD")
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

package validate

import (
	"cmp"
	"slices"
)

// TagKind classifies one tag occurrence by vocabulary membership and
// orientation.
type TagKind int

const (
	UnknownOpening TagKind = iota
	UnknownClosing
	VoidOpening
	VoidClosingViolation
	PairedOpening
	PairedClosing
)

// String returns the kebab-case name of the kind.
func (k TagKind) String() string {
	switch k {
	case UnknownOpening:
		return "unknown-opening"
	case UnknownClosing:
		return "unknown-closing"
	case VoidOpening:
		return "void-opening"
	case VoidClosingViolation:
		return "void-closing"
	case PairedOpening:
		return "paired-opening"
	case PairedClosing:
		return "paired-closing"
	default:
		return "invalid"
	}
}

// IsOpening reports whether the kind describes an opening tag.
func (k TagKind) IsOpening() bool {
	return k == UnknownOpening || k == VoidOpening || k == PairedOpening
}

// IsUnknown reports whether the tag name fell outside the vocabulary.
func (k TagKind) IsUnknown() bool {
	return k == UnknownOpening || k == UnknownClosing
}

// Family names the element family used in messages: "unknown", "void" or
// "paired".
func (k TagKind) Family() string {
	switch k {
	case UnknownOpening, UnknownClosing:
		return "unknown"
	case VoidOpening, VoidClosingViolation:
		return "void"
	default:
		return "paired"
	}
}

// voidElements never take a closing tag.
//
//nolint:gochecknoglobals // Read-only element table.
var voidElements = []string{
	"area", "base", "br", "col", "command", "embed", "hr", "img",
	"input", "keygen", "link", "meta", "param", "source", "track", "wbr",
}

// pairedElements require a matching closing tag.
//
//nolint:gochecknoglobals // Read-only element table.
var pairedElements = []string{
	"html", "head", "title", "style", "script", "noscript", "body",
	"section", "nav", "article", "aside",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"hgroup", "header", "footer", "address",
	"p", "pre", "blockquote", "ol", "ul", "li", "dl", "dt", "dd",
	"figure", "figcaption", "div",
	"a", "em", "strong", "small", "s", "cite", "q", "dfn", "abbr", "time",
	"code", "var", "samp", "kbd", "sub", "sup", "i", "b", "u", "mark",
	"ruby", "rb", "rt", "rp", "bdo", "bdi", "span", "ins", "del",
	"iframe", "object", "video", "audio", "canvas", "map",
	"table", "caption", "colgroup", "tbody", "thead", "tfoot", "tr", "td", "th",
	"form", "fieldset", "legend", "label", "button", "select", "datalist",
	"optgroup", "option", "textarea", "output", "progress", "meter",
	"details", "summary", "menu", "font",
}

// Vocabulary is the set of element names the tag classifier recognises.
// Lookups are case-sensitive. A Vocabulary is immutable once built and may
// be shared between goroutines.
type Vocabulary struct {
	void   map[string]struct{}
	paired map[string]struct{}
}

// DefaultVocabulary returns the built-in element vocabulary.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(nil, nil)
}

// NewVocabulary returns the built-in vocabulary extended with extra paired
// and void names. A name listed as both is treated as void.
func NewVocabulary(extraPaired, extraVoid []string) *Vocabulary {
	v := &Vocabulary{
		void:   make(map[string]struct{}, len(voidElements)+len(extraVoid)),
		paired: make(map[string]struct{}, len(pairedElements)+len(extraPaired)),
	}

	for _, name := range voidElements {
		v.void[name] = struct{}{}
	}
	for _, name := range extraVoid {
		v.void[name] = struct{}{}
	}

	for _, name := range pairedElements {
		if _, isVoid := v.void[name]; !isVoid {
			v.paired[name] = struct{}{}
		}
	}
	for _, name := range extraPaired {
		if _, isVoid := v.void[name]; !isVoid {
			v.paired[name] = struct{}{}
		}
	}

	return v
}

// Classify maps a tag name and orientation to its TagKind.
func (v *Vocabulary) Classify(name string, opening bool) TagKind {
	if _, ok := v.void[name]; ok {
		if opening {
			return VoidOpening
		}
		return VoidClosingViolation
	}
	if _, ok := v.paired[name]; ok {
		if opening {
			return PairedOpening
		}
		return PairedClosing
	}
	if opening {
		return UnknownOpening
	}
	return UnknownClosing
}

// Element describes one vocabulary entry.
type Element struct {
	Name string `json:"name"`
	Void bool   `json:"void"`
}

// Elements lists the vocabulary sorted by name.
func (v *Vocabulary) Elements() []Element {
	out := make([]Element, 0, len(v.void)+len(v.paired))
	for name := range v.void {
		out = append(out, Element{Name: name, Void: true})
	}
	for name := range v.paired {
		out = append(out, Element{Name: name})
	}

	slices.SortFunc(out, func(a, b Element) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

// Classify maps a tag name and orientation to its TagKind using the
// built-in vocabulary.
func Classify(name string, opening bool) TagKind {
	return builtinVocabulary.Classify(name, opening)
}

//nolint:gochecknoglobals // Immutable after package init.
var builtinVocabulary = DefaultVocabulary()

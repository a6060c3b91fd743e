// Package langdetect decides how a source file should be checked.
// It uses go-enry to map file names and content onto the kinds of
// document htmlcheck understands: HTML and Markdown with embedded HTML.
package langdetect

import (
	"bytes"
	"slices"

	"github.com/go-enry/go-enry/v2"
)

// Kind is the document kind of a source file.
type Kind int

const (
	// KindUnsupported marks files that are neither HTML nor Markdown.
	KindUnsupported Kind = iota
	// KindHTML marks HTML documents and fragments.
	KindHTML
	// KindMarkdown marks Markdown documents, whose embedded HTML is checked.
	KindMarkdown
)

// enry language names.
const (
	langHTML     = "HTML"
	langMarkdown = "Markdown"
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindMarkdown:
		return "markdown"
	default:
		return "unsupported"
	}
}

// ParseKind converts a kind name back to a Kind. Unknown names map to
// KindUnsupported and false.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "html", "htm", "xhtml":
		return KindHTML, true
	case "markdown", "md":
		return KindMarkdown, true
	default:
		return KindUnsupported, false
	}
}

// DetectFile returns the kind of the file at path with the given content.
// The extension wins when it is conclusive. Otherwise the content is
// sniffed, which is also how stdin (an empty path) is classified.
func DetectFile(path string, content []byte) Kind {
	if path != "" {
		if kind, ok := byExtension(path, content); ok {
			return kind
		}
	}
	return Detect(content)
}

// IsVendored reports whether path sits in a vendored or third-party
// directory such as node_modules.
func IsVendored(path string) bool {
	return enry.IsVendor(path)
}

// Detect returns the kind of content with no file name to go on.
// Content that looks like markup is HTML; anything else is Markdown,
// since plain text is valid Markdown and only its embedded HTML is checked.
func Detect(content []byte) Kind {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return KindUnsupported
	}

	if looksLikeHTML(trimmed) {
		return KindHTML
	}

	// Fragments that open with a tag are settled by the classifier. It ranks
	// both candidates, so only the leading guess is used.
	if trimmed[0] == '<' {
		candidates := []string{langHTML, langMarkdown}
		if lang, _ := enry.GetLanguageByClassifier(content, candidates); lang == langHTML {
			return KindHTML
		}
	}

	return KindMarkdown
}

// byExtension resolves a kind from the file extension alone. Extensions
// enry maps to several languages are settled by the candidates it returns.
func byExtension(path string, content []byte) (Kind, bool) {
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return fromLanguage(lang)
	}

	langs := enry.GetLanguagesByExtension(path, content, nil)
	switch {
	case slices.Contains(langs, langHTML):
		return KindHTML, true
	case slices.Contains(langs, langMarkdown):
		return KindMarkdown, true
	case len(langs) > 0:
		return KindUnsupported, true
	default:
		return KindUnsupported, false
	}
}

func fromLanguage(lang string) (Kind, bool) {
	switch lang {
	case langHTML:
		return KindHTML, true
	case langMarkdown:
		return KindMarkdown, true
	default:
		return KindUnsupported, true
	}
}

// looksLikeHTML checks for markers that only whole HTML documents carry.
func looksLikeHTML(trimmed []byte) bool {
	lower := bytes.ToLower(trimmed)
	if bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html")) {
		return true
	}
	return bytes.Contains(lower, []byte("<head>")) || bytes.Contains(lower, []byte("<body"))
}

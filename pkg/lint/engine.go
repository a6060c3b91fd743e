package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/fsutil"
	"github.com/yaklabco/htmlcheck/pkg/langdetect"
	"github.com/yaklabco/htmlcheck/pkg/validate"
)

// Skip reasons reported in FileResult.SkipReason.
const (
	SkipUnsupported      = "not an HTML or Markdown document"
	SkipMarkdownDisabled = "markdown checking disabled"
	SkipEmptyDocument    = "empty document"
)

// FileResult contains the results of validating a single file.
type FileResult struct {
	// Path is the file path, or fsutil.StdinPath.
	Path string

	// Kind is the detected document kind.
	Kind langdetect.Kind

	// Validation is the validator's result. It is nil when the file was
	// skipped or is Markdown without embedded HTML.
	Validation *validate.Result

	// Diagnostics contains the issues reported under the resolved rules.
	Diagnostics []Diagnostic

	// Skipped is true if the file was not validated.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string
}

// HasIssues returns true if any diagnostics were reported.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// CountBySeverity returns the number of diagnostics with the given severity.
func (fr *FileResult) CountBySeverity(severity config.Severity) int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.Severity == severity {
			count++
		}
	}
	return count
}

// Failed returns true if any reported diagnostic has error severity.
func (fr *FileResult) Failed() bool {
	return fr.CountBySeverity(config.SeverityError) > 0
}

// Unknown returns the tags outside the element vocabulary.
func (fr *FileResult) Unknown() []validate.UnknownTag {
	if fr.Validation == nil {
		return nil
	}
	return fr.Validation.Unknown
}

// Engine coordinates document detection and validation.
type Engine struct {
	// Markdown extracts embedded HTML from Markdown files.
	// When nil, Markdown files are skipped.
	Markdown MarkdownParser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given Markdown parser and registry.
func NewEngine(markdown MarkdownParser, registry *Registry) *Engine {
	return &Engine{
		Markdown: markdown,
		Registry: registry,
	}
}

// LintFile validates a single document.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	result := &FileResult{Path: path, Kind: detectKind(path, content, cfg)}

	text := validate.Normalize(string(content))

	switch result.Kind {
	case langdetect.KindHTML:
	case langdetect.KindMarkdown:
		if e.Markdown == nil || !cfg.Markdown.IsEnabled() {
			return skip(result, SkipMarkdownDisabled), nil
		}
		masked, err := e.Markdown.Mask(ctx, []byte(text))
		if err != nil {
			return nil, fmt.Errorf("parse markdown: %w", err)
		}
		if !masked.HasHTML() {
			return result, nil
		}
		text = string(masked.Content)
	default:
		return skip(result, SkipUnsupported), nil
	}

	validation, err := validatorFor(cfg).Validate(ctx, text)
	if errors.Is(err, validate.ErrEmptyDocument) {
		return skip(result, SkipEmptyDocument), nil
	}
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	result.Validation = validation
	result.Diagnostics = e.diagnostics(path, validation, cfg)

	return result, nil
}

// diagnostics maps validator findings onto rules, dropping disabled ones.
func (e *Engine) diagnostics(path string, validation *validate.Result, cfg *config.Config) []Diagnostic {
	if len(validation.Diagnostics) == 0 {
		return nil
	}

	resolved := resolveByCode(e.Registry, cfg)
	diags := make([]Diagnostic, 0, len(validation.Diagnostics))
	for _, found := range validation.Diagnostics {
		rr, ok := resolved[found.Code]
		if !ok {
			continue
		}
		diags = append(diags, FromValidation(rr.Rule, path, found).WithSeverity(rr.Severity).Build())
	}

	return diags
}

func validatorFor(cfg *config.Config) *validate.Validator {
	if cfg.Elements.IsEmpty() {
		return validate.New(nil)
	}
	return validate.New(VocabularyFor(cfg))
}

// detectKind classifies a document. Standard input has no name, so its
// content is sniffed unless cfg.StdinKind names the kind.
func detectKind(path string, content []byte, cfg *config.Config) langdetect.Kind {
	if path != fsutil.StdinPath {
		return langdetect.DetectFile(path, content)
	}
	if kind, ok := langdetect.ParseKind(cfg.StdinKind); ok {
		return kind
	}
	return langdetect.DetectFile("", content)
}

// VocabularyFor returns the built-in vocabulary extended with the elements
// configured in cfg.
func VocabularyFor(cfg *config.Config) *validate.Vocabulary {
	if cfg == nil || cfg.Elements.IsEmpty() {
		return validate.DefaultVocabulary()
	}
	return validate.NewVocabulary(cfg.Elements.Paired, cfg.Elements.Void)
}

func skip(result *FileResult, reason string) *FileResult {
	result.Skipped = true
	result.SkipReason = reason
	return result
}

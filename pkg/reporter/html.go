package reporter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/lint"
	"github.com/yaklabco/htmlcheck/pkg/runner"
)

// Compile-time interface checks.
var (
	_ lint.ReportRenderer = (*HTMLRenderer)(nil)
	_ Reporter            = (*HTMLReporter)(nil)
)

// errNoResult is returned when a report is requested for a missing result.
var errNoResult = errors.New("no validation result")

// runReportTitle is the page title of the run-level HTML output.
const runReportTitle = "htmlcheck report"

const reportStyle = `
body { font-family: system-ui, sans-serif; margin: 2rem; color: #1f2328; }
header { border-bottom: 1px solid #d0d7de; margin-bottom: 1.5rem; }
dl { display: grid; grid-template-columns: max-content auto; gap: 0.25rem 1rem; }
dt { font-weight: 600; }
dd { margin: 0; }
article { border-left: 4px solid #d0d7de; padding: 0.25rem 1rem; margin: 1rem 0; }
article.error { border-color: #cf222e; }
article.warning { border-color: #bf8700; }
article.info { border-color: #0969da; }
.location, .rule { color: #57606a; }
pre { background: #f6f8fa; padding: 0.75rem; overflow-x: auto; white-space: pre-wrap; }
footer { margin-top: 2rem; color: #57606a; font-size: 0.875rem; }
`

// HTMLRenderer renders the failure report of a single document. It is the
// renderer the pipeline writes into the report directory.
type HTMLRenderer struct {
	opts Options
}

// NewHTMLRenderer creates a report renderer.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{opts: opts}
}

// RenderFileReport implements lint.ReportRenderer.
func (r *HTMLRenderer) RenderFileReport(w io.Writer, result *lint.PipelineResult, sourceURL string) error {
	if result == nil || result.FileResult == nil {
		return errNoResult
	}

	path := displayPath(result.Path, r.opts.WorkingDir)
	doc, body := newPage("htmlcheck: " + path)

	body.AppendChild(pageHeader("HTML validation report", sourceURL))
	body.AppendChild(r.fileSection(path, result))
	body.AppendChild(pageFooter(r.opts.version()))

	return renderPage(w, doc)
}

// fileSection builds the section describing one document.
func (r *HTMLRenderer) fileSection(path string, result *lint.PipelineResult) *html.Node {
	section := element(atom.Section, attr("class", "file"))
	section.AppendChild(textElement(atom.H2, path))

	meta := element(atom.Dl)
	addTerm(meta, "Path", path)
	addTerm(meta, "Kind", result.Kind.String())
	addTerm(meta, "Status", fileStatus(result.FileResult))
	if result.Validation != nil {
		addTerm(meta, "Tags", strconv.Itoa(result.Validation.Tags))
	}
	section.AppendChild(meta)

	if len(result.Diagnostics) == 0 {
		section.AppendChild(textElement(atom.P, "No issues found."))
	}
	for i := range result.Diagnostics {
		section.AppendChild(r.diagnosticArticle(&result.Diagnostics[i]))
	}

	if unknown := result.Unknown(); len(unknown) > 0 {
		section.AppendChild(textElement(atom.H3, "Unknown tags"))
		list := element(atom.Ul, attr("class", "unknown"))
		for _, tag := range unknown {
			list.AppendChild(textElement(atom.Li, tag.String()))
		}
		section.AppendChild(list)
	}

	return section
}

// diagnosticArticle builds the block for one diagnostic. The excerpt is a
// text node, so html.Render escapes it.
func (r *HTMLRenderer) diagnosticArticle(diag *lint.Diagnostic) *html.Node {
	article := element(atom.Article, attr("class", string(diag.Severity)))

	title := diag.Title
	if title == "" {
		title = diag.RuleName
	}
	article.AppendChild(textElement(atom.H3, title))

	article.AppendChild(textElement(atom.P,
		fmt.Sprintf("Line %d, column %d (offset %d)", diag.StartLine, diag.StartColumn, diag.Offset),
		attr("class", "location")))
	article.AppendChild(textElement(atom.P,
		fmt.Sprintf("%s %s", config.FormatRuleID(config.RuleFormatCombined, diag.RuleID, diag.RuleName), diag.Severity),
		attr("class", "rule")))
	article.AppendChild(textElement(atom.P, diag.Message, attr("class", "message")))

	if rule, ok := r.opts.registry().GetByID(diag.RuleID); ok && rule.Description() != "" {
		article.AppendChild(textElement(atom.P, rule.Description(), attr("class", "help")))
	}

	if diag.HasExcerpt() {
		pre := element(atom.Pre)
		pre.AppendChild(textElement(atom.Code, diag.Excerpt))
		article.AppendChild(pre)
	}

	return article
}

// HTMLReporter writes a whole run as one HTML page.
type HTMLReporter struct {
	opts     Options
	renderer *HTMLRenderer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts:     opts,
		renderer: NewHTMLRenderer(opts),
	}
}

// Report implements Reporter. Only files with diagnostics or read errors get
// a section.
func (r *HTMLReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	doc, body := newPage(runReportTitle)
	body.AppendChild(pageHeader(runReportTitle, r.opts.SourceURL))

	total := 0
	if result != nil {
		body.AppendChild(textElement(atom.P, runSummary(result.Stats), attr("class", "summary")))

		for _, file := range result.Files {
			if err := ctx.Err(); err != nil {
				return 0, fmt.Errorf("render HTML: %w", err)
			}

			path := displayPath(file.Path, r.opts.WorkingDir)
			switch {
			case file.Error != nil:
				section := element(atom.Section, attr("class", "file"))
				section.AppendChild(textElement(atom.H2, path))
				section.AppendChild(textElement(atom.P, "error: "+file.Error.Error(), attr("class", "error")))
				body.AppendChild(section)
			case file.Result != nil && file.Result.FileResult != nil && file.Result.HasIssues():
				body.AppendChild(r.renderer.fileSection(path, file.Result))
				total += file.Result.IssueCount()
			}
		}
	}

	body.AppendChild(pageFooter(r.opts.version()))

	if err := renderPage(r.opts.Writer, doc); err != nil {
		return 0, err
	}
	return total, nil
}

// runSummary describes the run in one sentence.
func runSummary(stats runner.Stats) string {
	return fmt.Sprintf("%d files checked, %d failed, %d with issues, %d issues, %d unknown tags",
		stats.FilesProcessed, stats.FilesFailed, stats.FilesWithIssues,
		stats.DiagnosticsTotal, stats.UnknownTags)
}

// fileStatus is the pass/fail wording for a document.
func fileStatus(result *lint.FileResult) string {
	switch {
	case result.Skipped:
		return "skipped: " + result.SkipReason
	case result.Failed():
		return "failed"
	case result.HasIssues():
		return "passed with warnings"
	default:
		return "passed"
	}
}

// newPage returns a document with head and style filled in, and its body.
func newPage(title string) (*html.Node, *html.Node) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"))
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(textElement(atom.Title, title))
	head.AppendChild(textElement(atom.Style, reportStyle))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	return doc, body
}

func pageHeader(title, sourceURL string) *html.Node {
	header := element(atom.Header)
	header.AppendChild(textElement(atom.H1, title))

	if sourceURL != "" {
		meta := element(atom.Dl)
		meta.AppendChild(textElement(atom.Dt, "Source"))
		dd := element(atom.Dd)
		if isWebURL(sourceURL) {
			dd.AppendChild(textElement(atom.A, sourceURL, attr("href", sourceURL)))
		} else {
			dd.AppendChild(text(sourceURL))
		}
		meta.AppendChild(dd)
		header.AppendChild(meta)
	}

	return header
}

func pageFooter(version string) *html.Node {
	footer := element(atom.Footer)
	footer.AppendChild(textElement(atom.P, "Generated by "+ToolName+" "+version))
	return footer
}

// isWebURL reports whether raw is an absolute http or https URL. Anything
// else is shown as text rather than linked.
func isWebURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func renderPage(w io.Writer, doc *html.Node) error {
	bw := bufio.NewWriterSize(w, bufWriterSize)
	if err := html.Render(bw, doc); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}
	if err := bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}
	return nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func textElement(a atom.Atom, content string, attrs ...html.Attribute) *html.Node {
	node := element(a, attrs...)
	node.AppendChild(text(content))
	return node
}

func text(content string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: content}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func addTerm(list *html.Node, term, desc string) {
	list.AppendChild(textElement(atom.Dt, term))
	list.AppendChild(textElement(atom.Dd, desc))
}

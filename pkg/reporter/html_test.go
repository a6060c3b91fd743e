package reporter_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/htmlcheck/pkg/langdetect"
	"github.com/yaklabco/htmlcheck/pkg/reporter"
)

// collect returns every element with the given atom in document order.
func collect(root *html.Node, a atom.Atom) []*html.Node {
	var found []*html.Node
	for node := range root.Descendants() {
		if node.Type == html.ElementNode && node.DataAtom == a {
			found = append(found, node)
		}
	}
	return found
}

func textOf(node *html.Node) string {
	var builder strings.Builder
	for child := range node.Descendants() {
		if child.Type == html.TextNode {
			builder.WriteString(child.Data)
		}
	}
	return builder.String()
}

func attrOf(node *html.Node, key string) (string, bool) {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func renderFileReport(t *testing.T, sourceURL string) (string, *html.Node) {
	t.Helper()

	opts := reporter.DefaultOptions()
	opts.WorkingDir = workDir
	opts.Version = "1.2.3"

	result := fileResult(workDir+"/bad.html", langdetect.KindHTML, badContent, mismatchDiagnostic())

	var buf bytes.Buffer
	require.NoError(t, reporter.NewHTMLRenderer(opts).RenderFileReport(&buf, result, sourceURL))

	doc, err := html.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return buf.String(), doc
}

func TestHTMLRenderer_Structure(t *testing.T) {
	t.Parallel()

	raw, doc := renderFileReport(t, "https://example.com/page")

	assert.True(t, strings.HasPrefix(raw, "<!DOCTYPE html>"))

	titles := collect(doc, atom.Title)
	require.Len(t, titles, 1)
	assert.Equal(t, "htmlcheck: bad.html", textOf(titles[0]))

	htmlNodes := collect(doc, atom.Html)
	require.Len(t, htmlNodes, 1)
	lang, _ := attrOf(htmlNodes[0], "lang")
	assert.Equal(t, "en", lang)

	links := collect(doc, atom.A)
	require.Len(t, links, 1)
	href, _ := attrOf(links[0], "href")
	assert.Equal(t, "https://example.com/page", href)

	articles := collect(doc, atom.Article)
	require.Len(t, articles, 1)
	class, _ := attrOf(articles[0], "class")
	assert.Equal(t, "error", class)

	body := textOf(articles[0])
	assert.Contains(t, body, "Hierarchy mismatch")
	assert.Contains(t, body, "Line 2, column 3 (offset 8)")
	assert.Contains(t, body, "HC019/hierarchy-mismatch error")
	assert.Contains(t, body, "closing tag </div> does not match")
	assert.Contains(t, body, "A closing tag does not match the innermost open element.")

	codes := collect(doc, atom.Code)
	require.Len(t, codes, 1)
	assert.Equal(t, "<span></div>\n", textOf(codes[0]))

	assert.Contains(t, textOf(doc), "Generated by htmlcheck 1.2.3")
	assert.Contains(t, textOf(doc), "failed")
}

func TestHTMLRenderer_EscapesExcerpt(t *testing.T) {
	t.Parallel()

	raw, _ := renderFileReport(t, "")
	assert.Contains(t, raw, "&lt;span&gt;&lt;/div&gt;")
	assert.NotContains(t, raw, "<span></div>")
}

func TestHTMLRenderer_NonWebSourceURLIsText(t *testing.T) {
	t.Parallel()

	raw, doc := renderFileReport(t, "javascript:alert(1)")
	assert.Empty(t, collect(doc, atom.A))
	assert.Contains(t, raw, "javascript:alert(1)")
}

func TestHTMLRenderer_UnknownTags(t *testing.T) {
	t.Parallel()

	result := sampleResult().Files[2].Result

	var buf bytes.Buffer
	require.NoError(t, reporter.NewHTMLRenderer(reporter.DefaultOptions()).RenderFileReport(&buf, result, ""))

	doc, err := html.Parse(&buf)
	require.NoError(t, err)

	items := collect(doc, atom.Li)
	require.Len(t, items, 2)
	assert.Equal(t, "1:1 <my-widget> opening", textOf(items[0]))
	assert.Equal(t, "1:12 </my-widget> closing", textOf(items[1]))
}

func TestHTMLRenderer_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := reporter.NewHTMLRenderer(reporter.DefaultOptions()).RenderFileReport(&buf, nil, "")
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestHTMLReporter_Run(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.WorkingDir = workDir

	result := sampleResult()
	result.Files = append(result.Files, erroredResult().Files...)

	count, err := reporter.NewHTMLReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	doc, err := html.Parse(&buf)
	require.NoError(t, err)

	var headings []string
	for _, h2 := range collect(doc, atom.H2) {
		headings = append(headings, textOf(h2))
	}
	assert.Equal(t, []string{"bad.html", "widget.html", "gone.html"}, headings)
	assert.Contains(t, textOf(doc), "error: file not found")
	assert.Contains(t, textOf(doc), "3 files checked, 1 failed, 2 with issues, 2 issues, 2 unknown tags")
}

func TestHTMLReporter_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf

	_, err := reporter.NewHTMLReporter(opts).Report(ctx, sampleResult())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFile_ByExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want Kind
	}{
		{name: "html", path: "site/index.html", want: KindHTML},
		{name: "htm", path: "legacy/page.htm", want: KindHTML},
		{name: "xhtml", path: "book/ch1.xhtml", want: KindHTML},
		{name: "markdown", path: "docs/README.md", want: KindMarkdown},
		{name: "markdown long extension", path: "notes.markdown", want: KindMarkdown},
		{name: "go source", path: "main.go", want: KindUnsupported},
		{name: "yaml", path: "config.yaml", want: KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DetectFile(tt.path, []byte("<p>hello</p>\n")))
		})
	}
}

func TestDetectFile_NoPathSniffsContent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindHTML, DetectFile("", []byte("<!DOCTYPE html>\n<html><body></body></html>\n")))
	assert.Equal(t, KindMarkdown, DetectFile("", []byte("# Title\n\nSome *text*.\n")))
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    Kind
	}{
		{name: "empty", content: "", want: KindUnsupported},
		{name: "whitespace", content: " \n\t\n", want: KindUnsupported},
		{name: "doctype", content: "<!doctype html>\n<title>x</title>", want: KindHTML},
		{name: "html root", content: "<HTML lang=\"en\"></HTML>", want: KindHTML},
		{name: "body fragment", content: "<div>\n<body class=\"x\"></body>\n</div>", want: KindHTML},
		{name: "markdown heading", content: "# Heading\n\n- item\n", want: KindMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Detect([]byte(tt.content)))
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "html", KindHTML.String())
	assert.Equal(t, "markdown", KindMarkdown.String())
	assert.Equal(t, "unsupported", KindUnsupported.String())
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	kind, ok := ParseKind("md")
	assert.True(t, ok)
	assert.Equal(t, KindMarkdown, kind)

	kind, ok = ParseKind("htm")
	assert.True(t, ok)
	assert.Equal(t, KindHTML, kind)

	kind, ok = ParseKind("rst")
	assert.False(t, ok)
	assert.Equal(t, KindUnsupported, kind)
}

func TestIsVendored(t *testing.T) {
	t.Parallel()

	assert.True(t, IsVendored("node_modules/pkg/index.html"))
	assert.False(t, IsVendored("site/index.html"))
}

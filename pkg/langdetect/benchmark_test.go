package langdetect

import (
	"testing"
)

func BenchmarkDetectFileByExtension(b *testing.B) {
	content := []byte("<p>hello</p>\n")
	b.ResetTimer()
	for range b.N {
		DetectFile("index.html", content)
	}
}

func BenchmarkDetectHTMLContent(b *testing.B) {
	content := []byte(`<!DOCTYPE html>
<html>
<head><title>Bench</title></head>
<body><p>Hello</p></body>
</html>`)
	b.ResetTimer()
	for range b.N {
		Detect(content)
	}
}

func BenchmarkDetectMarkdownContent(b *testing.B) {
	content := []byte("# Title\n\nSome text with <kbd>Ctrl</kbd>.\n\n- one\n- two\n")
	b.ResetTimer()
	for range b.N {
		Detect(content)
	}
}

package validate_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlcheck/pkg/validate"
)

func mustValidate(t *testing.T, text string) *validate.Result {
	t.Helper()

	res, err := validate.Validate(context.Background(), text)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func codes(res *validate.Result) []validate.Code {
	out := make([]validate.Code, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func TestValidate_MismatchedNesting(t *testing.T) {
	t.Parallel()

	res := mustValidate(t, "<div><p>Hi</div></p>")

	assert.False(t, res.OK)
	require.Len(t, res.Diagnostics, 1)

	diag := res.Diagnostics[0]
	assert.Equal(t, validate.CodeHierarchyMismatch, diag.Code)
	assert.Contains(t, diag.Message, "</p>")
	assert.Contains(t, diag.Message, "</div>")
	assert.Contains(t, diag.Message, "paired")
	assert.Equal(t, 1, diag.Pos.Line)
	assert.Equal(t, 11, diag.Pos.Column)
	assert.Equal(t, "<p>Hi</div>", diag.Excerpt)
}

func TestValidate_WellFormed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{"simple paired", "<div>Hi</div>"},
		{"void without close", "<img>"},
		{"void self-closed", `<img src="a.png"/>`},
		{"void closing tolerated", "<br></br>"},
		{"paired self-closed", "<div/><p />"},
		{"doctype and comment", "<!DOCTYPE html><!-- <div> --><html></html>"},
		{"lowercase doctype", "<!doctype html><p>x</p>"},
		{"attributes", `<p class="a" id='b' data-x = "1" hidden>t</p>`},
		{"escaped quote in value", `<a href="x\"y">t</a>`},
		{"bare quoted value", `<a "x">t</a>`},
		{"multiline tag", "<p\n  class=\"x\"\n>t</p>"},
		{"closing tag attributes tolerated", `<p>t</p class="x">`},
		{"case-insensitive match", "<div>t</DIV>" + "<p></p>"},
		{"script string literal", `<script>var x = "</div>";</script>`},
		{"style with quotes", `<style>p > a { content: '</p>'; }</style>`},
		{"script with less-than", "<script>if (a < b) { x(); }</script>"},
		{"unmatched quote in script", "<script>don't</script>"},
		{"nested document", "<html><head><title>T</title></head>" +
			"<body><ul><li>a</li><li>b<br>c</li></ul><table><tr><td>1</td></tr></table></body></html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := mustValidate(t, tt.text)
			if strings.Contains(tt.text, "DIV") {
				// DIV is outside the case-sensitive vocabulary; only the
				// advisory is expected.
				assert.Equal(t, []validate.Code{validate.CodeUnknownTagAdvisory}, codes(res))
				return
			}
			assert.True(t, res.OK, "diagnostics: %+v", res.Diagnostics)
			assert.Empty(t, res.Diagnostics)
		})
	}
}

func TestValidate_LexicalDefects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		want   validate.Code
		substr string
	}{
		{"tag at end of input", "text <", validate.CodeTagAtEndOfInput, "last character"},
		{"truncated tag", "<div", validate.CodeUnterminatedTagName, "never followed"},
		{"truncated closing tag", "<p>x</p", validate.CodeUnterminatedTagName, ""},
		{"empty tag name", "<>", validate.CodeEmptyTagName, ""},
		{"whitespace after <", "a < b", validate.CodeInvalidTagNameStart, "&lt;"},
		{"quote after <", `<"a">`, validate.CodeInvalidTagNameStart, ""},
		{"digit after <", "<1a>", validate.CodeInvalidTagStart, "'1'"},
		{"bad char in name", "<p#x>", validate.CodeInvalidTagNameChar, "'#'"},
		{"empty closing tag", "</>", validate.CodeEmptyClosingTagName, ""},
		{"space after </", "</ div>", validate.CodeInvalidClosingTagStart, ""},
		{"digit after </", "</1>", validate.CodeInvalidClosingTagStart, ""},
		{"unterminated comment", "<!-- x", validate.CodeUnterminatedComment, "-->"},
		{"malformed comment", "<!x>", validate.CodeMalformedCommentStart, ""},
		{"single dash comment", "<!-x->", validate.CodeMalformedCommentStart, ""},
		{"unterminated doctype", "<!DOCTYPE html", validate.CodeUnterminatedDoctype, ""},
		{"bad attribute start", "<div #a>", validate.CodeInvalidAttributeStart, "'#'"},
		{"assign without name", `<div ="a">`, validate.CodeInvalidAttributeStart, ""},
		{"bad attribute char", "<div a#b>", validate.CodeInvalidAttributeNameChar, `"a"`},
		{"unquoted value", "<div src=unquoted>", validate.CodeUnquotedOrMissingAttributeValue, `"src"`},
		{"missing value", "<div a=>", validate.CodeUnquotedOrMissingAttributeValue, "no value"},
		{"missing value at eof", "<div a=", validate.CodeUnquotedOrMissingAttributeValue, "no value"},
		{"unterminated value", `<div a="x>`, validate.CodeUnterminatedAttributeValue, "never closed"},
		{"escape at end of value", `<div a="x\`, validate.CodeUnterminatedAttributeValue, ""},
		{"open attribute at eof", "<div class", validate.CodeUnterminatedTagDueToOpenAttribute, `"class"`},
		{"attribute then space at eof", "<div class ", validate.CodeUnterminatedTagDueToOpenAttribute, ""},
		{"bad self close", "<div a / x>", validate.CodeInvalidSelfClose, "'x'"},
		{"value then eof", `<div a="x" `, validate.CodeUnterminatedTag, ""},
		{"self close then eof", "<br /", validate.CodeUnterminatedTag, ""},
		{"closing tag self-closed", "<p></p />", validate.CodeInvalidAttributeStart, "cannot be self-closed"},
		{"closing tag slash in name", "<p></p/>", validate.CodeInvalidTagNameChar, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := mustValidate(t, tt.text)
			assert.False(t, res.OK)
			require.Len(t, res.Diagnostics, 1, "diagnostics: %+v", res.Diagnostics)

			diag := res.Diagnostics[0]
			assert.Equal(t, tt.want, diag.Code)
			assert.Equal(t, tt.want.Title(), diag.Title)
			assert.True(t, strings.HasPrefix(diag.Excerpt, "<"), "excerpt %q", diag.Excerpt)
			if tt.substr != "" {
				assert.Contains(t, diag.Message, tt.substr)
			}
		})
	}
}

func TestValidate_TruncatedTagPointsAtOpen(t *testing.T) {
	t.Parallel()

	res := mustValidate(t, "<p>ok</p>\n  <div")
	require.Len(t, res.Diagnostics, 1)

	diag := res.Diagnostics[0]
	assert.Equal(t, validate.CodeUnterminatedTagName, diag.Code)
	assert.Equal(t, validate.Position{Line: 2, Column: 3, Offset: 12}, diag.Pos)
	assert.Equal(t, "<div", diag.Excerpt)
}

func TestValidate_FailFast(t *testing.T) {
	t.Parallel()

	res := mustValidate(t, `<div a=b><p x=y></p>`)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, validate.CodeUnquotedOrMissingAttributeValue, res.Diagnostics[0].Code)
	assert.Equal(t, 0, res.Tags)

	res = mustValidate(t, "<div></p><span></div>")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, validate.CodeHierarchyMismatch, res.Diagnostics[0].Code)
}

func TestValidate_HierarchyMismatchVariants(t *testing.T) {
	t.Parallel()

	t.Run("closing with empty stack", func(t *testing.T) {
		t.Parallel()

		res := mustValidate(t, "text</div>")
		require.Len(t, res.Diagnostics, 1)
		assert.Equal(t, validate.CodeHierarchyMismatch, res.Diagnostics[0].Code)
		assert.Contains(t, res.Diagnostics[0].Message, "no open element")
		assert.Equal(t, "</div>", res.Diagnostics[0].Excerpt)
	})

	t.Run("unknown element self-closed", func(t *testing.T) {
		t.Parallel()

		res := mustValidate(t, "<div><foo/></div>")
		require.Len(t, res.Diagnostics, 2)
		assert.Equal(t, validate.CodeHierarchyMismatch, res.Diagnostics[0].Code)
		assert.Contains(t, res.Diagnostics[0].Message, "self-closing")
		assert.Contains(t, res.Diagnostics[0].Message, "<div>")
		assert.Equal(t, validate.CodeUnknownTagAdvisory, res.Diagnostics[1].Code)
	})

	t.Run("unknown closer against paired opener", func(t *testing.T) {
		t.Parallel()

		res := mustValidate(t, "<section>\n</sectoin>")
		require.Len(t, res.Diagnostics, 2)
		assert.Equal(t, validate.CodeHierarchyMismatch, res.Diagnostics[0].Code)
		assert.Contains(t, res.Diagnostics[0].Message, "expected </section>")
		assert.Equal(t, 2, res.Diagnostics[0].Pos.Line)
		assert.Equal(t, "<section>\n</sectoin>", res.Diagnostics[0].Excerpt)
	})
}

func TestValidate_UnterminatedHierarchy(t *testing.T) {
	t.Parallel()

	res := mustValidate(t, "<div>\n<p>text")
	require.Len(t, res.Diagnostics, 1)

	diag := res.Diagnostics[0]
	assert.Equal(t, validate.CodeUnterminatedHierarchy, diag.Code)
	assert.Equal(t, 2, diag.Pos.Line, "anchored at the innermost unclosed element")
	assert.Equal(t, 1, diag.Pos.Column)
	assert.Contains(t, diag.Message, "<p> lacks </p>")
	assert.Contains(t, diag.Message, "<div> lacks </div>")
	assert.Less(t, strings.Index(diag.Message, "<p>"), strings.Index(diag.Message, "<div>"))
}

func TestValidate_UnclosedScript(t *testing.T) {
	t.Parallel()

	res := mustValidate(t, `<script>var s = "<p>";`)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, validate.CodeUnterminatedHierarchy, res.Diagnostics[0].Code)
	assert.Contains(t, res.Diagnostics[0].Message, "<script>")
}

func TestValidate_RawTextClosingMismatch(t *testing.T) {
	t.Parallel()

	res := mustValidate(t, "<script>x</div></script>")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, validate.CodeHierarchyMismatch, res.Diagnostics[0].Code)
	assert.Contains(t, res.Diagnostics[0].Message, "expected </script>")
}

func TestValidate_SelfClosedScriptIsNotRawText(t *testing.T) {
	t.Parallel()

	res := mustValidate(t, `<script src="a.js"/><p "x></p>`)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, validate.CodeUnterminatedAttributeValue, res.Diagnostics[0].Code)
}

func TestValidate_UnknownTags(t *testing.T) {
	t.Parallel()

	res := mustValidate(t, "<foo>text</foo>")

	assert.False(t, res.OK)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, validate.CodeUnknownTagAdvisory, res.Diagnostics[0].Code)

	require.Len(t, res.Unknown, 2)
	assert.Equal(t, "foo", res.Unknown[0].Name)
	assert.True(t, res.Unknown[0].Opening)
	assert.Equal(t, "foo", res.Unknown[1].Name)
	assert.False(t, res.Unknown[1].Opening)
	assert.Equal(t, 10, res.Unknown[1].Pos.Column)
}

func TestValidate_UnknownTagsRecordedAtNameEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		lexical validate.Code
		opening bool
	}{
		{"unquoted value", "<foo a=b>", validate.CodeUnquotedOrMissingAttributeValue, true},
		{"unterminated tag", "<foo a=\"b\"", validate.CodeUnterminatedTag, true},
		{"bad char after name", "<foo#>", validate.CodeInvalidTagNameChar, true},
		{"bad self close", "<foo / x>", validate.CodeInvalidSelfClose, true},
		{"closing tag bad char", "</foo#>", validate.CodeInvalidTagNameChar, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := mustValidate(t, tt.text)
			assert.Equal(t, []validate.Code{tt.lexical, validate.CodeUnknownTagAdvisory}, codes(res))

			require.Len(t, res.Unknown, 1)
			assert.Equal(t, "foo", res.Unknown[0].Name)
			assert.Equal(t, tt.opening, res.Unknown[0].Opening)
			assert.Equal(t, 1, res.Unknown[0].Pos.Column)
		})
	}
}

func TestValidate_UnknownSelfClosed(t *testing.T) {
	t.Parallel()

	res := mustValidate(t, "<p><foo/></p>")
	require.Len(t, res.Unknown, 1)
	assert.Equal(t, "foo", res.Unknown[0].Name)
	assert.False(t, res.Unknown[0].Opening)
	assert.Equal(t, 4, res.Unknown[0].Pos.Column)
}

func TestValidate_AggregatesComeLastInOrder(t *testing.T) {
	t.Parallel()

	res := mustValidate(t, "<div><foo><span>x</span>")
	assert.Equal(t, []validate.Code{
		validate.CodeUnterminatedHierarchy,
		validate.CodeUnknownTagAdvisory,
	}, codes(res))

	assert.NotContains(t, res.Diagnostics[0].Message, "<foo>")
	assert.Equal(t, 1, res.Diagnostics[0].Pos.Column)
}

func TestValidate_UnknownAdvisoryAfterFailure(t *testing.T) {
	t.Parallel()

	res := mustValidate(t, "<foo><div></p>")
	assert.Equal(t, []validate.Code{
		validate.CodeHierarchyMismatch,
		validate.CodeUnknownTagAdvisory,
	}, codes(res))
}

func TestValidate_EmptyDocument(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "   ", "\n\t\r\n"} {
		res, err := validate.Validate(context.Background(), text)
		require.ErrorIs(t, err, validate.ErrEmptyDocument)
		assert.Nil(t, res)
	}
}

func TestValidate_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := validate.Validate(ctx, "<div></div>")
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestValidate_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<div><p>Hi</div></p>",
		"<foo>text</foo>",
		"<div>\n<p>",
		`<script>var x = "</div>";</script>`,
	}

	for _, text := range inputs {
		first := mustValidate(t, text)
		second := mustValidate(t, text)
		assert.Equal(t, first, second)
	}
}

func TestValidate_Concurrent(t *testing.T) {
	t.Parallel()

	v := validate.New(nil)
	inputs := []string{
		"<div><p>Hi</div></p>",
		"<div>Hi</div>",
		"<foo>x</foo>",
		"<div",
	}
	want := make([]*validate.Result, len(inputs))
	for i, text := range inputs {
		res, err := v.Validate(context.Background(), text)
		require.NoError(t, err)
		want[i] = res
	}

	var wg sync.WaitGroup
	for range 8 {
		for i, text := range inputs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := v.Validate(context.Background(), text)
				assert.NoError(t, err)
				assert.Equal(t, want[i], res)
			}()
		}
	}
	wg.Wait()
}

func TestValidate_LineEndings(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"<div>\r\n<p>\r\n</div>", "<div>\r<p>\r</div>"} {
		res := mustValidate(t, text)
		require.Len(t, res.Diagnostics, 1)
		assert.Equal(t, 3, res.Diagnostics[0].Pos.Line)
		assert.Equal(t, 1, res.Diagnostics[0].Pos.Column)
	}
}

// TestValidate_PositionRoundTrip checks that every diagnostic's line and
// column address the character that triggered it.
func TestValidate_PositionRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<div><p>Hi</div></p>",
		"héllo wörld\n<p>ü</p>\n  <div",
		"<ul>\r\n  <li>ünïcode</li>\r\n  <li a=b></li>\r\n</ul>",
		"<p>\n\t<span>x</span>\n\t<em>",
		"日本語 <b>x</b> <foo>y</foo>",
		"<div>\n\n   </span>",
		"<a href='x\n\ny' title=\"z>",
	}

	for _, text := range inputs {
		norm := validate.Normalize(text)
		lines := strings.Split(norm, "\n")

		res := mustValidate(t, text)
		require.NotEmpty(t, res.Diagnostics, "input %q", text)

		for _, diag := range res.Diagnostics {
			require.GreaterOrEqual(t, diag.Pos.Line, 1)
			require.LessOrEqual(t, diag.Pos.Line, len(lines))

			line := []rune(lines[diag.Pos.Line-1])
			require.LessOrEqual(t, diag.Pos.Column, len(line), "diag %+v", diag)
			assert.Equal(t, '<', line[diag.Pos.Column-1], "input %q diag %s", text, diag.Code)
			assert.True(t, strings.HasPrefix(norm[diag.Pos.Offset:], "<"), "offset of %s", diag.Code)
		}
	}
}

func TestValidate_LexicalEndOnOffendingCharacter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		want   rune
		column int
	}{
		{"bad attribute char", "<div a#b>", '#', 7},
		{"unquoted value", "<p>\n  <div src=x>", 'x', 12},
		{"bad self close", "<br / q>", 'q', 7},
		{"bad name char", "日本 <p%>", '%', 6},
		{"closing tag start", "<p></ p>", ' ', 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := mustValidate(t, tt.text)
			require.Len(t, res.Diagnostics, 1)
			diag := res.Diagnostics[0]

			norm := validate.Normalize(tt.text)
			assert.True(t, strings.HasPrefix(norm[diag.Pos.Offset:], "<"))
			assert.Equal(t, string(tt.want), norm[diag.End.Offset:diag.End.Offset+len(string(tt.want))])
			assert.Equal(t, tt.column, diag.End.Column)
			assert.Less(t, diag.Pos.Offset, diag.End.Offset)
		})
	}
}

func TestValidate_CustomVocabulary(t *testing.T) {
	t.Parallel()

	vocab := validate.NewVocabulary([]string{"main", "template"}, []string{"hr-lite"})
	v := validate.New(vocab)

	res, err := v.Validate(context.Background(), "<main><template>x</template><hr-lite></main>")
	require.NoError(t, err)
	assert.True(t, res.OK, "diagnostics: %+v", res.Diagnostics)
	assert.Same(t, vocab, v.Vocabulary())
}

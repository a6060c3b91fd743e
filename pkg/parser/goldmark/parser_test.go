package goldmark

import (
	"bytes"
	"context"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to commonmark", "", FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantFlavor, New(tt.flavor).Flavor())
		})
	}
}

func TestParser_Mask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		want     string
		wantHTML bool
	}{
		{
			name:     "html block",
			content:  "# Title\n\n<div class=\"x\">\n<p>hi</p>\n</div>\n",
			want:     "       \n\n<div class=\"x\">\n<p>hi</p>\n</div>\n",
			wantHTML: true,
		},
		{
			name:     "inline html",
			content:  "Press <kbd>Ctrl</kbd> now\n",
			want:     "      <kbd>    </kbd>    \n",
			wantHTML: true,
		},
		{
			name:    "code span is not html",
			content: "Use `<div>` here\n",
			want:    "                \n",
		},
		{
			name:    "fenced code is not html",
			content: "```html\n<div>\n```\n",
			want:    "       \n     \n   \n",
		},
		{
			name:    "plain markdown",
			content: "- one\n- two\n",
			want:    "     \n     \n",
		},
	}

	parser := New(FlavorGFM)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			masked, err := parser.Mask(context.Background(), []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(masked.Content))
			assert.Equal(t, tt.wantHTML, masked.HasHTML())
		})
	}
}

func TestParser_Mask_KeepsRuneGeometry(t *testing.T) {
	t.Parallel()

	content := []byte("Ünïcødé → 😀 <b>bold</b>\n")
	masked, err := New(FlavorCommonMark).Mask(context.Background(), content)
	require.NoError(t, err)

	assert.Len(t, masked.Content, len(content))
	assert.Equal(t, utf8.RuneCount(content), utf8.RuneCount(masked.Content))

	start := bytes.Index(content, []byte("<b>"))
	assert.Equal(t, start, bytes.Index(masked.Content, []byte("<b>")))
	assert.NotContains(t, string(masked.Content), "Ü")
}

func TestParser_Mask_Segments(t *testing.T) {
	t.Parallel()

	content := []byte("a <i>b</i>\n\n<section>\n</section>\n")
	masked, err := New(FlavorCommonMark).Mask(context.Background(), content)
	require.NoError(t, err)

	require.NotEmpty(t, masked.Segments)
	for i, seg := range masked.Segments {
		assert.Positive(t, seg.Len())
		assert.Equal(t, byte('<'), content[seg.Start])
		if i > 0 {
			assert.GreaterOrEqual(t, seg.Start, masked.Segments[i-1].Stop)
		}
	}
	assert.False(t, masked.Segments[0].Block)
	assert.True(t, masked.Segments[len(masked.Segments)-1].Block)
}

func TestParser_Mask_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	masked, err := New(FlavorCommonMark).Mask(ctx, []byte("<p>x</p>\n"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, masked)
}

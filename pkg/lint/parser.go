package lint

import (
	"context"

	"github.com/yaklabco/htmlcheck/pkg/parser/goldmark"
)

// MarkdownParser reduces Markdown to the HTML embedded in it.
//
// Implementations must return content of the same length, line structure
// and rune count as the input, so that positions found in the masked text
// are positions in the original. They must be safe for concurrent use.
type MarkdownParser interface {
	Mask(ctx context.Context, content []byte) (*goldmark.Masked, error)
}

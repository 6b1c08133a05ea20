// Package render turns model output into HTML and formats response statistics.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/openrag/llm-playground/internal/playground"
)

// markdown renders GFM with highlighted code blocks. Raw HTML in model output
// is escaped rather than passed through.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
)

// HTML converts markdown text to an HTML fragment.
func HTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

// Stats formats the statistics line shown under a response, e.g.
// "Inference time: 1.23s | Tokens used: 5 | Tokens/s: 4.07".
func Stats(resp *playground.Response) string {
	tps := playground.UnknownTokens
	if v, ok := resp.TokensPerSecond(); ok {
		tps = fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("Inference time: %.2fs | Tokens used: %s | Tokens/s: %s",
		resp.Duration.Seconds(), resp.Tokens, tps)
}

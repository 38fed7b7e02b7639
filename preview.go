package nb2md

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// previewTemplate wraps the converted body in a standalone HTML5 document
// so embedded data URIs can be checked in a browser without a Jekyll build.
// Styling mirrors what the target theme does to images and code blocks.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Preview: %s</title>
<style>
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif;
  max-width: 900px;
  margin: 40px auto;
  padding: 20px;
  line-height: 1.6;
}
img {
  max-width: 100%%;
  height: auto;
  border: 1px solid #ddd;
  margin: 20px 0;
}
pre {
  background: #f6f8fa;
  padding: 16px;
  overflow: auto;
  border-radius: 6px;
}
code {
  font-family: 'Courier New', monospace;
}
</style>
</head>
<body>
<h1>Preview: %s</h1>
<hr/>
%s
</body>
</html>
`

// newPreviewMarkdown builds the goldmark instance used for previews.
// WithUnsafe is required: rendered notebooks carry raw HTML outputs
// (e.g. pandas tables) that must survive into the preview. The preview is
// a local debugging artifact, not a published page.
func newPreviewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(false),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)
}

// BuildPreview converts rendered Markdown into a standalone HTML preview
// titled with the document name. Supports context cancellation via the
// goroutine + select pattern since goldmark doesn't take a context.
func BuildPreview(ctx context.Context, markdown, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := newPreviewMarkdown().Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrPreviewRender, err)}
			return
		}
		done <- result{html: fmt.Sprintf(previewTemplate, name, name, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

package changelog

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

const (
	pageOpen = `<article class="lib-article row columns" id="top">
<section class="lib-section">
<div data-changelog-view>
`
	pageClose = `</div>
</section>
</article>
`
)

// RenderPage converts the Markdown changelog to HTML and wraps it in the
// changelog view markup.
func RenderPage(markdown []byte) ([]byte, error) {
	md := goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))

	var body bytes.Buffer
	if err := md.Convert(markdown, &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	var page bytes.Buffer
	page.Grow(len(pageOpen) + body.Len() + len(pageClose))
	page.WriteString(pageOpen)
	page.Write(body.Bytes())
	page.WriteString(pageClose)
	return page.Bytes(), nil
}

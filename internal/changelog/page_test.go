package changelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPage(t *testing.T) {
	t.Parallel()

	md, err := RenderMarkdownString(sampleSections(), RenderOptions{Link: "https://github.com/o/r"})
	require.NoError(t, err)

	page, err := RenderPage([]byte(md))
	require.NoError(t, err)
	html := string(page)

	assert.True(t, strings.HasPrefix(html, `<article class="lib-article row columns" id="top">`))
	assert.Contains(t, html, `<section class="lib-section">`)
	assert.Contains(t, html, `<div data-changelog-view>`)
	assert.Contains(t, html, "<h2>Changelog</h2>")
	assert.Contains(t, html, "<h3>1.1.0 (2024-02-10)</h3>")
	assert.Contains(t, html, `<a href="https://github.com/o/r/commit/t1">[GIT]</a>`)
	assert.True(t, strings.HasSuffix(html, "</div>\n</section>\n</article>\n"))
}

func TestRenderPage_KeepsEscapedEntities(t *testing.T) {
	t.Parallel()

	page, err := RenderPage([]byte("- Fix &amp; tweak &#91;draft\n"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<li>Fix &amp; tweak [draft</li>")
}

package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/bookpages/internal/config"
	"git.home.luguber.info/inful/bookpages/internal/site"
)

func TestRenderHomeCards(t *testing.T) {
	tree := fixtureTree()
	page := renderHome(tree, config.SiteConfig{Title: "My Book", Tagline: "Read me.", AssetBase: "/repo"})

	assert.Contains(t, page, "<title>My Book</title>")
	assert.Contains(t, page, "<h1>My Book</h1>")
	assert.Contains(t, page, `<p class="tagline">Read me.</p>`)
	assert.Contains(t, page, "<h3>1 Guide</h3>")
	assert.Contains(t, page, `<a href="/repo/pages/1-guide/index.html" class="button">Open Section</a>`)
	assert.Contains(t, page, "<h3>2 Extras</h3>")
	assert.Contains(t, page, `<a href="/repo/pages/2-extras/index.html" class="button">Open Section</a>`)
}

func TestRenderHomeEscapesSiteStrings(t *testing.T) {
	page := renderHome(&site.Tree{}, config.SiteConfig{Title: "A & B", Tagline: "<i>t</i>"})
	assert.Contains(t, page, "<title>A &amp; B</title>")
	assert.Contains(t, page, "&lt;i&gt;t&lt;/i&gt;")
}

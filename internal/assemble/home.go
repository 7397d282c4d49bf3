package assemble

import (
	"html"
	"strings"

	"git.home.luguber.info/inful/bookpages/internal/config"
	"git.home.luguber.info/inful/bookpages/internal/site"
)

// renderHome builds the landing page: one navigable card per section.
func renderHome(tree *site.Tree, siteCfg config.SiteConfig) string {
	base := siteCfg.AssetBase
	cards := make([]string, 0, len(tree.Sections))
	for _, sect := range tree.Sections {
		link := base + "/pages/" + sect.Slug + "/index.html"
		cards = append(cards, strings.Join([]string{
			`    <div class="card">`,
			`      <h3>` + html.EscapeString(sect.Label) + `</h3>`,
			`      <div class="buttons">`,
			`        <a href="` + link + `" class="button">Open Section</a>`,
			`      </div>`,
			`    </div>`,
		}, "\n"))
	}

	title := html.EscapeString(siteCfg.Title)
	tagline := html.EscapeString(siteCfg.Tagline)

	return `<!DOCTYPE html>
<html lang="en">
<head>
  <script>
    (function(){
      try { var m = localStorage.getItem('theme'); if (m === 'light' || m === 'dark') document.documentElement.setAttribute('data-theme', m); } catch (e) {}
    })();
  </script>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>` + title + `</title>
  <link rel="stylesheet" href="` + base + `/assets/css/style.css" />
  <script defer src="` + base + `/assets/js/site-nav.js"></script>
</head>
<body>
  <button id="navToggle" class="hamburger" aria-label="Toggle navigation" aria-expanded="false">&#8801;</button>
  <button id="themeToggle" class="theme-toggle" aria-label="Toggle theme" title="Toggle light/dark">&#9678;</button>
  <div class="font-slider" aria-label="Font size">
    <input id="fontSize" type="range" min="90" max="220" step="5" />
  </div>
  <div id="backdrop" class="backdrop" hidden></div>
  <div class="layout">
    <aside id="sidebar" class="sidebar"></aside>
    <main class="content">
  <div class="container">
    <h1>` + title + `</h1>
    <p class="tagline">` + tagline + `</p>

` + strings.Join(cards, "\n") + `

  </div>
    </main>
  </div>
</body>
</html>
`
}

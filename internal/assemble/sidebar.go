package assemble

import (
	"html"
	"strings"

	"git.home.luguber.info/inful/bookpages/internal/site"
)

// renderSidebar builds the navigation partial: a Home link followed by one
// entry per section with its root pages and one level of subsections.
func renderSidebar(tree *site.Tree, assetBase string) string {
	lines := []string{
		`<div class="card">`,
		`  <nav>`,
		`    <a href="` + assetBase + `/index.html" data-match="/index.html">Home</a>`,
		`    <hr style="border:none;border-top:1px solid var(--border);margin:8px 0;">`,
		`    <strong style="display:block;padding:4px 10px;color:var(--muted)">Sections</strong>`,
	}

	for _, sect := range tree.Sections {
		first := "/pages/" + sect.Slug + "/index.html"
		lines = append(lines, `    <a href="`+assetBase+first+`" data-match="/pages/`+sect.Slug+`/">`+html.EscapeString(sect.Label)+`</a>`)

		if len(sect.RootPages) > 0 {
			lines = append(lines, `    <ul style="margin:6px 0 10px 16px; padding:0; list-style: none;">`)
			for _, p := range sect.RootPages {
				lines = append(lines, `      <li><a href="`+assetBase+p.Path+`">`+html.EscapeString(p.Title)+`</a></li>`)
			}
			lines = append(lines, `    </ul>`)
		}

		if len(sect.Children) > 0 {
			lines = append(lines, `    <ul style="margin:6px 0 10px 16px; padding:0; list-style: none;">`)
			for _, child := range sect.Children {
				childHref := "/pages/" + sect.Slug + "/" + child.Slug + "/index.html"
				lines = append(lines, `      <li><a href="`+assetBase+childHref+`">`+html.EscapeString(child.Label)+`</a>`)
				if len(child.Pages) > 0 {
					lines = append(lines, `        <ul style="margin:4px 0 6px 14px; padding:0; list-style: none;">`)
					for _, p := range child.Pages {
						lines = append(lines, `          <li><a href="`+assetBase+p.Path+`">`+html.EscapeString(p.Title)+`</a></li>`)
					}
					lines = append(lines, `        </ul>`)
				}
				lines = append(lines, `      </li>`)
			}
			lines = append(lines, `    </ul>`)
		}
	}

	lines = append(lines, `  </nav>`, `</div>`)
	return strings.Join(lines, "\n")
}

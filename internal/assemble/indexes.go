package assemble

import (
	"html"
	"path"
	"strings"

	"git.home.luguber.info/inful/bookpages/internal/site"
	"git.home.luguber.info/inful/bookpages/internal/slug"
)

// renderIndexBody builds the body of a directory index page: an optional
// Subsections list, an optional Pages list, or a placeholder when the
// directory is empty. Both lists are joined with a visible rule.
func renderIndexBody(tree *site.Tree, sect site.Section, dir, assetBase string) string {
	var parts []string

	if children := childDirs(sect, dir); len(children) > 0 {
		items := make([]string, 0, len(children))
		for _, child := range children {
			href := assetBase + "/pages/" + slugifyPath(child) + "/index.html"
			items = append(items, `<li><a href="`+href+`">`+html.EscapeString(path.Base(child))+`</a></li>`)
		}
		parts = append(parts, "<h2>Subsections</h2>\n<ul>\n"+strings.Join(items, "\n")+"\n</ul>")
	}

	if pages := tree.PagesByDir[dir]; len(pages) > 0 {
		items := make([]string, 0, len(pages))
		for _, p := range pages {
			items = append(items, `<li><a href="`+assetBase+p.Path+`">`+html.EscapeString(p.Title)+`</a></li>`)
		}
		parts = append(parts, "<h2>Pages</h2>\n<ul>\n"+strings.Join(items, "\n")+"\n</ul>")
	}

	if len(parts) == 0 {
		return "<p>Coming soon.</p>"
	}
	return strings.Join(parts, "\n<hr>\n")
}

// childDirs returns the immediate subdirectories of dir within the section,
// preserving the section's sorted walk order.
func childDirs(sect site.Section, dir string) []string {
	var children []string
	for _, d := range sect.Dirs {
		if path.Dir(d) == dir {
			children = append(children, d)
		}
	}
	return children
}

// slugifyPath slugs each segment of a slash-separated relative path.
func slugifyPath(rel string) string {
	segs := strings.Split(rel, "/")
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		out = append(out, slug.Slugify(s))
	}
	return strings.Join(out, "/")
}

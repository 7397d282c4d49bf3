package assemble

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/bookpages/internal/config"
	"git.home.luguber.info/inful/bookpages/internal/logfields"
	"git.home.luguber.info/inful/bookpages/internal/manifest"
	"git.home.luguber.info/inful/bookpages/internal/markup"
	"git.home.luguber.info/inful/bookpages/internal/site"
	"git.home.luguber.info/inful/bookpages/internal/version"
)

// Writer turns a site tree into the on-disk site.
type Writer struct {
	cfg *config.Config
	tpl *Template
}

// NewWriter creates a site writer for the given configuration and template.
func NewWriter(cfg *config.Config, tpl *Template) *Writer {
	return &Writer{cfg: cfg, tpl: tpl}
}

// WriteSite wipes and recreates the output, renders every document, writes
// per-directory indexes, the manifest, build metadata, the sidebar partial
// and the home page. Any error is fatal: partial output is never valid.
func (w *Writer) WriteSite(tree *site.Tree) (*manifest.BuildInfo, error) {
	start := time.Now()
	pagesDir := w.cfg.PagesDir()
	assetsDir := w.cfg.AssetsDir()

	// Full rebuild: no stale artifacts survive.
	if err := os.RemoveAll(pagesDir); err != nil {
		return nil, fmt.Errorf("clean output directory: %w", err)
	}
	if err := os.MkdirAll(pagesDir, 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(assetsDir, "partials"), 0o750); err != nil {
		return nil, fmt.Errorf("create partials directory: %w", err)
	}

	for _, sect := range tree.Sections {
		for _, doc := range sect.Docs {
			if err := w.writeDocument(tree, doc); err != nil {
				return nil, err
			}
		}
		if err := w.writeIndexes(tree, sect); err != nil {
			return nil, err
		}
	}

	m := manifest.FromTree(tree)
	data, err := m.ToJSON()
	if err != nil {
		return nil, err
	}
	if err := writeFile(filepath.Join(assetsDir, "site.json"), data); err != nil {
		return nil, err
	}

	info := &manifest.BuildInfo{
		ID:        version.NewBuildID(),
		Builder:   version.Builder,
		Version:   version.Version,
		BuiltAt:   time.Now().UTC(),
		Source:    tree.Root,
		Output:    pagesDir,
		AssetBase: w.cfg.Site.AssetBase,
		Commit:    version.ResolveCommit(tree.Root),
		Counts:    manifest.Counts{Sections: len(m), Pages: m.PageCount()},
	}
	infoData, err := info.ToJSON()
	if err != nil {
		return nil, err
	}
	if err := writeFile(filepath.Join(assetsDir, "build-info.json"), infoData); err != nil {
		return nil, err
	}

	sidebar := renderSidebar(tree, w.cfg.Site.AssetBase)
	if err := writeFile(filepath.Join(assetsDir, "partials", "sidebar.html"), []byte(sidebar)); err != nil {
		return nil, err
	}

	home := renderHome(tree, w.cfg.Site)
	if err := writeFile(w.cfg.HomePath(), []byte(home)); err != nil {
		return nil, err
	}

	slog.Info("Site written",
		slog.Int("sections", info.Counts.Sections),
		slog.Int("pages", info.Counts.Pages),
		logfields.Output(pagesDir),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return info, nil
}

// writeDocument renders one source document into its output page.
func (w *Writer) writeDocument(tree *site.Tree, doc site.Document) error {
	raw, err := os.ReadFile(doc.SourcePath) // #nosec G304 - paths come from the walked book tree
	if err != nil {
		return fmt.Errorf("read document %s: %w", doc.RelPath, err)
	}

	body := markup.StripLeadingTitle(string(raw), doc.Title, doc.Label)
	content := markup.RenderDocument(body, markup.Context{
		Dir:       doc.Dir,
		BookRoot:  tree.Root,
		AssetBase: w.cfg.Site.AssetBase,
		MediaRoot: filepath.Join(w.cfg.AssetsDir(), "media"),
	})

	page := w.tpl.Render(w.cfg.Site.AssetBase, doc.Title, content)
	outPath := filepath.Join(w.cfg.PagesDir(), filepath.FromSlash(doc.OutRel))
	if err := writeFile(outPath, []byte(page)); err != nil {
		return err
	}
	slog.Info("Rendered page", logfields.File(doc.RelPath), logfields.Path(outPath))
	return nil
}

// writeIndexes emits an index.html for every directory in the section,
// including empty ones, so each is navigable.
func (w *Writer) writeIndexes(tree *site.Tree, sect site.Section) error {
	for _, dir := range sect.Dirs {
		body := renderIndexBody(tree, sect, dir, w.cfg.Site.AssetBase)
		title := path.Base(dir)

		outDir := filepath.Join(w.cfg.PagesDir(), filepath.FromSlash(slugifyPath(dir)))
		if err := os.MkdirAll(outDir, 0o750); err != nil {
			return fmt.Errorf("create index directory: %w", err)
		}
		page := w.tpl.Render(w.cfg.Site.AssetBase, title, body)
		if err := writeFile(filepath.Join(outDir, "index.html"), []byte(page)); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	// #nosec G306 - generated pages are public content
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

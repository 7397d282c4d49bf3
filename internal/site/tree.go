// Package site discovers the book's directory structure and turns it into an
// immutable tree of sections, subsections and documents. Building the tree
// does no rendering and writes nothing; the assemble package maps the tree
// into output files in a separate pass.
package site

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/bookpages/internal/logfields"
	"git.home.luguber.info/inful/bookpages/internal/slug"
)

// Page is the title/URL pair surfaced in the manifest, sidebar and indexes.
type Page struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Document is a source file discovered under the book root.
type Document struct {
	SourcePath string // absolute path on disk
	RelPath    string // slash-separated path relative to the book root
	Dir        string // slash-separated parent directory, "" at the root
	Prefix     string // numeric ordering prefix, "" when absent
	Label      string // filename stem with the prefix removed
	Title      string // prefix + " " + label
	OutRel     string // slugified output path, e.g. "part-one/2-1-utility.html"
	URLPath    string // site URL path, always under /pages/
}

// Page returns the document's manifest entry.
func (d Document) Page() Page { return Page{Title: d.Title, Path: d.URLPath} }

// Subsection is a directory one level inside a section, as shown in the sidebar.
type Subsection struct {
	Label string
	Slug  string
	Dir   string // slash-separated path relative to the book root
	Pages []Page
}

// Section is a top-level grouping. Sections usually correspond to first-level
// directories; a document sitting directly in the book root forms a
// pseudo-section keyed by its filename, mirroring its top-level path component.
type Section struct {
	Label     string
	Slug      string
	Docs      []Document // every document in the section, recursive, reading order
	RootPages []Page     // documents directly inside the section directory
	Children  []Subsection
	Dirs      []string // every path (recursive) needing an index page; the bare label for pseudo-sections
	IsDir     bool     // false for pseudo-sections formed by root-level files
}

// Tree is the complete discovered site structure.
type Tree struct {
	Root       string
	Sections   []Section
	PagesByDir map[string][]Page
}

// Build walks bookRoot and constructs the site tree. Directory iteration is
// sorted throughout so two runs over an identical source tree produce
// identical section order, slugs and URL paths.
func Build(bookRoot string) (*Tree, error) {
	info, err := os.Stat(bookRoot)
	if err != nil {
		return nil, fmt.Errorf("book directory not found: %s: %w", bookRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("book path is not a directory: %s", bookRoot)
	}

	docsBySection, err := discoverDocuments(bookRoot)
	if err != nil {
		return nil, err
	}

	// Seed sections from first-level directories so empty ones still appear.
	names := map[string]bool{}
	entries, err := os.ReadDir(bookRoot)
	if err != nil {
		return nil, fmt.Errorf("read book directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names[e.Name()] = true
		}
	}
	for name := range docsBySection {
		names[name] = true
	}
	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	tree := &Tree{Root: bookRoot, PagesByDir: map[string][]Page{}}
	for _, label := range ordered {
		docs := docsBySection[label]
		sortDocuments(docs)
		for _, d := range docs {
			tree.PagesByDir[d.Dir] = append(tree.PagesByDir[d.Dir], d.Page())
		}

		sect := Section{Label: label, Slug: slug.Slugify(label), Docs: docs}
		sectionDir := filepath.Join(bookRoot, label)
		if fi, statErr := os.Stat(sectionDir); statErr == nil && fi.IsDir() {
			sect.IsDir = true
			sect.RootPages = tree.PagesByDir[label]
			if sect.Children, err = childSubsections(bookRoot, label, tree.PagesByDir); err != nil {
				return nil, err
			}
			if sect.Dirs, err = nestedDirs(bookRoot, label); err != nil {
				return nil, err
			}
		} else {
			// A pseudo-section still needs its index page; the sidebar and
			// home page link to it.
			sect.Dirs = []string{label}
		}
		tree.Sections = append(tree.Sections, sect)
	}

	slog.Debug("Site tree built",
		slog.Int("sections", len(tree.Sections)),
		logfields.Source(bookRoot))
	return tree, nil
}

// discoverDocuments recursively collects markup documents grouped by their
// top-level path component. Hidden files and directories are skipped.
func discoverDocuments(bookRoot string) (map[string][]Document, error) {
	bySection := map[string][]Document{}
	err := filepath.WalkDir(bookRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && p != bookRoot {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".md") {
			return nil
		}
		rel, err := filepath.Rel(bookRoot, p)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", p, err)
		}
		doc := newDocument(p, filepath.ToSlash(rel))
		top := strings.SplitN(doc.RelPath, "/", 2)[0]
		bySection[top] = append(bySection[top], doc)
		slog.Debug("Discovered document", logfields.File(doc.RelPath), logfields.Section(top))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk book directory: %w", err)
	}
	return bySection, nil
}

func newDocument(abs, rel string) Document {
	parts := strings.Split(rel, "/")
	stem := strings.TrimSuffix(parts[len(parts)-1], filepath.Ext(rel))
	prefix, label := slug.SplitNumericLabel(stem)

	outParts := make([]string, 0, len(parts))
	for _, p := range parts[:len(parts)-1] {
		outParts = append(outParts, slug.Slugify(p))
	}
	outParts = append(outParts, slug.Slugify(stem)+".html")
	outRel := path.Join(outParts...)

	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}

	return Document{
		SourcePath: abs,
		RelPath:    rel,
		Dir:        dir,
		Prefix:     prefix,
		Label:      label,
		Title:      slug.Title(prefix, label),
		OutRel:     outRel,
		URLPath:    "/pages/" + outRel,
	}
}

// childSubsections lists the immediate non-hidden subdirectories of a section.
func childSubsections(bookRoot, label string, pagesByDir map[string][]Page) ([]Subsection, error) {
	entries, err := os.ReadDir(filepath.Join(bookRoot, label))
	if err != nil {
		return nil, fmt.Errorf("read section directory %s: %w", label, err)
	}
	var children []Subsection
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		rel := label + "/" + e.Name()
		children = append(children, Subsection{
			Label: e.Name(),
			Slug:  slug.Slugify(e.Name()),
			Dir:   rel,
			Pages: pagesByDir[rel],
		})
	}
	return children, nil
}

// nestedDirs enumerates every non-hidden directory under a section, the
// section directory itself first, so each gets an index page even when empty.
func nestedDirs(bookRoot, label string) ([]string, error) {
	var dirs []string
	root := filepath.Join(bookRoot, label)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != root {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(bookRoot, p)
		if err != nil {
			return err
		}
		dirs = append(dirs, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk section %s: %w", label, err)
	}
	return dirs, nil
}

// sortDocuments orders by relative source path, comparing path segments so
// nesting rather than raw bytes decides order.
func sortDocuments(docs []Document) {
	sort.Slice(docs, func(i, j int) bool {
		return comparePathSegments(docs[i].RelPath, docs[j].RelPath) < 0
	})
}

func comparePathSegments(a, b string) int {
	as, bs := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			if as[i] < bs[i] {
				return -1
			}
			return 1
		}
	}
	return len(as) - len(bs)
}

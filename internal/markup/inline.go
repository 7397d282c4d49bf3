// Package markup renders the book's lightweight markup dialect to HTML.
//
// The dialect is deliberately small: emphasis, code spans, links, images,
// math spans, headings, bullet lists, horizontal rules and raw HTML
// passthrough. It is not CommonMark; malformed input degrades to odd-looking
// HTML rather than an error.
package markup

import (
	"fmt"
	"html"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/bookpages/internal/logfields"
)

// Context carries what the formatter needs to resolve relative asset
// references for a single document.
type Context struct {
	Dir       string // document directory relative to the book root, slash-separated; "" at the root
	BookRoot  string // book source root on disk
	AssetBase string // URL prefix the site is served under; "" when served at /
	MediaRoot string // filesystem root of the media output tree
}

var (
	mathDouble  = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)
	mathSingle  = regexp.MustCompile(`(?s)\$(.+?)\$`)
	mathBracket = regexp.MustCompile(`(?s)\\\[(.+?)\\\]`)
	mathParen   = regexp.MustCompile(`(?s)\\\((.+?)\\\)`)

	// Targets end at the first close-paren; URLs containing literal parentheses
	// are a documented limitation of the dialect.
	imageRef = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkRef  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	codeSpan = regexp.MustCompile("`([^`]+)`")
	boldSpan = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	emphRun  = regexp.MustCompile(`\*+[^*]+\*+`)

	schemeRelative = regexp.MustCompile(`^(?:[a-z]+:)?//`)
)

// RenderInline converts one line or joined paragraph of markup into an HTML
// fragment. Stages run in a fixed order: escape, math protection, images,
// links, code, bold, italic, math restoration. Math spans are replaced with
// opaque numbered tokens up front so no later substitution can touch their
// contents.
func RenderInline(text string, ctx Context) string {
	s := html.EscapeString(text)

	var math []string
	protect := func(re *regexp.Regexp) {
		s = re.ReplaceAllStringFunc(s, func(m string) string {
			math = append(math, m)
			return fmt.Sprintf("@@MATH%d@@", len(math)-1)
		})
	}
	protect(mathDouble)
	protect(mathSingle)
	protect(mathBracket)
	protect(mathParen)

	s = imageRef.ReplaceAllStringFunc(s, func(m string) string {
		g := imageRef.FindStringSubmatch(m)
		return resolveImage(g[1], g[2], ctx)
	})
	s = linkRef.ReplaceAllString(s, `<a href="$2">$1</a>`)
	s = codeSpan.ReplaceAllString(s, `<code>$1</code>`)
	s = boldSpan.ReplaceAllString(s, `<strong>$1</strong>`)
	// An asterisk run converts to <em> only when delimited by exactly one star
	// on each side; leftovers of unbalanced double markers stay verbatim.
	s = emphRun.ReplaceAllStringFunc(s, func(m string) string {
		if strings.HasPrefix(m, "**") || strings.HasSuffix(m, "**") {
			return m
		}
		return "<em>" + m[1:len(m)-1] + "</em>"
	})

	for i, tok := range math {
		s = strings.Replace(s, fmt.Sprintf("@@MATH%d@@", i), tok, 1)
	}
	return s
}

// resolveImage rewrites an image reference. Absolute URLs, root-relative
// paths and data URIs pass through; everything else is treated as relative to
// the document's directory, copied into the media tree and pointed at the
// asset-base media URL. A failed copy leaves a broken link, not a failed build.
func resolveImage(alt, src string, ctx Context) string {
	if isExternal(src) {
		return fmt.Sprintf(`<img src="%s" alt="%s">`, src, alt)
	}

	srcPath := filepath.Join(ctx.BookRoot, filepath.FromSlash(ctx.Dir), filepath.FromSlash(src))
	destPath := filepath.Join(ctx.MediaRoot, filepath.FromSlash(ctx.Dir), filepath.FromSlash(src))
	copyAsset(srcPath, destPath)

	newSrc := ctx.AssetBase + "/assets/media/" + path.Join(ctx.Dir, src)
	return fmt.Sprintf(`<img src="%s" alt="%s">`, newSrc, alt)
}

func isExternal(u string) bool {
	return schemeRelative.MatchString(u) || strings.HasPrefix(u, "data:") || strings.HasPrefix(u, "/")
}

// copyAsset copies a referenced media file into the output tree, best effort.
func copyAsset(src, dest string) {
	if _, err := os.Stat(src); err != nil {
		slog.Debug("Referenced media file not found, skipping copy", logfields.Path(src))
		return
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		slog.Debug("Failed to create media directory", logfields.Path(dest), logfields.Error(err))
		return
	}
	in, err := os.Open(src) // #nosec G304 - src is derived from book content paths
	if err != nil {
		slog.Debug("Failed to open media file", logfields.Path(src), logfields.Error(err))
		return
	}
	defer func() { _ = in.Close() }()
	out, err := os.Create(dest) // #nosec G304 - dest stays under the media root
	if err != nil {
		slog.Debug("Failed to create media file", logfields.Path(dest), logfields.Error(err))
		return
	}
	defer func() { _ = out.Close() }()
	if _, err := io.Copy(out, in); err != nil {
		slog.Debug("Failed to copy media file", logfields.Path(dest), logfields.Error(err))
	}
}

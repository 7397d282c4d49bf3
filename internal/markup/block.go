package markup

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	headingLine = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	ruleLine    = regexp.MustCompile(`^-{3,}\s*$`)
	bulletLine  = regexp.MustCompile(`^([ \t]*)([-*])\s+(.*)$`)
	topHeading  = regexp.MustCompile(`^#\s+(.+)$`)
)

// maxListDepth clamps bullet nesting; deeper indentation folds into the last level.
const maxListDepth = 6

// blockRenderer is a line-driven state machine. It keeps a paragraph buffer of
// unflushed lines and an explicit stack of open list containers.
type blockRenderer struct {
	ctx  Context
	out  []string
	para []string
	list []string
}

// RenderDocument converts a full document of markup into block-level HTML,
// delegating span formatting to RenderInline.
func RenderDocument(text string, ctx Context) string {
	r := &blockRenderer{ctx: ctx}
	for _, raw := range strings.Split(text, "\n") {
		r.line(strings.TrimRight(raw, "\r"))
	}
	r.flushParagraph()
	r.setListDepth(0)
	return strings.Join(r.out, "\n")
}

// line classifies a single input line; first match wins.
func (r *blockRenderer) line(line string) {
	stripped := strings.TrimSpace(line)

	// Raw passthrough for embedded pre-formatted HTML.
	if strings.HasPrefix(stripped, "<") {
		r.flushParagraph()
		r.setListDepth(0)
		r.out = append(r.out, line)
		return
	}
	if stripped == "" {
		r.flushParagraph()
		r.setListDepth(0)
		return
	}
	if m := headingLine.FindStringSubmatch(line); m != nil {
		r.flushParagraph()
		r.setListDepth(0)
		level := len(m[1])
		r.out = append(r.out, fmt.Sprintf("<h%d>%s</h%d>", level, RenderInline(m[2], r.ctx), level))
		return
	}
	if ruleLine.MatchString(line) {
		r.flushParagraph()
		r.setListDepth(0)
		r.out = append(r.out, "<hr>")
		return
	}
	if m := bulletLine.FindStringSubmatch(line); m != nil {
		// A bullet ends any open paragraph but keeps surrounding lists open.
		r.flushParagraph()
		indent := strings.ReplaceAll(m[1], "\t", "    ")
		depth := len(indent) / 2
		if depth > maxListDepth {
			depth = maxListDepth
		}
		r.setListDepth(depth + 1)
		r.out = append(r.out, "<li>"+RenderInline(m[3], r.ctx)+"</li>")
		return
	}
	r.para = append(r.para, line)
}

// flushParagraph joins buffered lines with single spaces so soft-wrapped
// source merges into one paragraph.
func (r *blockRenderer) flushParagraph() {
	if len(r.para) == 0 {
		return
	}
	text := strings.TrimSpace(strings.Join(r.para, " "))
	r.out = append(r.out, "<p>"+RenderInline(text, r.ctx)+"</p>")
	r.para = nil
}

// setListDepth opens or closes <ul> boundaries until the stack holds exactly
// depth open containers.
func (r *blockRenderer) setListDepth(depth int) {
	for len(r.list) < depth {
		r.out = append(r.out, "<ul>")
		r.list = append(r.list, "ul")
	}
	for len(r.list) > depth {
		r.out = append(r.out, "</ul>")
		r.list = r.list[:len(r.list)-1]
	}
}

// StripLeadingTitle removes the document's first line when it is a top-level
// heading that case-insensitively repeats the derived page title or bare
// label, so the title does not render twice.
func StripLeadingTitle(text, title, label string) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return text
	}
	m := topHeading.FindStringSubmatch(strings.TrimRight(lines[0], "\r"))
	if m == nil {
		return text
	}
	first := strings.TrimSpace(m[1])
	if strings.EqualFold(first, title) || strings.EqualFold(first, label) {
		return strings.Join(lines[1:], "\n")
	}
	return text
}

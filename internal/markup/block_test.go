package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func render(t *testing.T, lines ...string) string {
	t.Helper()
	return RenderDocument(strings.Join(lines, "\n"), Context{})
}

func TestParagraphMerging(t *testing.T) {
	got := render(t,
		"first line",
		"second line",
		"",
		"new paragraph",
	)
	assert.Equal(t, "<p>first line second line</p>\n<p>new paragraph</p>", got)
}

func TestHeadings(t *testing.T) {
	got := render(t, "# Top", "### Third", "####### not a heading")
	assert.Equal(t, "<h1>Top</h1>\n<h3>Third</h3>\n<p>####### not a heading</p>", got)

	// Inline spans render inside headings.
	assert.Equal(t, "<h2>has <em>em</em></h2>", render(t, "## has *em*"))
}

func TestHorizontalRule(t *testing.T) {
	assert.Equal(t, "<hr>", render(t, "---"))
	assert.Equal(t, "<hr>", render(t, "-----   "))
	// Two dashes is a paragraph, not a rule.
	assert.Equal(t, "<p>--</p>", render(t, "--"))
}

func TestRawPassthrough(t *testing.T) {
	got := render(t,
		"para",
		`<div class="note">`,
		"inside",
		"</div>",
	)
	assert.Equal(t, "<p>para</p>\n<div class=\"note\">\n<p>inside</p>\n</div>", got)
}

func TestBulletNesting(t *testing.T) {
	got := render(t,
		"- top",
		"  - nested",
		"",
		"after",
	)
	want := strings.Join([]string{
		"<ul>",
		"<li>top</li>",
		"<ul>",
		"<li>nested</li>",
		"</ul>",
		"</ul>",
		"<p>after</p>",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestBulletMarkersEquivalent(t *testing.T) {
	assert.Equal(t, render(t, "- a", "- b"), render(t, "* a", "* b"))
}

func TestBulletTabIndent(t *testing.T) {
	// A tab expands to four spaces: depth 2 under the top-level item.
	got := render(t, "- a", "\t- deep")
	want := strings.Join([]string{
		"<ul>",
		"<li>a</li>",
		"<ul>",
		"<ul>",
		"<li>deep</li>",
		"</ul>",
		"</ul>",
		"</ul>",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestBulletDepthClamped(t *testing.T) {
	got := render(t, strings.Repeat(" ", 40)+"- deep")
	assert.Equal(t, 7, strings.Count(got, "<ul>"))
	assert.Equal(t, 7, strings.Count(got, "</ul>"))
}

func TestHeadingClosesLists(t *testing.T) {
	got := render(t,
		"- item",
		"  - sub",
		"# Done",
	)
	want := strings.Join([]string{
		"<ul>",
		"<li>item</li>",
		"<ul>",
		"<li>sub</li>",
		"</ul>",
		"</ul>",
		"<h1>Done</h1>",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestTrailingStateFlushedAtEOF(t *testing.T) {
	got := render(t, "- item", "dangling para")
	// Non-bullet lines buffer while the list stays open; at end of input the
	// paragraph flushes before the list closes.
	want := strings.Join([]string{
		"<ul>",
		"<li>item</li>",
		"<p>dangling para</p>",
		"</ul>",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestStripLeadingTitle(t *testing.T) {
	body := "# 2.1 Utility Functions\ncontent here"

	assert.Equal(t, "content here", StripLeadingTitle(body, "2.1 Utility Functions", "Utility Functions"))
	// Bare label matches too, case-insensitively.
	assert.Equal(t, "content here", StripLeadingTitle("# utility functions\ncontent here", "2.1 Utility Functions", "Utility Functions"))
	// Unrelated heading is kept.
	assert.Equal(t, "# Overview\nx", StripLeadingTitle("# Overview\nx", "2.1 Utility Functions", "Utility Functions"))
	// Non-heading first line is kept.
	assert.Equal(t, "plain\nx", StripLeadingTitle("plain\nx", "t", "l"))
}

package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBook lays out a small book fixture:
//
//	A/1 Intro.md
//	A/2 Theory.md
//	A/1 Basics/1.1 Sets.md
//	B/            (empty except for empty subdirectory C)
//	.obsidian/    (hidden, ignored)
func writeBook(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dirs := []string{
		filepath.Join(root, "A", "1 Basics"),
		filepath.Join(root, "B", "C"),
		filepath.Join(root, ".obsidian"),
	}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(d, 0o750))
	}
	files := map[string]string{
		filepath.Join(root, "A", "1 Intro.md"):               "# 1 Intro\n\nhello",
		filepath.Join(root, "A", "2 Theory.md"):              "theory",
		filepath.Join(root, "A", "1 Basics", "1.1 Sets.md"):  "sets",
		filepath.Join(root, ".obsidian", "workspace.md"):     "ignored",
	}
	for p, content := range files {
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestBuildTree(t *testing.T) {
	root := writeBook(t)
	tree, err := Build(root)
	require.NoError(t, err)

	require.Len(t, tree.Sections, 2)
	a, b := tree.Sections[0], tree.Sections[1]

	assert.Equal(t, "A", a.Label)
	assert.Equal(t, "a", a.Slug)
	assert.True(t, a.IsDir)
	require.Len(t, a.Docs, 3)
	// Path-segment order: the subdirectory document sorts between the two
	// root documents because "1 Basics" < "1 Intro.md" segment-wise.
	assert.Equal(t, "A/1 Basics/1.1 Sets.md", a.Docs[0].RelPath)
	assert.Equal(t, "A/1 Intro.md", a.Docs[1].RelPath)
	assert.Equal(t, "A/2 Theory.md", a.Docs[2].RelPath)

	intro := a.Docs[1]
	assert.Equal(t, "1", intro.Prefix)
	assert.Equal(t, "Intro", intro.Label)
	assert.Equal(t, "1 Intro", intro.Title)
	assert.Equal(t, "a/1-intro.html", intro.OutRel)
	assert.Equal(t, "/pages/a/1-intro.html", intro.URLPath)

	sets := a.Docs[0]
	assert.Equal(t, "1.1", sets.Prefix)
	assert.Equal(t, "/pages/a/1-basics/1-1-sets.html", sets.URLPath)
	assert.Equal(t, "A/1 Basics", sets.Dir)

	require.Len(t, a.Children, 1)
	assert.Equal(t, "1 Basics", a.Children[0].Label)
	assert.Equal(t, "1-basics", a.Children[0].Slug)
	assert.Equal(t, []Page{sets.Page()}, a.Children[0].Pages)

	assert.Equal(t, []Page{intro.Page(), a.Docs[2].Page()}, a.RootPages)
	assert.Equal(t, []string{"A", "A/1 Basics"}, a.Dirs)

	// B has no documents but is still a navigable section with nested dirs.
	assert.Equal(t, "B", b.Label)
	assert.True(t, b.IsDir)
	assert.Empty(t, b.Docs)
	assert.Equal(t, []string{"B", "B/C"}, b.Dirs)
	require.Len(t, b.Children, 1)
	assert.Equal(t, "C", b.Children[0].Label)
	assert.Empty(t, b.Children[0].Pages)
}

func TestBuildTreeHiddenSkipped(t *testing.T) {
	root := writeBook(t)
	tree, err := Build(root)
	require.NoError(t, err)

	for _, sect := range tree.Sections {
		assert.NotEqual(t, ".obsidian", sect.Label)
		for _, doc := range sect.Docs {
			assert.NotContains(t, doc.RelPath, ".obsidian")
		}
	}
}

func TestBuildTreeRootDocumentFormsPseudoSection(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Preface.md"), []byte("pre"), 0o644))

	tree, err := Build(root)
	require.NoError(t, err)

	require.Len(t, tree.Sections, 1)
	sect := tree.Sections[0]
	assert.Equal(t, "Preface.md", sect.Label)
	assert.False(t, sect.IsDir)
	require.Len(t, sect.Docs, 1)
	assert.Equal(t, "/pages/preface.html", sect.Docs[0].URLPath)
	// The pseudo-section gets an index page so its navigation links resolve.
	assert.Equal(t, []string{"Preface.md"}, sect.Dirs)
}

func TestBuildTreeMissingRoot(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestBuildTreeDeterministic(t *testing.T) {
	root := writeBook(t)

	first, err := Build(root)
	require.NoError(t, err)
	second, err := Build(root)
	require.NoError(t, err)

	assert.Equal(t, first.Sections, second.Sections)
	assert.Equal(t, first.PagesByDir, second.PagesByDir)
}

func TestComparePathSegments(t *testing.T) {
	assert.Negative(t, comparePathSegments("a/b", "a/c"))
	assert.Negative(t, comparePathSegments("a", "a/b"))
	assert.Positive(t, comparePathSegments("b", "a/z/z"))
	assert.Zero(t, comparePathSegments("a/b", "a/b"))
}

// Package assemble maps a built site tree into output files: document pages,
// directory indexes, the sidebar partial, the manifest and the home page.
// It is a separate pass over the immutable tree; nothing here mutates it.
package assemble

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

// Template placeholders recognized in the page template.
const (
	PlaceholderAssetBase = "{{asset_base}}"
	PlaceholderTitle     = "{{title}}"
	PlaceholderContent   = "{{content}}"
)

//go:embed templates/section.html
var defaultTemplate []byte

// DefaultTemplate returns the embedded starter template written by `init`.
func DefaultTemplate() []byte { return defaultTemplate }

// Template is the page shell every rendered page is substituted into.
type Template struct {
	raw string
}

// LoadTemplate reads the template file. A missing template is a fatal
// configuration error; no output should be produced without one.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return &Template{raw: string(data)}, nil
}

// Render substitutes the recognized placeholders. Pure string substitution;
// unknown placeholders pass through untouched.
func (t *Template) Render(assetBase, title, content string) string {
	return strings.NewReplacer(
		PlaceholderAssetBase, assetBase,
		PlaceholderTitle, title,
		PlaceholderContent, content,
	).Replace(t.raw)
}

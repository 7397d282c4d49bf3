// Package manifest defines the machine-readable artifacts a build publishes:
// the section manifest consumed by external tooling and the build-info record.
package manifest

import (
	"encoding/json"
	"fmt"
	"time"

	"git.home.luguber.info/inful/bookpages/internal/site"
)

// SectionEntry is one section's authoritative flat listing: every page the
// section recursively contains, in reading order.
type SectionEntry struct {
	Label string      `json:"label"`
	Slug  string      `json:"slug"`
	Pages []site.Page `json:"pages"`
}

// Manifest is the ordered list of sections written to site.json.
type Manifest []SectionEntry

// FromTree maps the site tree into manifest entries. Order follows the tree's
// section order; pages follow document reading order within each section.
func FromTree(tree *site.Tree) Manifest {
	m := make(Manifest, 0, len(tree.Sections))
	for _, sect := range tree.Sections {
		entry := SectionEntry{Label: sect.Label, Slug: sect.Slug, Pages: []site.Page{}}
		for _, doc := range sect.Docs {
			entry.Pages = append(entry.Pages, doc.Page())
		}
		m = append(m, entry)
	}
	return m
}

// PageCount returns the total number of pages across all sections.
func (m Manifest) PageCount() int {
	n := 0
	for _, e := range m {
		n += len(e.Pages)
	}
	return n
}

// ToJSON serializes the manifest to indented JSON.
func (m Manifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return m, nil
}

// Counts summarizes build output volume.
type Counts struct {
	Sections int `json:"sections"`
	Pages    int `json:"pages"`
}

// BuildInfo records a single build's identity and inputs. It is the only
// artifact that intentionally differs between otherwise identical runs.
type BuildInfo struct {
	ID        string    `json:"id"`
	Builder   string    `json:"builder"`
	Version   string    `json:"version"`
	BuiltAt   time.Time `json:"built_at"`
	Source    string    `json:"source"`
	Output    string    `json:"output"`
	AssetBase string    `json:"asset_base"`
	Commit    string    `json:"commit,omitempty"`
	Counts    Counts    `json:"counts"`
}

// ToJSON serializes the build info to indented JSON.
func (b *BuildInfo) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal build info: %w", err)
	}
	return data, nil
}

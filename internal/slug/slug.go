// Package slug derives URL-safe identifiers from human-readable folder and
// file names. Slugs are deterministic: the same input always yields the same
// output, and output paths therefore mirror the source directory structure.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned by Slugify when the input contains no usable characters.
const Fallback = "index"

var (
	nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)
	numericLabel = regexp.MustCompile(`^(\d+(?:\.\d+)*)\s+(.+)$`)

	// Decompose accented letters and strip the combining marks so "Équilibre"
	// slugs to "equilibre" rather than collapsing to a separator.
	asciiFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify normalizes text into a lowercase identifier matching
// ^[a-z0-9]+(-[a-z0-9]+)*$. Runs of characters outside [a-z0-9] collapse to a
// single hyphen; leading and trailing hyphens are stripped. Empty results map
// to Fallback. Slugify is total and idempotent on its own output.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	if folded, _, err := transform.String(asciiFolder, s); err == nil {
		s = folded
	}
	s = nonAlnumRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return Fallback
	}
	return s
}

// SplitNumericLabel splits a filename stem like "2.1 Utility Functions" into
// its dotted ordering prefix ("2.1") and display label ("Utility Functions").
// Names without a numeric prefix return an empty prefix and the trimmed name.
func SplitNumericLabel(name string) (prefix, label string) {
	name = strings.TrimSpace(name)
	if m := numericLabel.FindStringSubmatch(name); m != nil {
		return m[1], m[2]
	}
	return "", name
}

// Title joins a numeric prefix and label back into a display title.
func Title(prefix, label string) string {
	if prefix == "" {
		return label
	}
	return prefix + " " + label
}

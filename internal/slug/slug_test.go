package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Intro", "intro"},
		{"spaces", "Utility Functions", "utility-functions"},
		{"numeric prefix", "2.1 Utility Functions", "2-1-utility-functions"},
		{"punctuation runs", "What's new?? (draft)", "what-s-new-draft"},
		{"leading trailing junk", "  --Hello--  ", "hello"},
		{"empty", "", Fallback},
		{"only symbols", "!!!", Fallback},
		{"accents fold", "Équilibre Général", "equilibre-general"},
		{"already normalized", "utility-functions", "utility-functions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugifyShape(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	inputs := []string{
		"Intro", "2.1 Utility Functions", "a b c", "", "---", "Ünïcödé",
		"trailing dot.", ".hidden", "MiXeD CaSe 42", "tab\there",
	}
	for _, in := range inputs {
		got := Slugify(in)
		assert.Regexp(t, shape, got, "input %q", in)
		// Idempotence: slugging a slug is a no-op.
		assert.Equal(t, got, Slugify(got), "input %q", in)
	}
}

func TestSplitNumericLabel(t *testing.T) {
	tests := []struct {
		input  string
		prefix string
		label  string
	}{
		{"2.1 Utility Functions", "2.1", "Utility Functions"},
		{"10 Appendix", "10", "Appendix"},
		{"3.2.1 Deep Section", "3.2.1", "Deep Section"},
		{"Intro", "", "Intro"},
		{"2.1", "", "2.1"},                    // no trailing text, not a prefix
		{"2.1Utility", "", "2.1Utility"},      // no whitespace after the prefix
		{"  4 Padded  ", "4", "Padded"},
		{"", "", ""},
	}
	for _, tt := range tests {
		prefix, label := SplitNumericLabel(tt.input)
		assert.Equal(t, tt.prefix, prefix, "input %q", tt.input)
		assert.Equal(t, tt.label, label, "input %q", tt.input)
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "2.1 Utility Functions", Title("2.1", "Utility Functions"))
	assert.Equal(t, "Intro", Title("", "Intro"))
}

package domain

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var urlSafeSlug = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Bar":                 "bar",
		"Maple Street Diner":  "maple-street-diner",
		"  padded  name  ":    "padded-name",
		"Café Azul":           "cafe-azul",
		"Tim's BBQ & Grill":   "tims-bbq-grill",
		"snake_case_name":     "snake-case-name",
		"--dashes--galore--":  "dashes-galore",
		"MIXED Case / Slash":  "mixed-case-slash",
		"crème brûlée corner": "creme-brulee-corner",
	}

	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestSlugifyProducesURLSafeSlugs(t *testing.T) {
	inputs := []string{"Bar", "Café Azul", "Tim's BBQ & Grill", "  A  B  C  "}
	for _, input := range inputs {
		slug := Slugify(input)
		assert.Regexp(t, urlSafeSlug, slug, "input %q", input)
	}
}

func TestSlugifyIsDeterministic(t *testing.T) {
	assert.Equal(t, Slugify("Golden Gate Grill"), Slugify("Golden Gate Grill"))
}

func TestSlugPattern(t *testing.T) {
	pattern := regexp.MustCompile("(?i)" + SlugPattern("bar"))

	assert.True(t, pattern.MatchString("bar"))
	assert.True(t, pattern.MatchString("bar-2"))
	assert.True(t, pattern.MatchString("bar-10"))
	assert.True(t, pattern.MatchString("BAR-2"))
	assert.False(t, pattern.MatchString("barn"))
	assert.False(t, pattern.MatchString("bar-two"))
	assert.False(t, pattern.MatchString("rebar"))
}

func TestSlugPatternEscapesMetaCharacters(t *testing.T) {
	// A candidate containing regex metacharacters must match literally.
	pattern := regexp.MustCompile("(?i)" + SlugPattern("a-b"))
	assert.True(t, pattern.MatchString("a-b"))
	assert.False(t, pattern.MatchString("axb"))
}

package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
)

// asciiFold strips combining marks so accented input slugs cleanly.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts a store name into its canonical URL slug.
//
// Rules:
//  1. Fold diacritics to their base characters
//  2. Trim whitespace and lowercase
//  3. Replace word separators with dashes
//  4. Drop any remaining non-alphanumeric characters
//  5. Collapse runs of dashes and trim leading/trailing ones
func Slugify(name string) string {
	s := name
	if folded, _, err := transform.String(asciiFold, name); err == nil {
		s = folded
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugPattern returns the case-insensitive regex matching a candidate slug or
// any numeric-suffixed sibling of it (bar, bar-2, bar-3, ...). The count of
// matches drives suffix assignment on save.
func SlugPattern(candidate string) string {
	return "^(" + regexp.QuoteMeta(candidate) + ")(-[0-9]*)?$"
}

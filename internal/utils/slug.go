package utils

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	invalidSlug   = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe identifier from free text: lowercase,
// whitespace runs become a single hyphen, anything outside [a-z0-9-]
// is stripped, repeated hyphens collapse, leading/trailing hyphens go.
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = invalidSlug.ReplaceAllString(slug, "")
	slug = hyphenRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

package service

import (
	"regexp"
	"strings"
)

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

// GenerateSlug turns a display name into a URL slug: lowercase, drop
// punctuation, hyphens for whitespace, collapse runs, trim edges.
func GenerateSlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

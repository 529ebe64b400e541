package utils

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile("[^a-z0-9]+")

// Slugify normalizes a display name into a URL-safe slug. Remote taxonomy
// terms are matched on this, so it must stay deterministic.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

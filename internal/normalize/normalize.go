package normalize

import (
	"regexp"
	"strings"
)

var spaces = regexp.MustCompile(`\s+`)

// Text folds NBSP and whitespace runs into single spaces and trims the ends.
func Text(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Number strips counter decoration before parsing: "71.4%" -> "71.4", "#3" -> "3".
func Number(s string) string {
	s = Text(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimSuffix(s, "%")
	return strings.TrimSpace(s)
}

// URL drops the fragment and surrounding spaces.
func URL(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)
	if idx := strings.Index(urlStr, "#"); idx > -1 {
		urlStr = urlStr[:idx]
	}
	return urlStr
}

package util

import "strings"

// OutermostBraces returns the text from the first '{' to the last '}' inclusive.
func OutermostBraces(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

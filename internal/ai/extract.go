package ai

import "strings"

// ExtractJSON returns the widest brace-delimited span of text. Models often
// wrap JSON replies in prose or markdown fences; the span from the first "{"
// to the last "}" is what callers unmarshal.
func ExtractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

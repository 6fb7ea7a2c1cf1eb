package search

import "strings"

// wordExtend bounds how far excerpt boundaries move to land on a space.
const wordExtend = 20

// Excerpt returns a bounded snippet of content centered on the first
// case-insensitive occurrence of query. When the query is absent the
// content is truncated to maxLength with a trailing ellipsis only if
// truncation actually occurred. Window boundaries are nudged to the
// nearest space within wordExtend characters to avoid cutting words;
// leading/trailing ellipses mark a window that does not reach the
// respective end of content.
func Excerpt(content, query string, maxLength int) string {
	if content == "" {
		return ""
	}

	idx := strings.Index(strings.ToLower(content), strings.ToLower(query))
	if idx < 0 {
		if len(content) <= maxLength {
			return content
		}
		return content[:maxLength] + "..."
	}

	side := (maxLength - len(query)) / 2
	start := idx - side
	if start < 0 {
		start = 0
	}
	end := idx + len(query) + side
	if end > len(content) {
		end = len(content)
	}

	if start > 0 {
		if sp := strings.LastIndex(content[:start+1], " "); sp >= 0 && sp > start-wordExtend {
			start = sp + 1
		}
	}
	if end < len(content) {
		if sp := strings.Index(content[end:], " "); sp >= 0 && sp < wordExtend {
			end += sp
		}
	}

	out := content[start:end]
	if start > 0 {
		out = "..." + out
	}
	if end < len(content) {
		out += "..."
	}
	return out
}

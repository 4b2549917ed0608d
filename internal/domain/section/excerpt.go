package section

import (
	"regexp"
	"strings"
)

// ExcerptWords is the number of words kept when deriving a list excerpt
// from section content.
const ExcerptWords = 20

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Excerpt strips markup from content and trims it to ExcerptWords words,
// appending an ellipsis when the content was longer.
func Excerpt(content string) string {
	plain := tagPattern.ReplaceAllString(content, " ")
	words := strings.Fields(plain)
	if len(words) == 0 {
		return ""
	}
	if len(words) <= ExcerptWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:ExcerptWords], " ") + "…"
}

package linkify

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidetap/internal/types"
)

var urlPattern = regexp.MustCompile("(?:https?|ftp)://[^\\s<>\"'`]+")

// FindURLs returns the character ranges of URLs in text. Trailing
// punctuation and unbalanced closing brackets are not part of a URL.
func FindURLs(text []rune) []types.Range {
	s := string(text)
	var out []types.Range
	// rune count of s[:at], advanced match by match
	at, runes := 0, 0
	for _, m := range urlPattern.FindAllStringIndex(s, -1) {
		url := trimURL(s[m[0]:m[1]])
		if !strings.Contains(url[strings.Index(url, "://")+3:], ".") && !strings.Contains(url, "localhost") {
			continue
		}
		runes += utf8.RuneCountInString(s[at:m[0]])
		at = m[0]
		start := runes
		out = append(out, types.Range{Start: start, End: start + utf8.RuneCountInString(url)})
	}
	return out
}

func trimURL(url string) string {
	for len(url) > 0 {
		last := url[len(url)-1]
		switch {
		case strings.IndexByte(".,;:!?", last) >= 0:
			url = url[:len(url)-1]
		case last == ')' && strings.Count(url, "(") < strings.Count(url, ")"):
			url = url[:len(url)-1]
		case last == ']' && strings.Count(url, "[") < strings.Count(url, "]"):
			url = url[:len(url)-1]
		default:
			return url
		}
	}
	return url
}

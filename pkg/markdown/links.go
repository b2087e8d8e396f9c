package markdown

import (
	"regexp"
	"unicode/utf8"
)

var internalLinkRegexp = regexp.MustCompile(`\[\[(\w+(?:\s+\w+)*)\]\]`)

// InternalLink is a [[Title]] reference found in text. Start and End
// delimit the title in runes, without the brackets.
type InternalLink struct {
	Title string
	Start int
	End   int
}

// InternalLinks returns every internal link of text in order.
func InternalLinks(text string) []InternalLink {
	matches := internalLinkRegexp.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	links := make([]InternalLink, 0, len(matches))
	for _, m := range matches {
		start, end := m[2], m[3]
		links = append(links, InternalLink{
			Title: text[start:end],
			Start: utf8.RuneCountInString(text[:start]),
			End:   utf8.RuneCountInString(text[:end]),
		})
	}
	return links
}

// ContainsInternalLink reports whether text links to title.
func ContainsInternalLink(text, title string) bool {
	for _, l := range InternalLinks(text) {
		if l.Title == title {
			return true
		}
	}
	return false
}

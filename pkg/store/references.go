package store

import (
	"strings"

	"github.com/stateful/outline/pkg/markdown"
)

// Reference is a bullet of another note mentioning a note.
type Reference struct {
	Note   *Note
	Bullet *Bullet
}

// LinkedReferences returns the bullets of other notes that link to the
// note titled title with [[title]].
func (s *Store) LinkedReferences(title string) []Reference {
	return s.references(title, func(content string) bool {
		return markdown.ContainsInternalLink(content, title)
	})
}

// UnlinkedReferences returns the bullets of other notes that mention
// title without linking to it.
func (s *Store) UnlinkedReferences(title string) []Reference {
	lower := strings.ToLower(title)
	return s.references(title, func(content string) bool {
		return strings.Contains(strings.ToLower(content), lower) &&
			!markdown.ContainsInternalLink(content, title)
	})
}

func (s *Store) references(title string, match func(string) bool) []Reference {
	if title == "" {
		return nil
	}
	var refs []Reference
	for _, n := range s.Notes() {
		if n.Title == title {
			continue
		}
		n.Walk(func(b *Bullet) {
			if match(b.content) {
				refs = append(refs, Reference{Note: n, Bullet: b})
			}
		})
	}
	return refs
}

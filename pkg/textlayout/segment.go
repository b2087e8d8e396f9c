package textlayout

import (
	"unicode"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
	"github.com/rivo/uniseg"
)

// graphemeBounds returns the rune offsets of every grapheme cluster
// boundary of s, including 0 and the length of s.
func graphemeBounds(s string) []int {
	bounds := []int{0}
	offset := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		offset += utf8.RuneCountInString(cluster)
		bounds = append(bounds, offset)
	}
	return bounds
}

// NextGrapheme returns the rune offset of the grapheme cluster boundary
// after index. It returns the length of s at the end.
func NextGrapheme(s string, index int) int {
	bounds := graphemeBounds(s)
	for _, b := range bounds {
		if b > index {
			return b
		}
	}
	return bounds[len(bounds)-1]
}

// PreviousGrapheme returns the rune offset of the grapheme cluster
// boundary before index. It returns 0 at the start.
func PreviousGrapheme(s string, index int) int {
	bounds := graphemeBounds(s)
	for i := len(bounds) - 1; i >= 0; i-- {
		if bounds[i] < index {
			return bounds[i]
		}
	}
	return 0
}

// GraphemeCount returns the number of user perceived characters of s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Words returns the rune ranges of the words of s. Segments made only of
// spaces or punctuation are not words.
func Words(s string) []Range {
	var (
		words  []Range
		offset int
		state  = -1
	)
	for len(s) > 0 {
		var word string
		word, s, state = uniseg.FirstWordInString(s, state)
		n := utf8.RuneCountInString(word)
		if isWord(word) {
			words = append(words, Range{Start: offset, End: offset + n})
		}
		offset += n
	}
	return words
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Wrap wraps plain text at limit cells on word boundaries.
func Wrap(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	return wordwrap.String(s, limit)
}

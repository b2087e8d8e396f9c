package textlayout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphemes(t *testing.T) {
	s := "ae\u0301b"

	assert.Equal(t, 1, NextGrapheme(s, 0))
	assert.Equal(t, 3, NextGrapheme(s, 1))
	assert.Equal(t, 3, NextGrapheme(s, 2))
	assert.Equal(t, 4, NextGrapheme(s, 4))

	assert.Equal(t, 1, PreviousGrapheme(s, 3))
	assert.Equal(t, 1, PreviousGrapheme(s, 2))
	assert.Equal(t, 0, PreviousGrapheme(s, 0))

	assert.Equal(t, 3, GraphemeCount(s))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []Range{{0, 5}, {7, 10}, {11, 16}}, Words("hello, big world!"))
	assert.Empty(t, Words("  ... "))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "hello\nworld", Wrap("hello world", 5))
	assert.Equal(t, "hello world", Wrap("hello world", 0))
}

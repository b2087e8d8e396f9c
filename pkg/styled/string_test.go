package styled

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString_Append(t *testing.T) {
	bold := Attributes{Style: Style{Bold: true}}

	s := New("ab", Attributes{})
	s.Append("cd", Attributes{})
	s.Append("", bold)
	s.Append("ef", bold)

	require.Len(t, s.Runs(), 2)
	assert.Equal(t, "abcdef", s.Text())
	assert.Equal(t, 6, s.Len())
	assert.False(t, s.IsEmpty())
	assert.True(t, (&String{}).IsEmpty())
}

func TestString_Insert(t *testing.T) {
	code := Attributes{Style: Style{Code: true}}

	s := New("h\u00e9llo", Attributes{})
	s.Insert(2, "XY", code)

	assert.Equal(t, "h\u00e9XYllo", s.Text())
	require.Len(t, s.Runs(), 3)
	attrs, ok := s.AttributesAt(3)
	require.True(t, ok)
	assert.True(t, attrs.Style.Code)

	s.Insert(100, "!", Attributes{})
	assert.Equal(t, "h\u00e9XYllo!", s.Text())
}

func TestString_Update(t *testing.T) {
	s := New("hello world", Attributes{})

	s.Update(6, 11, func(a *Attributes) { a.Style.Italic = true })
	s.Update(0, 0, func(a *Attributes) { a.Style.Bold = true })

	require.Len(t, s.Runs(), 2)
	assert.Equal(t, "hello ", s.Runs()[0].Text)
	assert.False(t, s.Runs()[0].Attrs.Style.Bold)
	assert.True(t, s.Runs()[1].Attrs.Style.Italic)

	s.Update(0, 11, func(a *Attributes) { a.Style.Italic = true })
	require.Len(t, s.Runs(), 1)
}

func TestString_SetSourcePos(t *testing.T) {
	s := New("ab", Attributes{Style: Style{Bold: true}})
	s.Append("cd", Attributes{})

	s.SetSourcePos(7)

	for i := 0; i < s.Len(); i++ {
		attrs, ok := s.AttributesAt(i)
		require.True(t, ok)
		assert.True(t, attrs.HasSourcePos)
		assert.Equal(t, 7, attrs.SourcePos)
	}
	_, ok := s.AttributesAt(4)
	assert.False(t, ok)
}

func TestString_Substring(t *testing.T) {
	s := New("a\u00f1b", Attributes{})
	s.Append("cd", Attributes{Style: Style{Bold: true}})

	assert.Equal(t, "\u00f1bc", s.Substring(1, 4))
	assert.Equal(t, "", s.Substring(4, 2))
	assert.Equal(t, "a\u00f1bcd", s.Substring(-3, 30))
}

func TestString_Clone(t *testing.T) {
	s := New("abc", Attributes{})
	c := s.Clone()

	c.Append("d", Attributes{Style: Style{Bold: true}})

	assert.Equal(t, "abc", s.Text())
	assert.Equal(t, "abcd", c.Text())
}

func TestAttributes_SourcePos(t *testing.T) {
	a := Attributes{}.WithSourcePos(3)
	assert.True(t, a.HasSourcePos)
	assert.Equal(t, 3, a.SourcePos)

	a = a.WithoutSourcePos()
	assert.Equal(t, Attributes{}, a)
}

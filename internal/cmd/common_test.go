package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/outline/pkg/markdown"
	"github.com/stateful/outline/pkg/styled"
)

func TestPrintTree(t *testing.T) {
	tree := "Inbox\n\t- first bullet here\n\tv - parent\n\t\t> - folded child\n"

	t.Run("NoWrap", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printTree(&buf, tree, 0, false))
		assert.Equal(t, "Inbox\n- first bullet here\nv - parent\n  > - folded child\n", buf.String())
	})

	t.Run("Wrap", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printTree(&buf, tree, 14, false))
		assert.Equal(
			t,
			"Inbox\n- first bullet\n  here\nv - parent\n  > - folded\n      child\n",
			buf.String(),
		)
	})

	t.Run("MultilineBullet", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printTree(&buf, "Inbox\n\t- one\ntwo\n", 0, false))
		assert.Equal(t, "Inbox\n- one\ntwo\n", buf.String())
	})
}

func TestCheckText(t *testing.T) {
	require.NoError(t, checkText(nil))
	require.NoError(t, checkText([]byte("# Title\n\n- item\n")))
	require.NoError(t, checkText([]byte("<p>html is text</p>")))

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	require.ErrorContains(t, checkText(png), "not a text file: image/png")
}

func TestStyledText(t *testing.T) {
	s := styled.New("plain ", styled.Attributes{})
	s.Append("bold", styled.Attributes{Style: styled.Style{Bold: true}})
	s.Append(markdown.LineSeparator+"next", styled.Attributes{})

	assert.Equal(t, "plain bold\nnext", styledText(s, false))
	assert.Contains(t, styledText(s, true), "\x1b[1mbold")
}

func TestValidateColorMode(t *testing.T) {
	for _, mode := range []string{"auto", "always", "never"} {
		require.NoError(t, validateColorMode(mode))
	}
	require.EqualError(t, validateColorMode("purple"), `invalid color mode "purple"`)
}

func TestNewTable_NotTerminal(t *testing.T) {
	var buf bytes.Buffer

	table := newTable(&buf)
	table.AddField("ctrl+a")
	table.AddField("selectAll")
	table.EndRow()
	table.AddField("tab")
	table.AddField("increaseIndentation")
	table.EndRow()
	require.NoError(t, table.Render())

	assert.Equal(t, "ctrl+a\tselectAll\ntab\tincreaseIndentation\n", buf.String())
}

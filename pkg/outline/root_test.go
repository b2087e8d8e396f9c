package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func requireCollapsed(t *testing.T, r *Root) {
	t.Helper()
	require.True(t, r.SelectedRange().IsEmpty(), "selection %v", r.SelectedRange())
	require.Equal(t, r.SelectedRange(), r.MarkedRange())
	require.Equal(t, r.Cursor(), r.SelectedRange().Start)
}

func TestRoot_MovesCancelSelection(t *testing.T) {
	moves := []Command{
		CommandMoveLeft,
		CommandMoveRight,
		CommandMoveUp,
		CommandMoveDown,
		CommandMoveWordLeft,
		CommandMoveWordRight,
		CommandMoveToBeginningOfLine,
		CommandMoveToEndOfLine,
		CommandMoveToBeginningOfDocument,
		CommandMoveToEndOfDocument,
	}
	for _, cmd := range moves {
		t.Run(cmd.String(), func(t *testing.T) {
			r := newTestRoot(t, bullet("first line"), bullet("hello big world"), bullet("last"))
			editAt(t, r, "hello big world", 6)
			r.SetSelection(Range{Start: 2, End: 9})

			require.True(t, r.Do(cmd))
			requireCollapsed(t, r)
		})
	}
}

func TestRoot_MoveCollapsesSelection(t *testing.T) {
	r := newTestRoot(t, bullet("hello world"))
	editAt(t, r, "hello world", 0)

	r.SetSelection(Range{Start: 2, End: 7})
	r.Do(CommandMoveLeft)
	assert.Equal(t, 2, r.Cursor())

	r.SetSelection(Range{Start: 2, End: 7})
	r.Do(CommandMoveRight)
	assert.Equal(t, 7, r.Cursor())
}

func TestRoot_MoveAcrossNodes(t *testing.T) {
	r := newTestRoot(t, bullet("ab", bullet("cd")), bullet("ef"))
	editAt(t, r, "ab", 2)

	r.Do(CommandMoveRight)
	assert.Equal(t, "cd", r.EditedNode().Text())
	assert.Equal(t, 0, r.Cursor())

	r.Do(CommandMoveLeft)
	assert.Equal(t, "ab", r.EditedNode().Text())
	assert.Equal(t, 2, r.Cursor())

	find(t, r, "ab").SetOpen(false)
	r.Do(CommandMoveRight)
	assert.Equal(t, "ef", r.EditedNode().Text())

	r.Do(CommandMoveLeft)
	assert.Equal(t, "ab", r.EditedNode().Text())

	editAt(t, r, "ab", 0)
	r.Do(CommandMoveLeft)
	assert.Equal(t, "ab", r.EditedNode().Text())
	assert.Equal(t, 0, r.Cursor())
}

func TestRoot_MoveSkipsCollapsedSyntax(t *testing.T) {
	r := newTestRoot(t, bullet("a **b** c"))
	editAt(t, r, "a **b** c", 1)

	r.Do(CommandMoveRight)

	assert.Equal(t, 4, r.Cursor())
}

func TestRoot_MoveVertically(t *testing.T) {
	r := newTestRoot(t, bullet("abc"), bullet("defgh"), bullet("ij"))
	editAt(t, r, "defgh", 4)

	r.Do(CommandMoveDown)
	assert.Equal(t, "ij", r.EditedNode().Text())
	assert.Equal(t, 2, r.Cursor())

	r.Do(CommandMoveDown)
	assert.Equal(t, "ij", r.EditedNode().Text())
	assert.Equal(t, 2, r.Cursor())

	editAt(t, r, "defgh", 2)
	r.Do(CommandMoveUp)
	assert.Equal(t, "abc", r.EditedNode().Text())
	assert.Equal(t, 2, r.Cursor())

	r.Do(CommandMoveUp)
	assert.Equal(t, "abc", r.EditedNode().Text())
	assert.Equal(t, 0, r.Cursor())
}

func TestRoot_MoveVerticallyWithinNode(t *testing.T) {
	st := newTestStore(t)
	note, err := st.CreateNote("Wrapped")
	require.NoError(t, err)
	note.Root().CreateChild("abcd efgh")
	r := NewRoot(note, WithWidth(5), WithLogger(zaptest.NewLogger(t)))
	n := editAt(t, r, "abcd efgh", 7)

	require.Len(t, n.Layout().Lines, 2)
	assert.False(t, n.IsOnFirstLine(7))
	assert.True(t, n.IsOnLastLine(7))

	r.Do(CommandMoveUp)
	assert.Equal(t, 2, r.Cursor())

	r.Do(CommandMoveDown)
	assert.Equal(t, 7, r.Cursor())

	r.Do(CommandMoveToBeginningOfLine)
	assert.Equal(t, 5, r.Cursor())

	r.SetCursor(1)
	r.Do(CommandMoveToEndOfLine)
	assert.Equal(t, 4, r.Cursor())
}

func TestRoot_MoveWords(t *testing.T) {
	r := newTestRoot(t, bullet("hello big world"))
	editAt(t, r, "hello big world", 0)

	r.Do(CommandMoveWordRight)
	assert.Equal(t, 5, r.Cursor())
	r.Do(CommandMoveWordRight)
	assert.Equal(t, 9, r.Cursor())
	r.Do(CommandMoveWordLeft)
	assert.Equal(t, 6, r.Cursor())
	r.Do(CommandMoveWordLeft)
	assert.Equal(t, 0, r.Cursor())
}

func TestRoot_ExtendSelection(t *testing.T) {
	r := newTestRoot(t, bullet("hello world"))
	editAt(t, r, "hello world", 5)

	steps := []struct {
		cmd  Command
		want Range
	}{
		{CommandMoveLeftAndModifySelection, Range{Start: 4, End: 5}},
		{CommandMoveLeftAndModifySelection, Range{Start: 3, End: 5}},
		{CommandMoveRightAndModifySelection, Range{Start: 4, End: 5}},
		{CommandMoveRightAndModifySelection, Range{Start: 5, End: 5}},
		{CommandMoveRightAndModifySelection, Range{Start: 5, End: 6}},
		{CommandMoveWordRightAndModifySelection, Range{Start: 5, End: 11}},
		{CommandMoveWordLeftAndModifySelection, Range{Start: 5, End: 6}},
		{CommandMoveToBeginningOfLineAndModifySelection, Range{Start: 0, End: 5}},
		{CommandMoveToEndOfLineAndModifySelection, Range{Start: 5, End: 11}},
	}
	for _, step := range steps {
		r.Do(step.cmd)
		sel := r.SelectedRange()
		require.LessOrEqual(t, sel.Start, sel.End, step.cmd.String())
		assert.Equal(t, step.want, sel, step.cmd.String())
	}
}

func TestRoot_Select(t *testing.T) {
	r := newTestRoot(t, bullet("hello big world"))
	editAt(t, r, "hello big world", 7)

	r.Do(CommandSelectWord)
	assert.Equal(t, Range{Start: 6, End: 9}, r.SelectedRange())
	assert.Equal(t, "big", r.SelectedText())

	r.Do(CommandSelectAll)
	assert.Equal(t, Range{Start: 0, End: 15}, r.SelectedRange())
	assert.Equal(t, 15, r.Cursor())

	r.Do(CommandCancelOperation)
	requireCollapsed(t, r)
}

func TestRoot_SetSelectionIsClamped(t *testing.T) {
	r := newTestRoot(t, bullet("abc"))
	editAt(t, r, "abc", 0)

	r.SetSelection(Range{Start: 10, End: -2})

	assert.Equal(t, Range{Start: 0, End: 3}, r.SelectedRange())
	assert.Equal(t, 3, r.Cursor())
}

func TestRoot_PressEnter(t *testing.T) {
	t.Run("Split", func(t *testing.T) {
		r := newTestRoot(t, bullet("abcdef", bullet("child")), bullet("next"))
		first := editAt(t, r, "abcdef", 3)

		require.True(t, r.Do(CommandPressEnter))

		requireShape(t, r, bullet("abc"), bullet("def", bullet("child")), bullet("next"))
		assert.Equal(t, 0, first.ChildCount())
		assert.Equal(t, "def", r.EditedNode().Text())
		assert.Equal(t, 0, r.Cursor())
	})

	t.Run("SelectionErased", func(t *testing.T) {
		r := newTestRoot(t, bullet("abcdef"))
		editAt(t, r, "abcdef", 0)
		r.SetSelection(Range{Start: 1, End: 3})

		r.Do(CommandPressEnter)

		requireShape(t, r, bullet("a"), bullet("def"))
	})

	t.Run("AtEnd", func(t *testing.T) {
		r := newTestRoot(t, bullet("abc"))
		editAt(t, r, "abc", 3)

		r.Do(CommandPressEnter)

		requireShape(t, r, bullet("abc"), bullet(""))
		assert.Equal(t, "", r.EditedNode().Text())
	})

	t.Run("EmptyLeafOutdents", func(t *testing.T) {
		r := newTestRoot(t, bullet("a", bullet("", bullet(""))))
		leaf := r.Child(0).Child(0).Child(0)
		r.Focus(leaf)

		r.Do(CommandPressEnter)

		requireShape(t, r, bullet("a", bullet("")))
		assert.Equal(t, leaf, r.EditedNode())
	})

	t.Run("ReadOnly", func(t *testing.T) {
		r := newTestRoot(t, bullet("abc"))
		n := editAt(t, r, "abc", 1)
		n.SetReadOnly(true)

		assert.False(t, r.PressEnter())
		requireShape(t, r, bullet("abc"))
	})
}

func TestRoot_DeleteBackward(t *testing.T) {
	t.Run("Character", func(t *testing.T) {
		r := newTestRoot(t, bullet("abc"))
		editAt(t, r, "abc", 2)

		r.Do(CommandDeleteBackward)

		requireShape(t, r, bullet("ac"))
		assert.Equal(t, 1, r.Cursor())
	})

	t.Run("Selection", func(t *testing.T) {
		r := newTestRoot(t, bullet("abcdef"))
		editAt(t, r, "abcdef", 0)
		r.SetSelection(Range{Start: 1, End: 4})

		r.Do(CommandDeleteBackward)

		requireShape(t, r, bullet("aef"))
		assert.Equal(t, 1, r.Cursor())
		requireCollapsed(t, r)
	})

	t.Run("MergeKeepsChildren", func(t *testing.T) {
		r := newTestRoot(t, bullet("world"), bullet("hello", bullet("child")))
		editAt(t, r, "hello", 0)

		r.Do(CommandDeleteBackward)

		requireShape(t, r, bullet("worldhello", bullet("child")))
		assert.Equal(t, "worldhello", r.EditedNode().Text())
		assert.Equal(t, 5, r.Cursor())
	})

	t.Run("FirstNode", func(t *testing.T) {
		r := newTestRoot(t, bullet("abc"))
		editAt(t, r, "abc", 0)

		r.Do(CommandDeleteBackward)

		requireShape(t, r, bullet("abc"))
	})

	t.Run("Grapheme", func(t *testing.T) {
		r := newTestRoot(t, bullet("ae\u0301b"))
		editAt(t, r, "ae\u0301b", 3)

		r.Do(CommandDeleteBackward)

		requireShape(t, r, bullet("ab"))
		assert.Equal(t, 1, r.Cursor())
	})
}

func TestRoot_DeleteForward(t *testing.T) {
	t.Run("Character", func(t *testing.T) {
		r := newTestRoot(t, bullet("abc"))
		editAt(t, r, "abc", 1)

		r.Do(CommandDeleteForward)

		requireShape(t, r, bullet("ac"))
		assert.Equal(t, 1, r.Cursor())
	})

	t.Run("MergeKeepsChildren", func(t *testing.T) {
		r := newTestRoot(t, bullet("hello"), bullet("world", bullet("child")))
		editAt(t, r, "hello", 5)

		r.Do(CommandDeleteForward)

		requireShape(t, r, bullet("helloworld", bullet("child")))
		assert.Equal(t, 5, r.Cursor())
	})

	t.Run("LastNode", func(t *testing.T) {
		r := newTestRoot(t, bullet("abc"))
		editAt(t, r, "abc", 3)

		r.Do(CommandDeleteForward)

		requireShape(t, r, bullet("abc"))
	})
}

func TestRoot_DeleteWordsAndLines(t *testing.T) {
	cases := []struct {
		name   string
		cmd    Command
		cursor int
		want   string
	}{
		{"WordForward", CommandDeleteWordForward, 6, "hello  world"},
		{"WordBackward", CommandDeleteWordBackward, 9, "hello  world"},
		{"ToBeginningOfLine", CommandDeleteToBeginningOfLine, 6, "big world"},
		{"ToEndOfLine", CommandDeleteToEndOfLine, 5, "hello"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRoot(t, bullet("hello big world"))
			editAt(t, r, "hello big world", tc.cursor)

			r.Do(tc.cmd)

			requireShape(t, r, bullet(tc.want))
		})
	}
}

func TestRoot_InsertNewline(t *testing.T) {
	r := newTestRoot(t, bullet("abcd"), bullet(""))
	editAt(t, r, "abcd", 2)

	r.Do(CommandInsertNewline)
	assert.Equal(t, "ab\ncd", r.EditedNode().Text())
	assert.Equal(t, 3, r.Cursor())

	editAt(t, r, "", 0)
	r.Do(CommandInsertNewline)
	assert.Equal(t, "", r.EditedNode().Text())

	n := editAt(t, r, "ab\ncd", 0)
	r.Do(CommandInsertNewline)
	assert.Equal(t, "ab\ncd", n.Text())
	assert.Equal(t, 0, r.Cursor())

	r.SetSelection(Range{Start: 0, End: 2})
	r.Do(CommandInsertNewline)
	assert.Equal(t, "\n\ncd", n.Text())
	assert.Equal(t, 1, r.Cursor())
}

func TestRoot_IncreaseIndentation(t *testing.T) {
	r := newTestRoot(t, bullet("p", bullet("x"), bullet("y", bullet("y1")), bullet("z")))
	y := editAt(t, r, "y", 1)

	require.True(t, r.Do(CommandIncreaseIndentation))

	requireShape(t, r, bullet("p", bullet("x"), bullet("", bullet("y", bullet("y1"))), bullet("z")))
	assert.Equal(t, y, r.EditedNode())
	assert.Equal(t, 1, r.Cursor())
	assert.Equal(t, 3, find(t, r, "p").ChildCount())
}

func TestRoot_DecreaseIndentation(t *testing.T) {
	t.Run("SoleChildOfEmptyParent", func(t *testing.T) {
		r := newTestRoot(t, bullet("a", bullet("", bullet("x"))), bullet("b"))
		x := editAt(t, r, "x", 0)

		require.True(t, r.Do(CommandDecreaseIndentation))

		requireShape(t, r, bullet("a", bullet("x")), bullet("b"))
		assert.Equal(t, x, r.EditedNode())
	})

	t.Run("IndentThenOutdent", func(t *testing.T) {
		r := newTestRoot(t, bullet("x"), bullet("y"), bullet("z"))
		editAt(t, r, "y", 0)

		r.Do(CommandIncreaseIndentation)
		r.Do(CommandDecreaseIndentation)

		requireShape(t, r, bullet("x"), bullet("y"), bullet("z"))
	})

	t.Run("NotSoleChild", func(t *testing.T) {
		r := newTestRoot(t, bullet("", bullet("x"), bullet("y")))
		for _, text := range []string{"x", "y"} {
			editAt(t, r, text, 0)

			assert.False(t, r.Do(CommandDecreaseIndentation))
			requireShape(t, r, bullet("", bullet("x"), bullet("y")))
		}
	})

	t.Run("ParentWithText", func(t *testing.T) {
		r := newTestRoot(t, bullet("p", bullet("x")))
		editAt(t, r, "x", 0)

		assert.False(t, r.Do(CommandDecreaseIndentation))
		requireShape(t, r, bullet("p", bullet("x")))
	})

	t.Run("TopLevel", func(t *testing.T) {
		r := newTestRoot(t, bullet("x"))
		editAt(t, r, "x", 0)

		assert.False(t, r.Do(CommandDecreaseIndentation))
		requireShape(t, r, bullet("x"))
	})
}

func TestRoot_InputMethod(t *testing.T) {
	r := newTestRoot(t, bullet("ab"))
	editAt(t, r, "ab", 1)

	require.True(t, r.SetMarkedText("k", Range{}, Range{}))
	assert.Equal(t, "akb", r.EditedNode().Text())
	assert.Equal(t, Range{Start: 1, End: 2}, r.MarkedRange())
	assert.Equal(t, r.MarkedRange(), r.SelectedRange())
	assert.Equal(t, 2, r.Cursor())

	r.SetMarkedText("ka", Range{Start: 2, End: 2}, Range{})
	assert.Equal(t, "akab", r.EditedNode().Text())
	assert.Equal(t, Range{Start: 1, End: 3}, r.MarkedRange())

	require.True(t, r.InsertText("か", Range{}))
	assert.Equal(t, "aかb", r.EditedNode().Text())
	assert.Equal(t, 2, r.Cursor())
	assert.False(t, r.HasMarkedText())
	requireCollapsed(t, r)
}

func TestRoot_InputMethodReplacementRange(t *testing.T) {
	r := newTestRoot(t, bullet("hello"))
	editAt(t, r, "hello", 5)
	r.SetSelection(Range{Start: 0, End: 1})

	r.SetMarkedText("J", Range{}, Range{Start: 4, End: 5})

	assert.Equal(t, "hellJ", r.EditedNode().Text())
	assert.Equal(t, Range{Start: 4, End: 5}, r.MarkedRange())

	r.UnmarkText()
	assert.False(t, r.HasMarkedText())
	assert.Equal(t, "hellJ", r.EditedNode().Text())
}

func TestRoot_InsertText(t *testing.T) {
	r := newTestRoot(t, bullet("helld"))
	editAt(t, r, "helld", 3)

	r.InsertText("lo wor", Range{})
	assert.Equal(t, "hello world", r.EditedNode().Text())
	assert.Equal(t, 9, r.Cursor())

	r.SetSelection(Range{Start: 0, End: 5})
	r.InsertText("HELLO", Range{})
	assert.Equal(t, "HELLO world", r.EditedNode().Text())
	assert.Equal(t, "HELLO world", r.EditedNode().Record().Content())
}

func TestRoot_ReadOnly(t *testing.T) {
	st := newTestStore(t)
	target, err := st.CreateNote("Target")
	require.NoError(t, err)
	target.Root().CreateChild("own")
	other, err := st.CreateNote("Other")
	require.NoError(t, err)
	other.Root().CreateChild("see [[Target]]")

	r := NewRoot(target, WithReferences(st))
	ref := r.LinkedReferences().Child(0)
	r.Focus(ref)

	assert.False(t, r.InsertText("x", Range{}))
	r.Do(CommandDeleteBackward)
	r.Do(CommandDeleteForward)
	assert.False(t, r.Do(CommandIncreaseIndentation))
	assert.False(t, r.PressEnter())

	assert.Equal(t, "see [[Target]]", ref.Text())
	assert.Equal(t, "see [[Target]]", other.Bullets()[0].Content())
}

func TestRoot_UnknownCommand(t *testing.T) {
	r := newTestRoot(t, bullet("abc"))

	assert.False(t, r.Do(Command(-1)))
	assert.False(t, r.Do(CommandInsertText))
}

func TestParseCommand(t *testing.T) {
	for _, key := range Commands() {
		cmd, ok := ParseCommand(key)
		require.True(t, ok, key)
		assert.Equal(t, key, cmd.String())
	}

	_, ok := ParseCommand("explode")
	assert.False(t, ok)
}

package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestHistory_CoalescesInsertions(t *testing.T) {
	r := newTestRoot(t, bullet("abc"))
	n := editAt(t, r, "abc", 3)

	r.InsertText("d", Range{})
	r.InsertText("e", Range{})
	assert.Equal(t, "abcde", n.Text())
	assert.Equal(t, 1, r.History().Len())
	assert.Equal(t, "Insert Text", r.History().UndoName())

	require.True(t, r.Do(CommandUndo))
	assert.Equal(t, "abc", n.Text())
	assert.Equal(t, 3, r.Cursor())
	assert.Equal(t, "abc", n.Record().Content())
	assert.True(t, r.History().CanRedo())
	assert.False(t, r.History().CanUndo())

	require.True(t, r.Do(CommandRedo))
	assert.Equal(t, "abcde", n.Text())
	assert.Equal(t, 5, r.Cursor())
	assert.False(t, r.History().CanRedo())

	require.True(t, r.Do(CommandUndo))
	assert.Equal(t, "abc", n.Text())
}

func TestHistory_OtherCommandsBreakCoalescing(t *testing.T) {
	r := newTestRoot(t, bullet("abc"))
	n := editAt(t, r, "abc", 3)

	r.InsertText("d", Range{})
	r.Do(CommandMoveLeft)
	r.InsertText("x", Range{})
	assert.Equal(t, "abcxd", n.Text())
	assert.Equal(t, 2, r.History().Len())

	r.Do(CommandUndo)
	assert.Equal(t, "abcd", n.Text())
	assert.Equal(t, 3, r.Cursor())

	r.Do(CommandUndo)
	assert.Equal(t, "abc", n.Text())

	assert.False(t, r.Do(CommandUndo))
}

func TestHistory_DeleteBackwardSteps(t *testing.T) {
	r := newTestRoot(t, bullet("abcd"))
	n := editAt(t, r, "abcd", 4)

	r.Do(CommandDeleteBackward)
	r.Do(CommandDeleteBackward)
	assert.Equal(t, "ab", n.Text())
	assert.Equal(t, 1, r.History().Len())
	assert.Equal(t, "Delete Backward", r.History().UndoName())

	r.Do(CommandUndo)
	assert.Equal(t, "abcd", n.Text())
	assert.Equal(t, 4, r.Cursor())
}

func TestHistory_UndoRestoresEditedNode(t *testing.T) {
	r := newTestRoot(t, bullet("one"), bullet("two"))
	one := editAt(t, r, "one", 3)

	r.InsertText("!", Range{})
	r.Do(CommandMoveDown)
	require.Equal(t, "two", r.EditedNode().Text())

	r.Do(CommandUndo)

	assert.Equal(t, one, r.EditedNode())
	assert.Equal(t, "one", one.Text())
	assert.Equal(t, 3, r.Cursor())
}

func TestHistory_UndoRestoresSelection(t *testing.T) {
	r := newTestRoot(t, bullet("hello world"))
	n := editAt(t, r, "hello world", 0)
	r.SetSelection(Range{Start: 0, End: 5})

	r.InsertText("bye", Range{})
	assert.Equal(t, "bye world", n.Text())

	r.Do(CommandUndo)
	assert.Equal(t, "hello world", n.Text())
	assert.Equal(t, Range{Start: 0, End: 5}, r.SelectedRange())
	assert.Equal(t, 5, r.Cursor())
}

func TestHistory_NewEditClearsRedo(t *testing.T) {
	r := newTestRoot(t, bullet("abc"))
	editAt(t, r, "abc", 3)

	r.InsertText("d", Range{})
	r.Do(CommandUndo)
	require.True(t, r.History().CanRedo())

	r.InsertText("x", Range{})
	assert.False(t, r.History().CanRedo())
	assert.False(t, r.Do(CommandRedo))
}

func TestHistory_DropsStepsOfDeletedNodes(t *testing.T) {
	r := newTestRoot(t, bullet("a"), bullet("b"))
	editAt(t, r, "b", 0)

	r.InsertText("x", Range{})
	r.SetCursor(0)
	r.Do(CommandDeleteBackward)
	requireShape(t, r, bullet("axb"))

	assert.False(t, r.Do(CommandUndo))
	assert.False(t, r.History().CanUndo())
}

func TestHistory_Limit(t *testing.T) {
	st := newTestStore(t)
	note, err := st.CreateNote("Limited")
	require.NoError(t, err)
	note.Root().CreateChild("abc")
	r := NewRoot(note, WithUndoLimit(2), WithLogger(zaptest.NewLogger(t)))
	n := editAt(t, r, "abc", 3)

	r.InsertText("d", Range{})
	r.Do(CommandDeleteBackward)
	r.InsertText("e", Range{})
	r.Do(CommandDeleteBackward)
	assert.Equal(t, 2, r.History().Len())

	r.Do(CommandUndo)
	r.Do(CommandUndo)
	assert.Equal(t, "abc", n.Text())
	assert.False(t, r.Do(CommandUndo))
}

func TestHistory_MovesAreNotRecorded(t *testing.T) {
	r := newTestRoot(t, bullet("abc"))
	editAt(t, r, "abc", 0)

	r.Do(CommandMoveRight)
	r.Do(CommandSelectAll)
	r.Do(CommandFold)

	assert.False(t, r.History().CanUndo())
	assert.Equal(t, "", r.History().UndoName())
}

func TestHistory_EditedNodeChangeBreaksCoalescing(t *testing.T) {
	r := newTestRoot(t, bullet("aaa"), bullet("bbb"))
	a := editAt(t, r, "aaa", 3)
	b := find(t, r, "bbb")

	r.InsertText("X", Range{})
	r.SetEditedNode(b)
	r.SetCursor(3)
	r.InsertText("Y", Range{})
	assert.Equal(t, 2, r.History().Len())

	require.True(t, r.Undo())
	assert.Equal(t, "aaaX", a.Text())
	assert.Equal(t, "bbb", b.Text())

	require.True(t, r.Undo())
	assert.Equal(t, "aaa", a.Text())
	assert.Equal(t, "bbb", b.Text())
	assert.False(t, r.History().CanUndo())
}

func TestHistory_SameCommandInAnotherNodeIsNewStep(t *testing.T) {
	r := newTestRoot(t, bullet("aaa"), bullet("bbb"))
	a := editAt(t, r, "aaa", 3)
	b := find(t, r, "bbb")

	r.InsertText("X", Range{})
	// The last command is still insertText when the edited node changes
	// without going through a command.
	r.editing = b
	r.cursor = 3
	r.InsertText("Y", Range{})
	assert.Equal(t, 2, r.History().Len())

	require.True(t, r.Undo())
	assert.Equal(t, "aaaX", a.Text())
	assert.Equal(t, "bbb", b.Text())
}

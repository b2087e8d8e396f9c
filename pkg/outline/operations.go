package outline

import (
	"go.uber.org/zap"
)

// replace replaces rng of the edited node with text and puts the cursor
// after the inserted text.
func (r *Root) replace(rng Range, text string) {
	n := r.editing
	rng = rng.normalized(n.Len())
	n.SetText(replaceRunes(n.text, rng, text))
	r.SetCursor(rng.Start + runeLen(text))
}

// eraseSelection deletes the selected text.
func (r *Root) eraseSelection() {
	if r.selected.IsEmpty() || r.editing.readOnly {
		return
	}
	r.replace(r.selected, "")
	r.cancelSelection()
}

// targetRange resolves the range a text edit applies to: the range given
// by the input method, then the marked text, then the selection, then
// the cursor.
func (r *Root) targetRange(replacement Range) Range {
	switch {
	case !replacement.IsEmpty():
		return replacement
	case !r.marked.IsEmpty():
		return r.marked
	case !r.selected.IsEmpty():
		return r.selected
	}
	return collapsed(r.cursor)
}

// InsertText inserts text, replacing the target range, and ends any
// composition.
func (r *Root) InsertText(text string, replacement Range) bool {
	if r.editing.readOnly {
		return false
	}
	defer r.flush()
	r.pushUndoState(CommandInsertText)

	rng := r.targetRange(replacement)
	r.replace(rng, text)
	r.marked = collapsed(r.cursor)
	r.cancelSelection()
	return true
}

// SetMarkedText replaces the target range with text being composed by an
// input method. The composed text becomes the marked range and is
// mirrored into the selection. The cursor lands at the end of the marked
// text whatever selectedRange says.
func (r *Root) SetMarkedText(text string, selectedRange, replacement Range) bool {
	if r.editing.readOnly {
		return false
	}
	defer r.flush()

	rng := r.targetRange(replacement)
	r.replace(rng, text)
	marked := Range{Start: rng.Start, End: rng.Start + runeLen(text)}.normalized(r.editing.Len())
	r.marked = marked
	r.selected = marked
	r.SetCursor(marked.End)
	r.editing.invalidateText()
	r.ctx.Logger.Debug(
		"marked text",
		zap.Int("start", marked.Start),
		zap.Int("end", marked.End),
		zap.Int("selectedStart", selectedRange.Start),
	)
	return true
}

// UnmarkText ends the composition and keeps the composed text.
func (r *Root) UnmarkText() {
	if r.editing.readOnly {
		return
	}
	r.marked = collapsed(r.cursor)
	r.editing.invalidateText()
}

func (r *Root) deleteForward() {
	n := r.editing
	if n.readOnly {
		return
	}
	switch {
	case !r.selected.IsEmpty():
		r.eraseSelection()
	case r.cursor < n.Len():
		r.replace(Range{Start: r.cursor, End: n.PositionAfter(r.cursor)}, "")
	default:
		r.mergeNext()
	}
	r.cancelSelection()
}

func (r *Root) deleteBackward() {
	n := r.editing
	if n.readOnly {
		return
	}
	switch {
	case !r.selected.IsEmpty():
		r.eraseSelection()
	case r.cursor == 0:
		r.mergeIntoPrevious()
	default:
		r.replace(Range{Start: n.PositionBefore(r.cursor), End: r.cursor}, "")
	}
	r.cancelSelection()
}

// deleteRange deletes the selection if any, rng otherwise.
func (r *Root) deleteRange(rng Range) {
	if r.editing.readOnly {
		return
	}
	if !r.selected.IsEmpty() {
		r.eraseSelection()
		return
	}
	r.replace(rng, "")
	r.cancelSelection()
}

// mergeNext appends the next visible node to the edited one. Its
// children move to the edited node.
func (r *Root) mergeNext() {
	n := r.editing
	next := n.NextVisible()
	if next == nil || next.readOnly {
		return
	}
	text := next.text
	for _, c := range next.Children() {
		n.AddChild(c)
	}
	next.Delete()
	cursor := r.cursor
	n.SetText(n.text + text)
	r.SetCursor(cursor)
}

// mergeIntoPrevious appends the edited node to the previous visible one
// and edits the result. The children of the edited node move along.
func (r *Root) mergeIntoPrevious() {
	n := r.editing
	prev := n.PreviousVisible()
	if prev == nil || prev.readOnly {
		return
	}
	text := n.text
	for _, c := range n.Children() {
		prev.AddChild(c)
	}
	r.editing = prev
	prev.invalidateText()
	n.Delete()
	cursor := prev.Len()
	prev.SetText(prev.text + text)
	r.SetCursor(cursor)
}

// insertNewline replaces the selection with a line break. Without a
// selection, the break is only inserted inside non-empty text: never at
// the start of the node.
func (r *Root) insertNewline() {
	n := r.editing
	if n.readOnly {
		return
	}
	if r.selected.IsEmpty() && (r.cursor == 0 || n.text == "") {
		r.cancelSelection()
		return
	}
	r.replace(r.targetRange(Range{}), "\n")
	r.cancelSelection()
}

// IncreaseIndentation wraps the edited node in a new empty node that
// takes its place among its siblings.
func (r *Root) IncreaseIndentation() bool {
	n := r.editing
	p := n.Parent()
	if n.readOnly || p == nil {
		return false
	}
	i, ok := n.Index()
	if !ok {
		return false
	}
	wrapper := r.tree.newNode("")
	p.SetChild(wrapper, i)
	wrapper.AddChild(n)
	r.ctx.Logger.Debug("increased indentation", zap.Uint64("node", uint64(n.id)))
	return true
}

// DecreaseIndentation replaces the parent of the edited node with the
// node. It only applies when the node is the only child of an empty
// parent that is not the root.
func (r *Root) DecreaseIndentation() bool {
	n := r.editing
	p := n.Parent()
	if n.readOnly || p == nil {
		return false
	}
	gp := p.Parent()
	if gp == nil || p.ChildCount() != 1 || p.text != "" {
		return false
	}
	i, ok := p.Index()
	if !ok {
		return false
	}
	gp.SetChild(n, i)
	if !p.HasChildren() {
		p.Delete()
	}
	r.ctx.Logger.Debug("decreased indentation", zap.Uint64("node", uint64(n.id)))
	return true
}

// PressEnter splits the edited node at the cursor. The text after the
// cursor and all the children go to a new node inserted right after it,
// which becomes the edited node. On an empty leaf Enter outdents instead.
func (r *Root) PressEnter() bool {
	n := r.editing
	p := n.Parent()
	if n.readOnly || p == nil {
		return false
	}
	if n.text == "" && !n.HasChildren() && p != r.Node {
		return r.DecreaseIndentation()
	}

	r.eraseSelection()
	head := sliceRunes(n.text, 0, r.cursor)
	tail := sliceRunes(n.text, r.cursor, n.Len())
	n.SetText(head)

	split := r.tree.newNode(tail)
	if !p.Insert(split, n) {
		return false
	}
	for _, c := range n.Children() {
		split.AddChild(c)
	}

	r.SetEditedNode(split)
	r.SetCursor(0)
	r.cancelSelection()
	return true
}

package outline

import (
	"go.uber.org/zap"
)

// TextState is the state of the edited node saved before an undoable
// command runs.
type TextState struct {
	Text     string
	Selected Range
	Marked   Range
	Cursor   int
}

type undoEntry struct {
	command Command
	node    NodeID
	state   TextState
}

// History holds the undo and redo stacks of a Root. Only the text and
// selection of the edited node are saved: structural changes such as
// indentation or merges are not undone.
type History struct {
	undo  []undoEntry
	redo  []undoEntry
	limit int
}

func newHistory(limit int) *History {
	return &History{limit: limit}
}

func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoName returns the name of the command the next undo reverts.
func (h *History) UndoName() string {
	if len(h.undo) == 0 {
		return ""
	}
	return commands[h.undo[len(h.undo)-1].command].Name
}

func (h *History) RedoName() string {
	if len(h.redo) == 0 {
		return ""
	}
	return commands[h.redo[len(h.redo)-1].command].Name
}

func (h *History) Len() int {
	return len(h.undo)
}

func (h *History) pushUndo(e undoEntry) {
	h.undo = append(h.undo, e)
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
}

func (h *History) pushRedo(e undoEntry) {
	h.redo = append(h.redo, e)
}

func pop(stack *[]undoEntry) (undoEntry, bool) {
	s := *stack
	if len(s) == 0 {
		return undoEntry{}, false
	}
	e := s[len(s)-1]
	*stack = s[:len(s)-1]
	return e, true
}

func (r *Root) state() TextState {
	return TextState{
		Text:     r.editing.text,
		Selected: r.selected,
		Marked:   r.marked,
		Cursor:   r.cursor,
	}
}

func (r *Root) coalescesWithLast() bool {
	if len(r.history.undo) == 0 {
		return false
	}
	return r.history.undo[len(r.history.undo)-1].node == r.editing.id
}

func (r *Root) entry(cmd Command) undoEntry {
	return undoEntry{command: cmd, node: r.editing.id, state: r.state()}
}

// pushUndoState saves the state of the edited node if cmd is undoable.
// Consecutive runs of a coalescing command in the same node share one
// entry.
func (r *Root) pushUndoState(cmd Command) {
	defer func() {
		r.lastCommand = cmd
	}()

	def, ok := commands[cmd]
	if !ok || !def.Undo {
		return
	}
	if def.Coalesce && r.lastCommand == cmd && r.coalescesWithLast() {
		return
	}
	r.history.pushUndo(r.entry(cmd))
	r.history.redo = nil
}

// Undo restores the state saved by the last undoable command. The node
// it applied to becomes the edited node.
func (r *Root) Undo() bool {
	defer r.flush()
	for {
		e, ok := pop(&r.history.undo)
		if !ok {
			return false
		}
		n := r.tree.Node(e.node)
		if n == nil {
			r.ctx.Logger.Debug("dropping undo step of a deleted node", zap.String("command", e.command.String()))
			continue
		}
		if commands[e.command].Redo {
			r.SetEditedNode(n)
			r.history.pushRedo(r.entry(e.command))
		}
		r.restore(n, e.state)
		r.lastCommand = CommandNone
		return true
	}
}

// Redo restores the state the last undo reverted and makes it undoable
// again.
func (r *Root) Redo() bool {
	defer r.flush()
	for {
		e, ok := pop(&r.history.redo)
		if !ok {
			return false
		}
		n := r.tree.Node(e.node)
		if n == nil {
			continue
		}
		r.SetEditedNode(n)
		r.history.pushUndo(r.entry(e.command))
		r.restore(n, e.state)
		r.lastCommand = CommandNone
		return true
	}
}

func (r *Root) restore(n *Node, state TextState) {
	r.SetEditedNode(n)
	n.SetText(state.Text)
	r.SetCursor(state.Cursor)
	r.selected = state.Selected.normalized(n.Len())
	r.marked = state.Marked.normalized(n.Len())
	n.invalidateText()
}

package outline

import (
	"go.uber.org/zap"
)

// Command is an editing command an input surface can send to a Root.
type Command int

const (
	CommandNone Command = iota
	CommandInsertText
	CommandMoveForward
	CommandMoveRight
	CommandMoveBackward
	CommandMoveLeft
	CommandMoveUp
	CommandMoveDown
	CommandMoveWordForward
	CommandMoveWordBackward
	CommandMoveWordRight
	CommandMoveWordLeft
	CommandMoveToBeginningOfLine
	CommandMoveToEndOfLine
	CommandMoveToBeginningOfParagraph
	CommandMoveToEndOfParagraph
	CommandMoveToBeginningOfDocument
	CommandMoveToEndOfDocument
	CommandPageUp
	CommandPageDown
	CommandCenterSelectionInVisibleArea
	CommandMoveForwardAndModifySelection
	CommandMoveRightAndModifySelection
	CommandMoveBackwardAndModifySelection
	CommandMoveLeftAndModifySelection
	CommandMoveUpAndModifySelection
	CommandMoveDownAndModifySelection
	CommandMoveWordForwardAndModifySelection
	CommandMoveWordBackwardAndModifySelection
	CommandMoveWordRightAndModifySelection
	CommandMoveWordLeftAndModifySelection
	CommandMoveToBeginningOfLineAndModifySelection
	CommandMoveToEndOfLineAndModifySelection
	CommandMoveToBeginningOfParagraphAndModifySelection
	CommandMoveToEndOfParagraphAndModifySelection
	CommandSelectAll
	CommandSelectLine
	CommandSelectWord
	CommandInsertTab
	CommandInsertBacktab
	CommandInsertNewline
	CommandPressEnter
	CommandDeleteForward
	CommandDeleteBackward
	CommandDeleteWordForward
	CommandDeleteWordBackward
	CommandDeleteToBeginningOfLine
	CommandDeleteToEndOfLine
	CommandIncreaseIndentation
	CommandDecreaseIndentation
	CommandFold
	CommandUnfold
	CommandComplete
	CommandCancelOperation
	CommandUndo
	CommandRedo
)

// CommandDefinition tells how a command interacts with the undo history.
type CommandDefinition struct {
	// Key is the identifier of the command in key maps.
	Key string
	// Name is shown to the user, for instance in "Undo Insert Text".
	Name string
	// Undo makes the command save the state of the edited node before it
	// runs.
	Undo bool
	// Redo makes undoing the command redoable.
	Redo bool
	// Coalesce merges consecutive runs of the command into one undo step.
	Coalesce bool
}

func move(key, name string) CommandDefinition {
	return CommandDefinition{Key: key, Name: name}
}

func edit(key, name string) CommandDefinition {
	return CommandDefinition{Key: key, Name: name, Undo: true, Redo: true, Coalesce: true}
}

var commands = map[Command]CommandDefinition{
	CommandNone:                         {Key: "none"},
	CommandInsertText:                   edit("insertText", "Insert Text"),
	CommandMoveForward:                  move("moveForward", "Move Forward"),
	CommandMoveRight:                    move("moveRight", "Move Right"),
	CommandMoveBackward:                 move("moveBackward", "Move Backward"),
	CommandMoveLeft:                     move("moveLeft", "Move Left"),
	CommandMoveUp:                       move("moveUp", "Move Up"),
	CommandMoveDown:                     move("moveDown", "Move Down"),
	CommandMoveWordForward:              move("moveWordForward", "Move Word Forward"),
	CommandMoveWordBackward:             move("moveWordBackward", "Move Word Backward"),
	CommandMoveWordRight:                move("moveWordRight", "Move Word Right"),
	CommandMoveWordLeft:                 move("moveWordLeft", "Move Word Left"),
	CommandMoveToBeginningOfLine:        move("moveToBeginningOfLine", "Move To Beginning Of Line"),
	CommandMoveToEndOfLine:              move("moveToEndOfLine", "Move To End Of Line"),
	CommandMoveToBeginningOfParagraph:   move("moveToBeginningOfParagraph", "Move To Beginning Of Paragraph"),
	CommandMoveToEndOfParagraph:         move("moveToEndOfParagraph", "Move To End Of Paragraph"),
	CommandMoveToBeginningOfDocument:    move("moveToBeginningOfDocument", "Move To Beginning Of Document"),
	CommandMoveToEndOfDocument:          move("moveToEndOfDocument", "Move To End Of Document"),
	CommandPageUp:                       move("pageUp", "Page Up"),
	CommandPageDown:                     move("pageDown", "Page Down"),
	CommandCenterSelectionInVisibleArea: move("centerSelectionInVisibleArea", "Center Selection In Visible Area"),

	CommandMoveForwardAndModifySelection:                move("moveForwardAndModifySelection", "Move Forward And Modify Selection"),
	CommandMoveRightAndModifySelection:                  move("moveRightAndModifySelection", "Move Right And Modify Selection"),
	CommandMoveBackwardAndModifySelection:               move("moveBackwardAndModifySelection", "Move Backward And Modify Selection"),
	CommandMoveLeftAndModifySelection:                   move("moveLeftAndModifySelection", "Move Left And Modify Selection"),
	CommandMoveUpAndModifySelection:                     move("moveUpAndModifySelection", "Move Up And Modify Selection"),
	CommandMoveDownAndModifySelection:                   move("moveDownAndModifySelection", "Move Down And Modify Selection"),
	CommandMoveWordForwardAndModifySelection:            move("moveWordForwardAndModifySelection", "Move Word Forward And Modify Selection"),
	CommandMoveWordBackwardAndModifySelection:           move("moveWordBackwardAndModifySelection", "Move Word Backward And Modify Selection"),
	CommandMoveWordRightAndModifySelection:              move("moveWordRightAndModifySelection", "Move Word Right And Modify Selection"),
	CommandMoveWordLeftAndModifySelection:               move("moveWordLeftAndModifySelection", "Move Word Left And Modify Selection"),
	CommandMoveToBeginningOfLineAndModifySelection:      move("moveToBeginningOfLineAndModifySelection", "Move To Beginning Of Line And Modify Selection"),
	CommandMoveToEndOfLineAndModifySelection:            move("moveToEndOfLineAndModifySelection", "Move To End Of Line And Modify Selection"),
	CommandMoveToBeginningOfParagraphAndModifySelection: move("moveToBeginningOfParagraphAndModifySelection", "Move To Beginning Of Paragraph And Modify Selection"),
	CommandMoveToEndOfParagraphAndModifySelection:       move("moveToEndOfParagraphAndModifySelection", "Move To End Of Paragraph And Modify Selection"),

	CommandSelectAll:  move("selectAll", "Select All"),
	CommandSelectLine: move("selectLine", "Select Line"),
	CommandSelectWord: move("selectWord", "Select Word"),

	CommandInsertTab:               edit("insertTab", "Insert Tab"),
	CommandInsertBacktab:           edit("insertBacktab", "Insert Backtab"),
	CommandInsertNewline:           edit("insertNewline", "Insert New Line"),
	CommandPressEnter:              edit("pressEnter", "Split Bullet"),
	CommandDeleteForward:           edit("deleteForward", "Delete Forward"),
	CommandDeleteBackward:          edit("deleteBackward", "Delete Backward"),
	CommandDeleteWordForward:       edit("deleteWordForward", "Delete Word Forward"),
	CommandDeleteWordBackward:      edit("deleteWordBackward", "Delete Word Backward"),
	CommandDeleteToBeginningOfLine: edit("deleteToBeginningOfLine", "Delete To Beginning Of Line"),
	CommandDeleteToEndOfLine:       edit("deleteToEndOfLine", "Delete To End Of Line"),
	CommandIncreaseIndentation:     move("increaseIndentation", "Increase Indentation"),
	CommandDecreaseIndentation:     move("decreaseIndentation", "Decrease Indentation"),
	CommandFold:                    move("fold", "Fold"),
	CommandUnfold:                  move("unfold", "Unfold"),
	CommandComplete:                edit("complete", "Complete"),
	CommandCancelOperation:         move("cancelOperation", "Cancel Operation"),
	CommandUndo:                    move("undo", "Undo"),
	CommandRedo:                    move("redo", "Redo"),
}

var commandsByKey = func() map[string]Command {
	m := make(map[string]Command, len(commands))
	for c, def := range commands {
		m[def.Key] = c
	}
	return m
}()

// Definition returns the definition of c.
func (c Command) Definition() (CommandDefinition, bool) {
	def, ok := commands[c]
	return def, ok
}

func (c Command) String() string {
	if def, ok := commands[c]; ok {
		return def.Key
	}
	return "unknown"
}

// ParseCommand returns the command identified by key, like "moveLeft".
func ParseCommand(key string) (Command, bool) {
	c, ok := commandsByKey[key]
	return c, ok
}

// Commands returns the keys of all commands.
func Commands() []string {
	keys := make([]string, 0, len(commands))
	for c := CommandNone; c <= CommandRedo; c++ {
		keys = append(keys, commands[c].Key)
	}
	return keys
}

// Do runs cmd on the edited node and lays the tree out again.
func (r *Root) Do(cmd Command) bool {
	if _, ok := commands[cmd]; !ok {
		r.ctx.Logger.Debug("unknown command", zap.Int("command", int(cmd)))
		return false
	}
	defer r.flush()

	switch cmd {
	case CommandUndo:
		return r.Undo()
	case CommandRedo:
		return r.Redo()
	case CommandInsertText:
		r.ctx.Logger.Debug("insertText needs a string, use InsertText")
		return false
	}

	r.pushUndoState(cmd)

	switch cmd {
	case CommandNone:

	case CommandMoveForward, CommandMoveRight:
		r.moveRight()
	case CommandMoveBackward, CommandMoveLeft:
		r.moveLeft()
	case CommandMoveUp:
		r.moveUp()
	case CommandMoveDown:
		r.moveDown()
	case CommandMoveWordForward, CommandMoveWordRight:
		r.moveTo(r.wordEndAfter(r.cursor))
	case CommandMoveWordBackward, CommandMoveWordLeft:
		r.moveTo(r.wordStartBefore(r.cursor))
	case CommandMoveToBeginningOfLine:
		r.moveTo(r.editing.BeginningOfLine(r.cursor))
	case CommandMoveToEndOfLine:
		r.moveTo(r.editing.EndOfLine(r.cursor))
	case CommandMoveToBeginningOfParagraph:
		r.moveTo(0)
	case CommandMoveToEndOfParagraph:
		r.moveTo(r.editing.Len())
	case CommandMoveToBeginningOfDocument:
		r.moveToBeginningOfDocument()
	case CommandMoveToEndOfDocument:
		r.moveToEndOfDocument()
	case CommandPageUp:
		r.page(r.moveUp)
	case CommandPageDown:
		r.page(r.moveDown)
	case CommandCenterSelectionInVisibleArea:

	case CommandMoveForwardAndModifySelection, CommandMoveRightAndModifySelection:
		if r.cursor != r.editing.Len() {
			r.extendSelection(r.editing.PositionAfter(r.cursor))
		}
	case CommandMoveBackwardAndModifySelection, CommandMoveLeftAndModifySelection:
		if r.cursor != 0 {
			r.extendSelection(r.editing.PositionBefore(r.cursor))
		}
	case CommandMoveUpAndModifySelection:
		pos, _ := r.editing.PositionAbove(r.cursor)
		r.extendSelection(pos)
	case CommandMoveDownAndModifySelection:
		pos, _ := r.editing.PositionBelow(r.cursor)
		r.extendSelection(pos)
	case CommandMoveWordForwardAndModifySelection, CommandMoveWordRightAndModifySelection:
		r.extendSelection(r.wordEndAfter(r.cursor))
	case CommandMoveWordBackwardAndModifySelection, CommandMoveWordLeftAndModifySelection:
		r.extendSelection(r.wordStartBefore(r.cursor))
	case CommandMoveToBeginningOfLineAndModifySelection:
		r.extendSelection(r.editing.BeginningOfLine(r.cursor))
	case CommandMoveToEndOfLineAndModifySelection:
		r.extendSelection(r.editing.EndOfLine(r.cursor))
	case CommandMoveToBeginningOfParagraphAndModifySelection:
		r.extendSelection(0)
	case CommandMoveToEndOfParagraphAndModifySelection:
		r.extendSelection(r.editing.Len())

	case CommandSelectAll:
		r.selectAll()
	case CommandSelectLine:
		r.selectLine()
	case CommandSelectWord:
		r.selectWord()

	case CommandInsertTab, CommandIncreaseIndentation:
		return r.IncreaseIndentation()
	case CommandInsertBacktab, CommandDecreaseIndentation:
		return r.DecreaseIndentation()
	case CommandInsertNewline:
		r.insertNewline()
	case CommandPressEnter:
		r.PressEnter()
	case CommandDeleteForward:
		r.deleteForward()
	case CommandDeleteBackward:
		r.deleteBackward()
	case CommandDeleteWordForward:
		r.deleteRange(Range{Start: r.cursor, End: r.wordEndAfter(r.cursor)})
	case CommandDeleteWordBackward:
		r.deleteRange(Range{Start: r.wordStartBefore(r.cursor), End: r.cursor})
	case CommandDeleteToBeginningOfLine:
		r.deleteRange(Range{Start: r.editing.BeginningOfLine(r.cursor), End: r.cursor})
	case CommandDeleteToEndOfLine:
		r.deleteRange(Range{Start: r.cursor, End: r.editing.EndOfLine(r.cursor)})

	case CommandFold:
		r.editing.Fold()
	case CommandUnfold:
		r.editing.Unfold()
	case CommandComplete:
	case CommandCancelOperation:
		r.marked = collapsed(r.cursor)
		r.cancelSelection()
	}
	return true
}

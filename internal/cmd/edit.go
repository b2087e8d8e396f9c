package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/outline/internal/config/autoconfig"
	"github.com/stateful/outline/internal/keymap"
	"github.com/stateful/outline/internal/log"
	"github.com/stateful/outline/pkg/outline"
	"github.com/stateful/outline/pkg/store"
)

type actionKind string

const (
	actionText   actionKind = "text"
	actionMark   actionKind = "mark"
	actionUnmark actionKind = "unmark"
	actionKey    actionKind = "key"
	actionCmd    actionKind = "cmd"
)

type action struct {
	kind actionKind
	arg  string
}

// parseAction parses "kind:argument", like "key:enter" or "text:hello".
func parseAction(s string) (action, error) {
	kind, arg, _ := strings.Cut(s, ":")
	a := action{kind: actionKind(kind), arg: arg}
	switch a.kind {
	case actionText, actionMark:
		return a, nil
	case actionUnmark:
		if arg != "" {
			return action{}, errors.Errorf("action %q takes no argument", kind)
		}
		return a, nil
	case actionKey, actionCmd:
		if arg == "" {
			return action{}, errors.Errorf("action %q needs an argument", kind)
		}
		return a, nil
	default:
		return action{}, errors.Errorf("unknown action %q", s)
	}
}

func (a action) apply(root *outline.Root, km *keymap.Keymap) (bool, error) {
	switch a.kind {
	case actionText:
		return root.InsertText(a.arg, outline.Range{}), nil
	case actionMark:
		return root.SetMarkedText(a.arg, outline.Range{}, outline.Range{}), nil
	case actionUnmark:
		root.UnmarkText()
		return true, nil
	case actionKey:
		cmd, ok := km.Lookup(a.arg)
		if !ok {
			return false, errors.Errorf("key %q is not bound", a.arg)
		}
		return root.Do(cmd), nil
	case actionCmd:
		cmd, ok := outline.ParseCommand(a.arg)
		if !ok {
			return false, errors.Errorf("unknown command %q", a.arg)
		}
		return root.Do(cmd), nil
	}
	return false, nil
}

func editCmd() *cobra.Command {
	var (
		fDryRun bool
		fPrint  bool
		fStatus bool
		fCopy   bool
	)

	cmd := cobra.Command{
		Use:   "edit <title> [action...]",
		Short: "Apply editing actions to a note.",
		Long: `Apply editing actions to a note, starting with the cursor at the
beginning of its first bullet. Actions are run in order:

  text:<text>   insert text at the cursor, replacing the selection
  mark:<text>   set the text being composed by an input method
  unmark        commit the composed text
  key:<chord>   run the command bound to a key chord, like key:enter
  cmd:<name>    run a command by name, like cmd:increaseIndentation

A note that does not exist yet is created.`,
		Example: `  outline edit Inbox text:groceries key:enter key:tab text:milk`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actions := make([]action, 0, len(args)-1)
			for _, arg := range args[1:] {
				a, err := parseAction(arg)
				if err != nil {
					return err
				}
				actions = append(actions, a)
			}

			return invoke(func(
				st *store.Store,
				path autoconfig.NotesFile,
				km *keymap.Keymap,
				opts []outline.Option,
			) error {
				note := st.FetchOrCreateNote(args[0])
				root := outline.NewRoot(note, opts...)

				for _, a := range actions {
					ok, err := a.apply(root, km)
					if err != nil {
						return err
					}
					if !ok {
						log.Get().Info("action had no effect", zap.String("kind", string(a.kind)), zap.String("arg", a.arg))
					}
				}

				w := cmd.OutOrStdout()
				if fPrint {
					if err := printTree(w, root.PrintTree(), 0, useColor(w)); err != nil {
						return err
					}
				}
				if fStatus {
					sel := root.SelectedRange()
					_, _ = fmt.Fprintf(
						w,
						"node %q cursor %d selection %d-%d\n",
						root.EditedNode().Text(), root.Cursor(), sel.Start, sel.End,
					)
				}

				if fCopy {
					if err := clipboard.WriteAll(root.SelectedText()); err != nil {
						return errors.Wrap(err, "failed to copy the selection")
					}
				}

				if fDryRun {
					return nil
				}
				return saveIfDirty(st, path)
			})
		},
	}

	cmd.Flags().BoolVar(&fDryRun, "dry-run", false, "Do not save the changes.")
	cmd.Flags().BoolVarP(&fPrint, "print", "p", false, "Print the note after the actions ran.")
	cmd.Flags().BoolVar(&fStatus, "status", false, "Print the edited bullet, the cursor and the selection.")
	cmd.Flags().BoolVar(&fCopy, "copy", false, "Copy the selected text to the clipboard.")

	return &cmd
}

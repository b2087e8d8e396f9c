package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/outline/internal/keymap"
	"github.com/stateful/outline/pkg/outline"
)

func keysCmd() *cobra.Command {
	var fCommands bool

	cmd := cobra.Command{
		Use:   "keys",
		Short: "List the key bindings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if fCommands {
				for _, key := range outline.Commands() {
					_, _ = fmt.Fprintln(w, key)
				}
				return nil
			}

			return invoke(func(km *keymap.Keymap) error {
				table := newTable(w)
				for _, b := range km.Bindings() {
					table.AddField(b.Chord)
					table.AddField(b.Command.String())
					table.EndRow()
				}
				return errors.Wrap(table.Render(), "failed to write bindings")
			})
		},
	}

	cmd.Flags().BoolVar(&fCommands, "commands", false, "List the names of all commands instead.")

	return &cmd
}

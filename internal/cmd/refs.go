package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stateful/outline/pkg/store"
)

func refsCmd() *cobra.Command {
	var fUnlinked bool

	cmd := cobra.Command{
		Use:   "refs <title>",
		Short: "List the bullets of other notes that reference a note.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(func(st *store.Store) error {
				title := args[0]
				refs := st.LinkedReferences(title)
				if fUnlinked {
					refs = st.UnlinkedReferences(title)
				}
				w := cmd.OutOrStdout()
				for _, ref := range refs {
					_, _ = fmt.Fprintf(w, "%s: %s\n", ref.Note.Title, ref.Bullet.Content())
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&fUnlinked, "unlinked", "u", false, "List plain mentions instead of [[links]].")

	return &cmd
}

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/outline/internal/config/autoconfig"
	"github.com/stateful/outline/pkg/store"
)

func notesCmd() *cobra.Command {
	var fMatch string

	cmd := cobra.Command{
		Use:     "notes",
		Aliases: []string{"ls"},
		Short:   "List notes.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var matcher glob.Glob
			if fMatch != "" {
				var err error
				matcher, err = glob.Compile(fMatch)
				if err != nil {
					return errors.Wrapf(err, "invalid pattern %q", fMatch)
				}
			}

			return invoke(func(st *store.Store) error {
				table := newTable(cmd.OutOrStdout())

				table.AddField(strings.ToUpper("Title"))
				table.AddField(strings.ToUpper("Bullets"))
				table.AddField(strings.ToUpper("Updated"))
				table.EndRow()

				for _, note := range st.Notes() {
					if matcher != nil && !matcher.Match(note.Title) {
						continue
					}
					table.AddField(note.Title)
					table.AddField(strconv.Itoa(note.Len()))
					table.AddField(note.Updated.Format("2006-01-02 15:04"))
					table.EndRow()
				}
				return errors.Wrap(table.Render(), "failed to write notes")
			})
		},
	}

	cmd.Flags().StringVarP(&fMatch, "match", "m", "", "Only list notes whose title matches a glob pattern, like \"2024-*\".")

	return &cmd
}

func newCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "new <title> [bullet...]",
		Short: "Create a note, optionally with top level bullets.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(func(st *store.Store, path autoconfig.NotesFile) error {
				note, err := st.CreateNote(args[0])
				if err != nil {
					return err
				}
				for _, content := range args[1:] {
					note.Root().CreateChild(content)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %q\n", note.Title)
				return saveIfDirty(st, path)
			})
		},
	}
	return &cmd
}

func rmCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "rm <title>",
		Short: "Delete a note.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(func(st *store.Store, path autoconfig.NotesFile) error {
				note, err := getNote(st, args[0])
				if err != nil {
					return err
				}
				if err := st.DeleteNote(note.ID); err != nil {
					return err
				}
				return saveIfDirty(st, path)
			})
		},
	}
	return &cmd
}

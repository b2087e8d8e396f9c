package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/outline/internal/config/autoconfig"
	"github.com/stateful/outline/pkg/store"
)

func importCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "import <file>...",
		Short: "Import markdown files as notes.",
		Long: `Import markdown files as notes. List items become bullets. The title
is taken from the frontmatter, then from a leading heading, then from the
file name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(func(st *store.Store, path autoconfig.NotesFile) error {
				for _, fileName := range args {
					data, err := os.ReadFile(fileName)
					if err != nil {
						return errors.Wrapf(err, "failed to read file %q", fileName)
					}
					if err := checkText(data); err != nil {
						return errors.Wrapf(err, "failed to import %q", fileName)
					}

					title := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
					note, err := st.ImportMarkdown(data, title)
					if err != nil {
						return errors.Wrapf(err, "failed to import %q", fileName)
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %q with %d bullets\n", note.Title, note.Len())
				}
				return saveIfDirty(st, path)
			})
		},
	}
	return &cmd
}

// checkText rejects binary content.
func checkText(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	mtype := mimetype.Detect(data)
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return nil
		}
	}
	return errors.Errorf("not a text file: %s", mtype.String())
}

func exportCmd() *cobra.Command {
	var fOutput string

	cmd := cobra.Command{
		Use:   "export <title>",
		Short: "Export a note as markdown.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(func(st *store.Store) error {
				note, err := getNote(st, args[0])
				if err != nil {
					return err
				}
				data, err := store.ExportMarkdown(note)
				if err != nil {
					return errors.Wrap(err, "failed to export note")
				}
				if fOutput == "" || fOutput == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return errors.Wrap(err, "failed to write result")
				}
				return errors.Wrapf(os.WriteFile(fOutput, data, 0o644), "failed to write %q", fOutput)
			})
		},
	}

	cmd.Flags().StringVarP(&fOutput, "output", "o", "", "File to write the markdown to. Defaults to stdout.")

	return &cmd
}

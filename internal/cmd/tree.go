package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stateful/outline/pkg/outline"
	"github.com/stateful/outline/pkg/store"
	"github.com/stateful/outline/pkg/textlayout"
)

func treeCmd() *cobra.Command {
	var fWidth int

	cmd := cobra.Command{
		Use:   "tree <title>",
		Short: "Print the bullets of a note.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(func(st *store.Store, opts []outline.Option) error {
				note, err := getNote(st, args[0])
				if err != nil {
					return err
				}
				root := outline.NewRoot(note, opts...)
				w := cmd.OutOrStdout()
				width := fWidth
				if width == 0 {
					width = terminalWidth(w)
				}
				return printTree(w, root.PrintTree(), width, useColor(w))
			})
		},
	}

	cmd.Flags().IntVar(&fWidth, "width", 0, "Wrap bullets longer than the given number of columns. Defaults to the terminal width.")

	return &cmd
}

var treeMarkers = []string{"v - ", "> - ", "- "}

// printTree writes a listing made by PrintTree. Every line is wrapped to
// width and continuation lines are aligned with the bullet text.
func printTree(w io.Writer, tree string, width int, colored bool) error {
	marker := newColor(colored, color.Faint)
	title := newColor(colored, color.Bold)

	lines := strings.Split(strings.TrimSuffix(tree, "\n"), "\n")
	for i, line := range lines {
		if i == 0 {
			if _, err := fmt.Fprintln(w, title.Sprint(line)); err != nil {
				return err
			}
			continue
		}

		text := strings.TrimLeft(line, "\t")
		indent := strings.Repeat("  ", max(len(line)-len(text)-1, 0))
		prefix := ""
		for _, m := range treeMarkers {
			if strings.HasPrefix(text, m) {
				prefix, text = m, strings.TrimPrefix(text, m)
				break
			}
		}

		limit := 0
		if width > 0 {
			limit = max(width-len(indent)-len(prefix), 1)
		}
		wrapped := strings.Split(textlayout.Wrap(text, limit), "\n")
		pad := indent + strings.Repeat(" ", len(prefix))
		for j, part := range wrapped {
			var err error
			if j == 0 {
				_, err = fmt.Fprintln(w, indent+marker.Sprint(prefix)+part)
			} else {
				_, err = fmt.Fprintln(w, pad+part)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

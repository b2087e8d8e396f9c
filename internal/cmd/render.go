package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/outline/internal/config"
	"github.com/stateful/outline/pkg/markdown"
	"github.com/stateful/outline/pkg/styled"
	"github.com/stateful/outline/pkg/textlayout"
)

func renderCmd() *cobra.Command {
	var (
		fCursor int
		fRuns   bool
		fLines  bool
		fWidth  float64
	)

	cmd := cobra.Command{
		Use:   "render <markdown>",
		Short: "Render the markdown of a bullet as it is displayed.",
		Long: `Render the markdown of a bullet as it is displayed. Use "-" to read
the markdown from stdin. With --cursor the syntax around the cursor is
revealed the way it is while the bullet is edited.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			if source == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "failed to read from stdin")
				}
				source = strings.TrimSuffix(string(data), "\n")
			}

			return invoke(func(
				cfg *config.Config,
				renderer *markdown.Renderer,
				engine textlayout.Engine,
			) error {
				s := renderer.Render(source, "", fCursor)
				w := cmd.OutOrStdout()

				if _, err := fmt.Fprintln(w, styledText(s, useColor(w))); err != nil {
					return err
				}

				if fRuns {
					m := styled.NewSourceMap(s, len([]rune(source)))
					for _, r := range m.Runs() {
						_, _ = fmt.Fprintf(w, "%d-%d -> %d %q\n", r.DisplayStart, r.DisplayEnd, r.SourcePos, s.Substring(r.DisplayStart, r.DisplayEnd))
					}
				}

				if fLines {
					width := fWidth
					if width <= 0 {
						width = cfg.Layout.Width
					}
					frame := engine.Layout(s, width)
					for _, l := range frame.Lines {
						_, _ = fmt.Fprintf(w, "%d-%d y=%g %q\n", l.Range.Start, l.Range.End, l.Y, s.Substring(l.Range.Start, l.Range.End))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&fCursor, "cursor", -1, "Source offset of the edit cursor. Negative when not editing.")
	cmd.Flags().BoolVar(&fRuns, "runs", false, "Print the display ranges and the source offsets they map to.")
	cmd.Flags().BoolVar(&fLines, "lines", false, "Print the laid out lines.")
	cmd.Flags().Float64Var(&fWidth, "width", 0, "Layout width. Defaults to the configured width.")

	return &cmd
}

// styledText returns the display text of s. Hard line breaks become new
// lines and styles become terminal attributes when colored is true.
func styledText(s *styled.String, colored bool) string {
	var b strings.Builder
	for _, r := range s.Runs() {
		text := strings.ReplaceAll(r.Text, markdown.LineSeparator, "\n")
		b.WriteString(newColor(colored, styleAttributes(r.Attrs.Style)...).Sprint(text))
	}
	return b.String()
}

func styleAttributes(st styled.Style) []color.Attribute {
	var attrs []color.Attribute
	if st.Bold || st.Heading > 0 {
		attrs = append(attrs, color.Bold)
	}
	if st.Italic {
		attrs = append(attrs, color.Italic)
	}
	if st.Underline {
		attrs = append(attrs, color.Underline)
	}
	if st.Strike {
		attrs = append(attrs, color.CrossedOut)
	}
	if st.Disabled {
		attrs = append(attrs, color.Faint)
	}
	if st.Code {
		attrs = append(attrs, color.FgCyan)
	}
	if st.Link {
		attrs = append(attrs, color.FgBlue, color.Underline)
	}
	if st.Quote > 0 {
		attrs = append(attrs, color.FgGreen)
	}
	return attrs
}


package cmd

import (
	"io"
	"os"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/stateful/outline/internal/config"
	"github.com/stateful/outline/internal/config/autoconfig"
	"github.com/stateful/outline/internal/log"
	"github.com/stateful/outline/pkg/store"
)

func newBuilder() (*autoconfig.Builder, error) {
	b := autoconfig.NewBuilder(fChdir)
	if !fVerbose {
		return b, nil
	}
	err := b.Decorate(func(c *config.Config) *config.Config {
		c.Log.Enabled = true
		c.Log.Verbose = true
		c.Log.Path = ""
		return c
	})
	return b, errors.WithStack(err)
}

func invoke(function interface{}) error {
	b, err := newBuilder()
	if err != nil {
		return err
	}
	return b.Invoke(function)
}

// saveIfDirty writes the notes back when a command changed them.
func saveIfDirty(st *store.Store, path autoconfig.NotesFile) error {
	if !st.Dirty() {
		log.Get().Debug("notes unchanged")
		return nil
	}
	if err := st.SaveFile(string(path)); err != nil {
		return errors.Wrap(err, "failed to save notes")
	}
	log.Get().Debug("notes saved", zap.String("path", string(path)))
	return nil
}

func getNote(st *store.Store, title string) (*store.Note, error) {
	note, ok := st.NoteByTitle(title)
	if !ok {
		return nil, errors.Wrapf(store.ErrNoteNotFound, "title %q", title)
	}
	return note, nil
}

func validateColorMode(mode string) error {
	switch mode {
	case "auto", "always", "never":
		return nil
	default:
		return errors.Errorf("invalid color mode %q", mode)
	}
}

// newTable returns a table printer for w. Non-terminal output gets
// tab-separated fields without truncation.
func newTable(w io.Writer) tableprinter.TablePrinter {
	width := terminalWidth(w)
	if width == 0 {
		width = 80
	}
	return tableprinter.New(w, isTerminal(w), width)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// useColor resolves the --color flag for w. Colors are used in auto mode
// only when w is a terminal.
func useColor(w io.Writer) bool {
	switch fColor {
	case "always":
		return true
	case "never":
		return false
	}
	return isTerminal(w)
}

// terminalWidth returns the width of the terminal w writes to, or 0 when
// w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

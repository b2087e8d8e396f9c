package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/outline/internal/log"
	"github.com/stateful/outline/internal/version"
)

var (
	fChdir   string
	fColor   string
	fVerbose bool
)

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:           "outline",
		Short:         "Edit markdown notes as outlines of bullets",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateColorMode(fColor); err != nil {
				return err
			}
			if err := log.Set(fVerbose, fVerbose, ""); err != nil {
				return err
			}
			log.Get().Debug("starting", zap.String("command", cmd.Name()), zap.String("version", version.BaseVersion()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Flush()
		},
	}

	pflags := cmd.PersistentFlags()

	pflags.StringVar(&fChdir, "chdir", ".", "Directory holding outline.yaml and the notes.")
	pflags.StringVar(&fColor, "color", "auto", "Colorize the output: auto, always or never.")
	pflags.BoolVarP(&fVerbose, "verbose", "v", false, "Log debug messages to stderr.")

	cmd.AddCommand(notesCmd())
	cmd.AddCommand(newCmd())
	cmd.AddCommand(rmCmd())
	cmd.AddCommand(treeCmd())
	cmd.AddCommand(editCmd())
	cmd.AddCommand(renderCmd())
	cmd.AddCommand(importCmd())
	cmd.AddCommand(exportCmd())
	cmd.AddCommand(refsCmd())
	cmd.AddCommand(keysCmd())

	return &cmd
}

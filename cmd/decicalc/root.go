package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/decicalc/engine"
)

var (
	flagConfigPath string
	flagDebug      bool
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "decicalc [file]",
		Short: "A terminal spreadsheet with a Forwards-style formula language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			return runApp(file)
		},
	}
	root.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a TOML config file (defaults applied if omitted)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug-level logging")
	root.AddCommand(newValidateCommand())
	return root
}

// newValidateCommand loads a saved sheet without starting the TUI and
// reports errors opening or reading it. Load is fail-soft, so a file
// with an unrecognized header is reported as loaded (as a one-cell sheet
// holding the diagnostic), and formulas are not parsed.
func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Load a saved sheet and report any load errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			sheet, err := loadSheet(f)
			if err != nil {
				return err
			}
			fmt.Printf("loaded %d columns, max row %d\n", sheet.ColumnCount(), sheet.MaxRow())
			return nil
		},
	}
}

func loadConfig() engine.Config {
	if flagConfigPath == "" {
		return engine.DefaultConfig()
	}
	cfg, err := engine.LoadConfig(flagConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; using defaults\n", err)
		return engine.DefaultConfig()
	}
	return cfg
}

// Command decicalc is the terminal spreadsheet front-end: a cobra CLI
// that loads a sheet (or starts a blank one) and hands it to the
// tview/tcell TUI described in SPEC_FULL §5.1.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

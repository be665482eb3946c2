package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"irship/board"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "Print the fleet layouts both boards choose from",
	Run: func(cmd *cobra.Command, args []string) {
		printLayouts(os.Stdout)
	},
}

func printLayouts(out io.Writer) {
	for id, layout := range board.Catalog {
		fmt.Fprintf(out, "Layout %d (%d ship cells)\n", id, layout.ShipCount())
		for _, line := range board.BuildGrid(layout).Lines() {
			fmt.Fprintf(out, "  %s\n", line)
		}
		fmt.Fprintln(out)
	}
}

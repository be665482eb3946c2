package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"irship/record"
	"irship/ui"
)

var flagBrowse bool

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List saved match records, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cfg.RecordsDir()
		if err != nil {
			return err
		}
		if flagBrowse {
			return browseRecords(dir)
		}
		recs, err := record.List(dir)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Printf("No records in %s\n", dir)
			return nil
		}
		return printRecords(os.Stdout, recs)
	},
}

func printRecords(out io.Writer, recs []record.MatchRecord) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tPLAYER\tFLEET\tTARGET\tOUTCOME\tSHOTS\tHITS\tFILE")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%d\t%d\t%s\n",
			r.Date, r.Player, r.OwnLayout, r.OpponentLayout, r.Outcome,
			r.Tally.ShotsFired, r.Tally.Hits, r.FilePath)
	}
	return w.Flush()
}

func browseRecords(dir string) error {
	app := tview.NewApplication()
	browser := ui.NewHistoryBrowser(dir, app.Stop)
	return app.SetRoot(browser.Flex(), true).Run()
}

func init() {
	recordsCmd.Flags().BoolVarP(&flagBrowse, "browse", "b", false, "Browse records with board previews")
}

// cmd/list.go
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all batch requests",
	Long: `Shows every tracked batch request, most recent first, after refreshing
statuses from the API. A refresh failure is reported as a warning and
the locally cached statuses are shown instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}

		svc, _, err := newService()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		records, warn := svc.RefreshAll(cmd.Context())
		if warn != nil {
			warnf("could not refresh statuses: %v", warn)
		}

		if len(records) == 0 {
			dimColor.Println("No batch requests found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()

		headerColor.Fprintln(w, "REQUEST ID\tBATCH ID\tSTATUS\tCREATED\tCOMPLETED\tPROMPT")
		for i := len(records) - 1; i >= 0; i-- {
			rec := records[i]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				rec.RequestID,
				runewidth.Truncate(rec.BatchID, 23, "..."),
				statusSprint(rec.Status),
				formatCreatedAt(rec.CreatedAt),
				formatUnixTime(rec.CompletedAt),
				promptPreview(rec.Prompt, 40),
			)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

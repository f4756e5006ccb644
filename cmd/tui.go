// cmd/tui.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/regismesquita/oaibatch/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive interface",
	Long: `Opens a full-screen interface for browsing batch requests, submitting
new ones, and reading responses as they complete.`,
	Run: func(cmd *cobra.Command, args []string) {
		svc, cfg, err := newService()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := tui.Run(svc, priceTable(), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// cmd/read.go
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/regismesquita/oaibatch/internal/batch"
	"github.com/regismesquita/oaibatch/internal/store"
	"github.com/regismesquita/oaibatch/internal/ui"
)

var readResponseOnly bool

var readCmd = &cobra.Command{
	Use:   "read <request-id|batch-id>",
	Short: "Read batch request results",
	Long: `Shows a batch request and, once the batch has completed, its extracted
response. The key may be either the local request ID or the remote
batch ID. Extracted responses are cached locally; later reads do not
hit the API again.`,
	Example: `  oaibatch read req-abc12345
  oaibatch read batch_abc123

  # Just the response text, for pipelines
  oaibatch read req-abc12345 --response-only | wc -w`,
	Args: cobra.ExactArgs(1),
	Run:  runRead,
}

func runRead(cmd *cobra.Command, args []string) {
	if noColor {
		color.NoColor = true
	}

	svc, _, err := newService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	key := args[0]

	if readResponseOnly {
		// Pipeline mode: nothing but the response text on stdout.
		svc.Refresh(cmd.Context(), key)
		_, resp, err := svc.FetchResponse(cmd.Context(), key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(resp.Text)
		return
	}

	rec, err := svc.Find(key)
	if errors.Is(err, batch.ErrNotFound) {
		badColor.Fprintf(os.Stderr, "Request not found: %s\n", key)
		os.Exit(1)
	}

	if refreshed, err := svc.Refresh(cmd.Context(), key); err != nil {
		warnf("could not fetch batch status: %v", err)
	} else {
		rec = refreshed
	}

	printRecordDetails(rec)

	spin := ui.NewSpinner()
	if rec.Response == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		spin.Start("Fetching response...")
	}
	rec, resp, err := svc.FetchResponse(cmd.Context(), key)
	spin.Stop()

	if err != nil {
		printReadOutcome(err)
		return
	}

	fmt.Println()
	if resp.Cached {
		headerColor.Println("Response (cached)")
	} else {
		headerColor.Println("Response")
	}
	fmt.Println(resp.Text)
	if resp.Note != "" {
		badColor.Printf("Error: %s\n", resp.Note)
	}

	usage := resp.Usage
	if usage == nil {
		usage = rec.Usage
	}
	printUsage(usage, rec)
}

func printRecordDetails(rec store.Record) {
	headerColor.Println("Request Details")
	fmt.Printf("  %s %s\n", labelColor.Sprint("Request ID:"), rec.RequestID)
	fmt.Printf("  %s %s\n", labelColor.Sprint("Batch ID:  "), rec.BatchID)
	fmt.Printf("  %s %s\n", labelColor.Sprint("Status:    "), statusSprint(rec.Status))
	fmt.Printf("  %s %s\n", labelColor.Sprint("Model:     "), rec.Model)
	fmt.Printf("  %s %s\n", labelColor.Sprint("Created:   "), formatCreatedAt(rec.CreatedAt))
	fmt.Printf("  %s %s\n", labelColor.Sprint("Completed: "), formatUnixTime(rec.CompletedAt))
	fmt.Printf("\n  %s\n  %s\n", labelColor.Sprint("System Prompt:"), rec.SystemPrompt)
	fmt.Printf("\n  %s\n  %s\n", labelColor.Sprint("User Prompt:"), rec.Prompt)
}

// printReadOutcome distinguishes "still processing" from true errors.
func printReadOutcome(err error) {
	var notReady *batch.NotReadyError
	if errors.As(err, &notReady) {
		if store.IsProcessingStatus(notReady.Status) {
			warnColor.Printf("\nBatch is still processing. Status: %s\n", notReady.Status)
			dimColor.Println("Run 'oaibatch read' again later to check for results.")
			return
		}
		badColor.Printf("\nBatch %s. No results available.\n", notReady.Status)
		return
	}
	badColor.Fprintf(os.Stderr, "\nError fetching response: %v\n", err)
	os.Exit(1)
}

func init() {
	readCmd.Flags().BoolVarP(&readResponseOnly, "response-only", "r", false, "Output only the response text (for piping)")
	rootCmd.AddCommand(readCmd)
}

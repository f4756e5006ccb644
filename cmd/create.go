// cmd/create.go
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/regismesquita/oaibatch/internal/batch"
	"github.com/regismesquita/oaibatch/internal/config"
	"github.com/regismesquita/oaibatch/internal/ui"
)

var (
	createSystem    string
	createMaxTokens int
	createModel     string
	createEffort    string
	createEdit      bool
)

var createCmd = &cobra.Command{
	Use:   "create [prompt]",
	Short: "Create a new batch request",
	Long: `Submits a prompt as a batch job. The prompt comes from the argument,
from stdin when piped, or from an interactive editor when run at a
terminal with no argument.`,
	Example: `  # Submit a prompt directly
  oaibatch create "Explain quantum computing"

  # Custom system prompt and budget
  oaibatch create "Summarize this" --system "You are an editor" --max-tokens 5000

  # Pipe the prompt in
  cat notes.txt | oaibatch create

  # Open an editor for a longer prompt
  oaibatch create --edit`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCreate,
}

func runCreate(cmd *cobra.Command, args []string) {
	svc, cfg, err := newService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	prompt, err := resolvePrompt(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "Error: empty prompt")
		os.Exit(1)
	}

	params := batch.CreateParams{
		Prompt:          prompt,
		SystemPrompt:    createSystem,
		Model:           createModel,
		MaxTokens:       createMaxTokens,
		ReasoningEffort: config.NormalizeReasoningEffort(createEffort),
	}
	if params.SystemPrompt == "" {
		params.SystemPrompt = cfg.SystemPrompt
	}
	if params.Model == "" {
		params.Model = cfg.Model
	}
	if params.MaxTokens <= 0 {
		params.MaxTokens = cfg.MaxTokens
	}
	if !cmd.Flags().Changed("effort") {
		params.ReasoningEffort = config.NormalizeReasoningEffort(cfg.ReasoningEffort)
	}

	spin := ui.NewSpinner()
	if term.IsTerminal(int(os.Stdout.Fd())) {
		spin.Start("Uploading batch file...")
		defer spin.Stop()
	}

	rec, err := svc.Create(cmd.Context(), params)
	spin.Stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	goodColor.Println("Batch created successfully!")
	fmt.Printf("  %s %s\n", labelColor.Sprint("Request ID:"), rec.RequestID)
	fmt.Printf("  %s %s\n", labelColor.Sprint("Batch ID:  "), rec.BatchID)
	fmt.Printf("  %s %s\n", labelColor.Sprint("Status:    "), statusSprint(rec.Status))
	fmt.Printf("  %s %s\n", labelColor.Sprint("Model:     "), rec.Model)
}

// resolvePrompt picks the prompt source: argument, interactive editor,
// or piped stdin, in that order.
func resolvePrompt(args []string) (string, error) {
	if len(args) > 0 && !createEdit {
		return strings.TrimSpace(args[0]), nil
	}

	stdinIsTerminal := term.IsTerminal(int(os.Stdin.Fd()))
	if createEdit || stdinIsTerminal {
		var prompt string
		err := survey.AskOne(&survey.Multiline{Message: "Enter your prompt:"}, &prompt)
		if err != nil {
			return "", fmt.Errorf("prompt input canceled: %w", err)
		}
		return strings.TrimSpace(prompt), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func init() {
	createCmd.Flags().StringVarP(&createSystem, "system", "s", "", "System prompt")
	createCmd.Flags().IntVarP(&createMaxTokens, "max-tokens", "m", 0, "Max output tokens")
	createCmd.Flags().StringVar(&createModel, "model", "", "Model to use")
	createCmd.Flags().StringVar(&createEffort, "effort", "", "Reasoning effort (none, low, medium, high, xhigh)")
	createCmd.Flags().BoolVarP(&createEdit, "edit", "e", false, "Enter the prompt interactively")
	rootCmd.AddCommand(createCmd)
}

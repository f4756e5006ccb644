// cmd/root.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

var cfgFile string
var baseURL string
var debugMode bool
var noColor bool

// debugLogFile is the file handle for debug logging
var debugLogFile *os.File
var debugLogMu sync.Mutex
var debugLogInitOnce sync.Once

// initDebugLogFile initializes the debug log file
func initDebugLogFile() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return
	}

	logDir := filepath.Join(homeDir, ".oaibatch", "logs")
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return
	}

	logPath := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return
	}

	debugLogFile = f

	// Write session header
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(debugLogFile, "\n=== Debug session started: %s ===\n", timestamp)
}

// Debug prints a message if debug mode is enabled and writes to log file
func Debug(format string, args ...interface{}) {
	if debugMode {
		timestamp := time.Now().Format("2006-01-02 15:04:05.000")
		msg := fmt.Sprintf(format, args...)

		// Print to console
		fmt.Printf("[DEBUG] %s\n", msg)

		// Write to file with timestamp
		debugLogMu.Lock()
		debugLogInitOnce.Do(initDebugLogFile)
		if debugLogFile != nil {
			fmt.Fprintf(debugLogFile, "[%s] %s\n", timestamp, msg)
		}
		debugLogMu.Unlock()
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "oaibatch",
	Short: "oaibatch submits and tracks OpenAI Batch API requests",
	Long: `A CLI for long-running text generation over the OpenAI Batch API.
Submit a prompt as a batch job, check on it later, and read the answer
once the batch completes. Requests are tracked locally under ~/.oaibatch.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			// Log the full command that was run
			fullCmd := "oaibatch"
			if cmd.Name() != "oaibatch" {
				fullCmd += " " + cmd.Name()
			}
			cmd.Flags().Visit(func(f *pflag.Flag) {
				if f.Name == "debug" {
					return // Skip the debug flag itself
				}
				if f.Value.Type() == "bool" {
					fullCmd += " --" + f.Name
				} else {
					fullCmd += " --" + f.Name + "=" + f.Value.String()
				}
			})
			if len(args) > 0 {
				fullCmd += " " + strings.Join(args, " ")
			}
			Debug("command: %s", fullCmd)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.oaibatch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", getEnvOrDefault("OPENAI_BASE_URL", ""), "OpenAI API base URL")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

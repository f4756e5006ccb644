// cmd/helpers.go
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/regismesquita/oaibatch/internal/batch"
	"github.com/regismesquita/oaibatch/internal/config"
	"github.com/regismesquita/oaibatch/internal/openai"
	"github.com/regismesquita/oaibatch/internal/pricing"
	"github.com/regismesquita/oaibatch/internal/store"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	goodColor   = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	badColor    = color.New(color.FgRed)
	infoColor   = color.New(color.FgBlue)
	labelColor  = color.New(color.Bold)
	dimColor    = color.New(color.Faint)
)

// loadConfig reads the config file (honoring --config) and applies the
// --base-url override.
func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return cfg, nil
}

// newService wires the store, API client and batch service for a
// command invocation.
func newService() (*batch.Service, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}

	apiKey, err := config.APIKey()
	if err != nil {
		return nil, cfg, err
	}

	storePath, err := store.DefaultPath()
	if err != nil {
		return nil, cfg, err
	}

	client := openai.NewClient(apiKey, cfg.BaseURL)
	svc := batch.NewService(store.New(storePath), client)
	return svc, cfg, nil
}

// statusSprint renders a batch status with its conventional color.
func statusSprint(status string) string {
	switch status {
	case store.StatusCompleted:
		return goodColor.Sprint(status)
	case store.StatusInProgress, store.StatusFinalizing:
		return warnColor.Sprint(status)
	case store.StatusValidating:
		return infoColor.Sprint(status)
	case store.StatusFailed, store.StatusExpired:
		return badColor.Sprint(status)
	case store.StatusCancelled:
		return dimColor.Sprint(status)
	}
	return status
}

func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatUnixTime(sec int64) string {
	if sec == 0 {
		return "-"
	}
	return time.Unix(sec, 0).Format("2006-01-02 15:04:05")
}

// priceTable returns the price table used for cost display.
func priceTable() pricing.Table {
	return pricing.Default
}

// printUsage prints the token summary and, when the price table knows
// the model, the estimated cost.
func printUsage(usage *store.Usage, rec store.Record) {
	if usage == nil {
		return
	}
	total := usage.TotalTokens
	if total == 0 {
		total = usage.InputTokens + usage.OutputTokens
	}
	dimColor.Printf("\nTokens: %d input + %d output = %d total\n",
		usage.InputTokens, usage.OutputTokens, total)

	if est, ok := priceTable().Estimate(usage, rec.Model); ok {
		dimColor.Printf("Estimated cost: $%.4f input + $%.4f output = $%.4f\n",
			est.Input, est.Output, est.Total)
	}
}

// promptPreview flattens a prompt to one line and truncates it for
// table display.
func promptPreview(prompt string, width int) string {
	return runewidth.Truncate(strings.Join(strings.Fields(prompt), " "), width, "...")
}

func warnf(format string, args ...interface{}) {
	warnColor.Println("Warning: " + fmt.Sprintf(format, args...))
}

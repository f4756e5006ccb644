package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/regismesquita/oaibatch/internal/batch"
	"github.com/regismesquita/oaibatch/internal/store"
)

func (m Model) View() string {
	var b strings.Builder

	switch m.view {
	case viewList:
		b.WriteString(m.viewListScreen())
	case viewCreate:
		b.WriteString(m.viewCreateScreen())
	case viewDetail:
		b.WriteString(m.viewDetailScreen())
	}

	if m.busy {
		b.WriteString("\n" + m.spin.View() + mutedStyle.Render(m.busyWhat))
	} else if m.statusLine != "" {
		b.WriteString("\n" + m.statusLine)
	}
	return b.String()
}

func (m Model) viewListScreen() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("oaibatch — Batch Requests") + "\n")

	if len(m.records) == 0 {
		b.WriteString(mutedStyle.Render("No batch requests yet. Press n to create one.") + "\n")
	}

	for i := range m.records {
		rec := m.displayRecord(i)
		marker := "  "
		line := fmt.Sprintf("%-13s %-12s %-20s %s",
			rec.RequestID,
			rec.Status,
			formatCreated(rec.CreatedAt),
			truncate(rec.Prompt, 40),
		)
		if i == m.cursor {
			marker = selectedStyle.Render("> ")
			b.WriteString(marker + selectedStyle.Render(line) + "\n")
			continue
		}
		// Re-render the status portion with its color when unselected.
		styled := fmt.Sprintf("%-13s %s %-20s %s",
			rec.RequestID,
			statusStyle(rec.Status).Render(fmt.Sprintf("%-12s", rec.Status)),
			formatCreated(rec.CreatedAt),
			truncate(rec.Prompt, 40),
		)
		b.WriteString(marker + styled + "\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move · enter read · n new · r refresh · q quit"))
	return b.String()
}

func (m Model) viewCreateScreen() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New Batch Request") + "\n")

	b.WriteString(labelStyle.Render("Prompt") + "\n")
	b.WriteString(m.form.prompt.View() + "\n\n")
	b.WriteString(labelStyle.Render("System prompt") + " " + m.form.system.View() + "\n")
	b.WriteString(labelStyle.Render("Max tokens   ") + " " + m.form.maxTokens.View() + "\n")
	b.WriteString(labelStyle.Render("Effort       ") + " " + m.form.effort.View() + "\n")
	b.WriteString(labelStyle.Render("Model        ") + " " + m.form.model.View() + "\n")

	b.WriteString(helpStyle.Render("tab next field · ctrl+s submit · esc cancel"))
	return b.String()
}

func (m Model) viewDetailScreen() string {
	rec := m.detail
	var b strings.Builder
	b.WriteString(titleStyle.Render("Request " + rec.RequestID) + "\n")

	info := strings.Join([]string{
		labelStyle.Render("Batch ID:  ") + valueStyle.Render(rec.BatchID),
		labelStyle.Render("Status:    ") + statusStyle(rec.Status).Render(rec.Status),
		labelStyle.Render("Model:     ") + valueStyle.Render(rec.Model),
		labelStyle.Render("Created:   ") + valueStyle.Render(formatCreated(rec.CreatedAt)),
		labelStyle.Render("Completed: ") + valueStyle.Render(formatUnix(rec.CompletedAt)),
	}, "\n")
	b.WriteString(panelStyle.Render(info) + "\n\n")

	b.WriteString(labelStyle.Render("Prompt") + "\n" + truncate(rec.Prompt, 500) + "\n\n")

	switch {
	case m.busy:
		// spinner line rendered by View
	case m.haveResp:
		title := "Response"
		if m.response.Cached {
			title = "Response (cached)"
		}
		b.WriteString(labelStyle.Render(title) + "\n")
		b.WriteString(panelStyle.Width(m.panelWidth()).Render(m.response.Text) + "\n")
		if m.response.Note != "" {
			b.WriteString(errorStyle.Render("Error: "+m.response.Note) + "\n")
		}
		b.WriteString(m.usageLine(rec))
	case m.fetchErr != nil:
		b.WriteString(renderFetchErr(m.fetchErr))
	}

	b.WriteString(helpStyle.Render("r retry · esc back"))
	return b.String()
}

func (m Model) usageLine(rec store.Record) string {
	usage := m.response.Usage
	if usage == nil {
		usage = rec.Usage
	}
	if usage == nil {
		return ""
	}
	line := fmt.Sprintf("Tokens: %d input + %d output", usage.InputTokens, usage.OutputTokens)
	if est, ok := m.prices.Estimate(usage, rec.Model); ok {
		line += fmt.Sprintf(" · Cost: $%.4f in + $%.4f out = $%.4f", est.Input, est.Output, est.Total)
	}
	return mutedStyle.Render(line) + "\n"
}

func renderFetchErr(err error) string {
	// "Still processing" is progress information, not a failure.
	if status := errStatus(err); store.IsProcessingStatus(status) {
		return warningStyle.Render("Still processing ("+status+"). Press r to check again.") + "\n"
	}
	return errorStyle.Render("Error: "+err.Error()) + "\n"
}

func errStatus(err error) string {
	var notReady *batch.NotReadyError
	if errors.As(err, &notReady) {
		return notReady.Status
	}
	return ""
}

// panelWidth keeps the response panel readable before a window size is
// known and on very wide terminals.
func (m Model) panelWidth() int {
	w := m.width - 2
	if w < 20 {
		return 80
	}
	if w > 100 {
		return 100
	}
	return w
}

func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, width, "...")
}

func formatCreated(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatUnix(sec int64) string {
	if sec == 0 {
		return "-"
	}
	return time.Unix(sec, 0).Format("2006-01-02 15:04:05")
}

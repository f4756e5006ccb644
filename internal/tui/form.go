package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/regismesquita/oaibatch/internal/batch"
	"github.com/regismesquita/oaibatch/internal/config"
)

const (
	focusPrompt = iota
	focusSystem
	focusMaxTokens
	focusEffort
	focusModel
	focusCount
)

// createForm is the submission form shown in the create view.
type createForm struct {
	prompt    textarea.Model
	system    textinput.Model
	maxTokens textinput.Model
	effort    textinput.Model
	model     textinput.Model
	focus     int
}

func newCreateForm(defaults config.Config) createForm {
	prompt := textarea.New()
	prompt.Placeholder = "Enter your prompt..."
	prompt.SetHeight(6)
	prompt.Focus()

	system := textinput.New()
	system.Placeholder = config.DefaultSystemPrompt
	system.SetValue(defaults.SystemPrompt)
	system.CharLimit = 512

	maxTokens := textinput.New()
	maxTokens.SetValue(strconv.Itoa(defaults.MaxTokens))
	maxTokens.CharLimit = 9

	effort := textinput.New()
	effort.SetValue(defaults.ReasoningEffort)
	effort.CharLimit = 16

	model := textinput.New()
	model.SetValue(defaults.Model)
	model.CharLimit = 64

	return createForm{
		prompt:    prompt,
		system:    system,
		maxTokens: maxTokens,
		effort:    effort,
		model:     model,
	}
}

func (f *createForm) cycleFocus(backward bool) {
	step := 1
	if backward {
		step = focusCount - 1
	}
	f.focus = (f.focus + step) % focusCount

	f.prompt.Blur()
	f.system.Blur()
	f.maxTokens.Blur()
	f.effort.Blur()
	f.model.Blur()
	switch f.focus {
	case focusPrompt:
		f.prompt.Focus()
	case focusSystem:
		f.system.Focus()
	case focusMaxTokens:
		f.maxTokens.Focus()
	case focusEffort:
		f.effort.Focus()
	case focusModel:
		f.model.Focus()
	}
}

func (f *createForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case focusPrompt:
		f.prompt, cmd = f.prompt.Update(msg)
	case focusSystem:
		f.system, cmd = f.system.Update(msg)
	case focusMaxTokens:
		f.maxTokens, cmd = f.maxTokens.Update(msg)
	case focusEffort:
		f.effort, cmd = f.effort.Update(msg)
	case focusModel:
		f.model, cmd = f.model.Update(msg)
	}
	return cmd
}

// params converts the form into submission parameters. ok is false when
// the prompt is empty.
func (f *createForm) params(defaults config.Config) (batch.CreateParams, bool) {
	prompt := strings.TrimSpace(f.prompt.Value())
	if prompt == "" {
		return batch.CreateParams{}, false
	}

	system := strings.TrimSpace(f.system.Value())
	if system == "" {
		system = defaults.SystemPrompt
	}
	model := strings.TrimSpace(f.model.Value())
	if model == "" {
		model = defaults.Model
	}
	maxTokens, err := strconv.Atoi(strings.TrimSpace(f.maxTokens.Value()))
	if err != nil || maxTokens <= 0 {
		maxTokens = defaults.MaxTokens
	}

	return batch.CreateParams{
		Prompt:          prompt,
		SystemPrompt:    system,
		Model:           model,
		MaxTokens:       maxTokens,
		ReasoningEffort: config.NormalizeReasoningEffort(f.effort.Value()),
	}, true
}

func (f *createForm) reset(defaults config.Config) {
	*f = newCreateForm(defaults)
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/regismesquita/oaibatch/internal/batch"
	"github.com/regismesquita/oaibatch/internal/config"
	"github.com/regismesquita/oaibatch/internal/pricing"
	"github.com/regismesquita/oaibatch/internal/store"
)

type view int

const (
	viewList view = iota
	viewCreate
	viewDetail
)

// Model is the bubbletea model for the whole application.
type Model struct {
	svc      *batch.Service
	prices   pricing.Table
	defaults config.Config

	view   view
	width  int
	height int

	// busy serializes remote work: while true, no new remote command
	// is issued, so only one operation is ever in flight.
	busy     bool
	busyWhat string
	spin     spinner.Model

	statusLine string

	// list view
	records []store.Record
	cursor  int

	// create view
	form createForm

	// detail view
	detail   store.Record
	response batch.Response
	haveResp bool
	fetchErr error
}

// NewModel builds the initial model. Records are loaded from disk
// immediately; the remote refresh happens as the first command.
func NewModel(svc *batch.Service, prices pricing.Table, defaults config.Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedStyle

	return Model{
		svc:      svc,
		prices:   prices,
		defaults: defaults,
		spin:     sp,
		form:     newCreateForm(defaults),
		// Init always kicks off a refresh, so the model starts busy;
		// Update receives copies, so the flag has to be set here.
		busy:     true,
		busyWhat: "Refreshing statuses...",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, refreshCmd(m.svc))
}

func (m *Model) startRefresh() tea.Cmd {
	m.busy = true
	m.busyWhat = "Refreshing statuses..."
	return refreshCmd(m.svc)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.form.prompt.SetWidth(min(msg.Width-8, 100))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case recordsMsg:
		m.busy = false
		m.records = msg.records
		if m.cursor >= len(m.records) {
			m.cursor = max(len(m.records)-1, 0)
		}
		if msg.warn != nil {
			m.statusLine = warningStyle.Render("Warning: " + msg.warn.Error())
		} else {
			m.statusLine = ""
		}
		return m, nil

	case createdMsg:
		m.busy = false
		if msg.err != nil {
			m.statusLine = errorStyle.Render("Error: " + msg.err.Error())
			return m, nil
		}
		m.statusLine = fmt.Sprintf("Created %s (%s)", msg.rec.RequestID, msg.rec.Status)
		m.form.reset(m.defaults)
		m.view = viewList
		return m, m.startRefresh()

	case responseMsg:
		m.busy = false
		m.detail = msg.rec
		m.response = msg.resp
		m.haveResp = msg.err == nil
		m.fetchErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.view == viewCreate {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case viewList:
		return m.handleListKey(msg)
	case viewCreate:
		return m.handleCreateKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case "r":
		if !m.busy {
			return m, m.startRefresh()
		}
	case "n", "c":
		m.view = viewCreate
		m.statusLine = ""
	case "enter":
		if m.busy || len(m.records) == 0 {
			return m, nil
		}
		rec := m.displayRecord(m.cursor)
		m.detail = rec
		m.response = batch.Response{}
		m.haveResp = false
		m.fetchErr = nil
		m.view = viewDetail
		m.busy = true
		m.busyWhat = "Fetching response..."
		return m, fetchCmd(m.svc, rec.RequestID)
	}
	return m, nil
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewList
		return m, nil
	case "tab":
		m.form.cycleFocus(false)
		return m, nil
	case "shift+tab":
		m.form.cycleFocus(true)
		return m, nil
	case "ctrl+s":
		if m.busy {
			return m, nil
		}
		params, ok := m.form.params(m.defaults)
		if !ok {
			m.statusLine = errorStyle.Render("Error: empty prompt")
			return m, nil
		}
		m.busy = true
		m.busyWhat = "Submitting batch..."
		return m, createCmd(m.svc, params)
	}
	return m, m.form.update(msg)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.view = viewList
		if m.busy {
			return m, nil
		}
		return m, m.startRefresh()
	case "r":
		if !m.busy {
			m.busy = true
			m.busyWhat = "Fetching response..."
			return m, fetchCmd(m.svc, m.detail.RequestID)
		}
	}
	return m, nil
}

// displayRecord maps a list cursor position to a record; the list is
// rendered newest first while the store keeps insertion order.
func (m Model) displayRecord(cursor int) store.Record {
	return m.records[len(m.records)-1-cursor]
}

// Run starts the interactive interface and blocks until it exits.
func Run(svc *batch.Service, prices pricing.Table, defaults config.Config) error {
	p := tea.NewProgram(NewModel(svc, prices, defaults), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

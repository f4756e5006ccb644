package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/regismesquita/oaibatch/internal/batch"
	"github.com/regismesquita/oaibatch/internal/store"
)

// Result messages delivered back to the update loop. Remote calls run
// inside tea.Cmd goroutines; the model only reacts to these messages,
// and the busy flag keeps a single remote operation in flight at a
// time, so store mutations never overlap.

type recordsMsg struct {
	records []store.Record
	warn    error
}

type createdMsg struct {
	rec *store.Record
	err error
}

type responseMsg struct {
	rec  store.Record
	resp batch.Response
	err  error
}

func refreshCmd(svc *batch.Service) tea.Cmd {
	return func() tea.Msg {
		records, warn := svc.RefreshAll(context.Background())
		return recordsMsg{records: records, warn: warn}
	}
}

func createCmd(svc *batch.Service, params batch.CreateParams) tea.Cmd {
	return func() tea.Msg {
		rec, err := svc.Create(context.Background(), params)
		return createdMsg{rec: rec, err: err}
	}
}

func fetchCmd(svc *batch.Service, key string) tea.Cmd {
	return func() tea.Msg {
		// Bring the record current first; a failed refresh is not fatal,
		// the cached status still drives the precondition checks.
		svc.Refresh(context.Background(), key)
		rec, resp, err := svc.FetchResponse(context.Background(), key)
		return responseMsg{rec: rec, resp: resp, err: err}
	}
}

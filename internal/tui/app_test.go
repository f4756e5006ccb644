package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/regismesquita/oaibatch/internal/batch"
	"github.com/regismesquita/oaibatch/internal/config"
	"github.com/regismesquita/oaibatch/internal/openai"
	"github.com/regismesquita/oaibatch/internal/pricing"
	"github.com/regismesquita/oaibatch/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "requests.json"))
	// The client is never exercised: these tests feed messages into
	// Update directly instead of running commands.
	svc := batch.NewService(st, openai.NewClient("sk-test", "http://127.0.0.1:1"))
	return NewModel(svc, pricing.Default, config.Default())
}

func TestInitialRefreshBlocksRemoteKeys(t *testing.T) {
	m := newTestModel(t)
	if !m.busy {
		t.Fatal("fresh model not marked busy for the startup refresh")
	}

	// While the startup refresh is in flight, neither a manual refresh
	// nor opening a record may start a second remote operation.
	m.records = []store.Record{{RequestID: "req-1", Status: store.StatusCompleted}}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd != nil {
		t.Error("r issued a command during the startup refresh")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter issued a command during the startup refresh")
	}
}

func TestDetailEscWhileBusySkipsRefresh(t *testing.T) {
	m := newTestModel(t)
	m.view = viewDetail
	m.detail = store.Record{RequestID: "req-1"}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model := updated.(Model)
	if model.view != viewList {
		t.Errorf("view = %v, want viewList", model.view)
	}
	if cmd != nil {
		t.Error("esc issued a refresh while a fetch was in flight")
	}
}

func TestRecordsMsgPopulatesList(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(recordsMsg{records: []store.Record{
		{RequestID: "req-1", Status: store.StatusInProgress},
		{RequestID: "req-2", Status: store.StatusCompleted},
	}})
	model := updated.(Model)

	if len(model.records) != 2 {
		t.Fatalf("records = %d, want 2", len(model.records))
	}
	if model.busy {
		t.Error("busy flag not cleared")
	}
	// Newest last in the store, newest first on screen.
	if got := model.displayRecord(0).RequestID; got != "req-2" {
		t.Errorf("top of list = %q, want req-2", got)
	}
}

func TestRecordsMsgWarningShown(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(recordsMsg{warn: errors.New("connection refused")})
	model := updated.(Model)
	if model.statusLine == "" {
		t.Error("refresh warning not surfaced")
	}
}

func TestListNavigationBounds(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(recordsMsg{records: []store.Record{
		{RequestID: "req-1"}, {RequestID: "req-2"},
	}})
	model := updated.(Model)

	// Up at the top stays put.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model = updated.(Model)
	if model.cursor != 0 {
		t.Errorf("cursor = %d after up at top", model.cursor)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(Model)
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(Model)
	if model.cursor != 1 {
		t.Errorf("cursor = %d, want 1 (clamped)", model.cursor)
	}
}

func TestCreateKeySwitchesView(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(recordsMsg{})
	model := updated.(Model)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	model = updated.(Model)
	if model.view != viewCreate {
		t.Errorf("view = %v, want viewCreate", model.view)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = updated.(Model)
	if model.view != viewList {
		t.Errorf("view = %v, want viewList after esc", model.view)
	}
}

func TestResponseMsgStillProcessingShownAsStatus(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(responseMsg{
		rec: store.Record{RequestID: "req-1", Status: store.StatusInProgress},
		err: &batch.NotReadyError{Status: store.StatusInProgress},
	})
	model := updated.(Model)
	model.view = viewDetail

	out := model.View()
	if !strings.Contains(out, "Still processing") {
		t.Errorf("detail view does not show processing state:\n%s", out)
	}
}

func TestFormParamsValidation(t *testing.T) {
	defaults := config.Default()
	form := newCreateForm(defaults)

	if _, ok := form.params(defaults); ok {
		t.Error("empty prompt accepted")
	}

	form.prompt.SetValue("what is the answer")
	form.maxTokens.SetValue("not-a-number")
	form.effort.SetValue("NONE")
	params, ok := form.params(defaults)
	if !ok {
		t.Fatal("valid prompt rejected")
	}
	if params.MaxTokens != defaults.MaxTokens {
		t.Errorf("MaxTokens = %d, want default on parse failure", params.MaxTokens)
	}
	if params.ReasoningEffort != "" {
		t.Errorf("ReasoningEffort = %q, want disabled", params.ReasoningEffort)
	}
	if params.Model != defaults.Model {
		t.Errorf("Model = %q, want default", params.Model)
	}
}

package grid

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/gridkit/table"
)

var testColumns = []table.Column{
	{ID: "id", Header: "ID", Width: 4, CanSort: true, CanPin: true},
	{ID: "name", Header: "Name", Width: 8, CanSort: true, CanPin: true},
	{ID: "price", Header: "Price", Width: 6, CanSort: true, CanPin: true},
}

func testRows(n int) []table.Row {
	rows := make([]table.Row, n)
	for i := range rows {
		rows[i] = table.Row{
			ID: fmt.Sprintf("r%d", i),
			Values: map[string]any{
				"id":    i,
				"name":  fmt.Sprintf("item %d", i),
				"price": float64(10 + i),
			},
		}
	}
	return rows
}

func newTestTable(n int) *table.Table {
	return table.New(testColumns, testRows(n), table.Options{})
}

// recorder captures host notifications.
type recorder struct {
	selections [][]table.Row
	saves      [][]PendingChange
	cancels    int
	toggles    int
	exports    []ExportEvent
}

func (r *recorder) config(cfg Config) Config {
	cfg.OnSelection = func(rows []table.Row) { r.selections = append(r.selections, rows) }
	cfg.OnSaveChanges = func(c []PendingChange) { r.saves = append(r.saves, c) }
	cfg.OnCancelChanges = func() { r.cancels++ }
	cfg.OnToggleReadOnly = func() { r.toggles++ }
	cfg.OnExport = func(ev ExportEvent) { r.exports = append(r.exports, ev) }
	return cfg
}

func (r *recorder) lastSelectionIDs(t *testing.T) []string {
	t.Helper()
	if len(r.selections) == 0 {
		t.Fatalf("no selection notification")
	}
	return rowIDs(r.selections[len(r.selections)-1])
}

func rowIDs(rows []table.Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

type memStorage struct {
	m      map[string]string
	getErr error
	setErr error
	sets   int
}

func newMemStorage() *memStorage { return &memStorage{m: map[string]string{}} }

func (s *memStorage) Get(key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memStorage) Set(key, value string) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.m[key] = value
	return nil
}

var errUnavailable = errors.New("storage unavailable")

// logBuffer collects slog output for assertions.
type logBuffer struct {
	strings.Builder
}

func (b *logBuffer) logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(b, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// staleTable fails every selection read-back.
type staleTable struct {
	*table.Table
}

func (staleTable) SelectedRows() ([]table.Row, error) {
	return nil, table.ErrStaleSelection
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case "ctrl+e":
		return tea.KeyMsg{Type: tea.KeyCtrlE}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+w":
		return tea.KeyMsg{Type: tea.KeyCtrlW}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// controllers builds the controller graph the way New does, without a Model.
type controllers struct {
	store      *Store
	keys       *KeyScope
	selection  *SelectionController
	editing    *EditingController
	pinning    *PinningController
	pagination *PaginationController
	search     *SearchController
	cells      *CellRenderer
}

func newControllers(tbl Table, cfg Config) controllers {
	m := New(tbl, cfg)
	e := m.e
	return controllers{
		store:      e.store,
		keys:       e.keys,
		selection:  e.selection,
		editing:    e.editing,
		pinning:    e.pinning,
		pagination: e.pagination,
		search:     e.search,
		cells:      e.cells,
	}
}

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/gridkit/export"
	"github.com/iw2rmb/gridkit/grid"
	"github.com/iw2rmb/gridkit/table"
)

// backend persists saved changes and reloads rows.
type backend interface {
	Apply(changes []grid.PendingChange) error
	Load(cols []table.Column) ([]table.Row, error)
}

type appKeys struct {
	Quit       key.Binding
	Search     key.Binding
	ExportCSV  key.Binding
	ExportXLSX key.Binding
}

var keys = appKeys{
	Quit:       key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	Search:     key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "search")),
	ExportCSV:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "export csv")),
	ExportXLSX: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "export xlsx")),
}

// appState collects grid notifications. The grid calls back synchronously
// from Update, so the callbacks only record what happened.
type appState struct {
	status string
	err    bool
}

func (s *appState) set(err bool, format string, args ...any) {
	s.status = fmt.Sprintf(format, args...)
	s.err = err
}

type app struct {
	grid   grid.Model
	tbl    *table.Table
	state  *appState
	search textinput.Model

	searching bool
}

func newApp(tbl *table.Table, b backend, cols []table.Column, cfg grid.Config, exportDir string, log *slog.Logger) app {
	state := &appState{}

	cfg.OnSaveChanges = func(changes []grid.PendingChange) {
		if err := b.Apply(changes); err != nil {
			log.Error("saving changes", "changes", len(changes), "error", err)
			state.set(true, "save failed: %v", err)
			return
		}
		rows, err := b.Load(cols)
		if err != nil {
			log.Error("reloading rows", "error", err)
			state.set(true, "reload failed: %v", err)
			return
		}
		tbl.SetData(rows)
		log.Info("saved changes", "changes", len(changes))
		state.set(false, "saved %d changes", len(changes))
	}
	cfg.OnCancelChanges = func() { state.set(false, "changes discarded") }
	cfg.OnSelection = func(rows []table.Row) {
		log.Debug("selection changed", "rows", len(rows))
		state.set(false, "%d rows selected", len(rows))
	}
	cfg.OnExport = func(ev grid.ExportEvent) {
		path, err := export.WriteFile(exportDir, "gridkit-export", ev)
		if err != nil {
			log.Error("exporting rows", "format", ev.Format, "error", err)
			state.set(true, "export failed: %v", err)
			return
		}
		state.set(false, "exported %d rows to %s", len(ev.Rows), path)
	}

	search := textinput.New()
	search.Prompt = "search: "

	return app{
		grid:   grid.New(tbl, cfg),
		tbl:    tbl,
		state:  state,
		search: search,
	}
}

func (a app) Init() tea.Cmd { return a.grid.Init() }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.grid = a.grid.SetSize(msg.Width, max(msg.Height-1, 0))
		a.search.Width = max(msg.Width-len(a.search.Prompt)-1, 1)
		return a, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return a, tea.Quit
		}
		if a.searching {
			return a.updateSearch(msg)
		}
		switch {
		case key.Matches(msg, keys.Search):
			if a.grid.Search().Field() == "" {
				a.state.set(true, "no search field configured")
				return a, nil
			}
			a.searching = true
			a.search.SetValue(a.grid.Search().Query())
			a.search.CursorEnd()
			return a, a.search.Focus()
		case key.Matches(msg, keys.ExportCSV):
			a.grid.Export(grid.ExportCSV)
			return a, nil
		case key.Matches(msg, keys.ExportXLSX):
			a.grid.Export(grid.ExportXLSX)
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.grid, cmd = a.grid.Update(msg)
	return a, cmd
}

func (a app) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.searching = false
		a.search.Blur()
		a.grid.Search().SetQuery(strings.TrimSpace(a.search.Value()))
		return a, nil
	case tea.KeyEsc:
		a.searching = false
		a.search.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

func (a app) View() string {
	bottom := a.state.status
	if a.state.err {
		bottom = errStyle.Render(bottom)
	}
	if a.searching {
		bottom = a.search.View()
	}
	return a.grid.View() + "\n" + bottom
}

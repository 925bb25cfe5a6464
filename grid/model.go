package grid

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/gridkit/table"
)

// Model is a Bubble Tea component that renders and interacts with a Table.
//
// Model values share one engine: copies returned from Update observe and
// mutate the same grid state.
type Model struct {
	cfg Config
	e   *engine
}

type engine struct {
	store      *Store
	keys       *KeyScope
	selection  *SelectionController
	editing    *EditingController
	pinning    *PinningController
	pagination *PaginationController
	search     *SearchController
	cells      *CellRenderer
	n          *notifier

	km        KeyMap
	style     Style
	log       *slog.Logger
	clipboard Clipboard

	viewport viewport.Model
	help     help.Model

	width, height int
	contentWidth  int
	colOffset     int
	closed        bool
}

// New mounts a grid over tbl. Call Close when the grid is torn down.
func New(tbl Table, cfg Config) Model {
	km := cfg.keyMap()
	n := newNotifier(cfg)
	store := NewStore(tbl, cfg)
	keys := &KeyScope{}

	pagination := newPaginationController(store)
	selection := newSelectionController(store, n, km, keys, pagination.DisplayedRows)
	editing := newEditingController(store, n, km, keys, pagination.DisplayedRows, cfg.ConfirmDiscard)
	cells := newCellRenderer(cfg.Cells, tbl, editing)
	editing.clearSelection = selection.ClearSelection
	editing.focus = cells.Focus

	e := &engine{
		store:      store,
		keys:       keys,
		selection:  selection,
		editing:    editing,
		pinning:    newPinningController(store),
		pagination: pagination,
		search:     newSearchController(store, cfg.SearchField),
		cells:      cells,
		n:          n,
		km:         km,
		style:      cfg.Style,
		log:        cfg.logger(),
		clipboard:  cfg.Clipboard,
		viewport:   viewport.New(0, 0),
		help:       help.New(),

		contentWidth: cfg.contentWidth(),
	}
	store.OnScrollTop = func() { e.viewport.GotoTop() }

	selection.Mount()
	editing.Attach()

	m := Model{cfg: cfg, e: e}
	e.rebuild()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Close releases the grid's key listeners and drops any deferred layout
// flush. The Model ignores messages afterwards.
func (m Model) Close() {
	e := m.e
	if e.closed {
		return
	}
	e.selection.Unmount()
	e.editing.Detach()
	e.pinning.flush.close()
	e.cells.Blur()
	e.closed = true
}

// Closed reports whether Close was called.
func (m Model) Closed() bool { return m.e.closed }

func (m Model) Store() *Store { return m.e.store }
func (m Model) Keys() *KeyScope { return m.e.keys }
func (m Model) Selection() *SelectionController { return m.e.selection }
func (m Model) Editing() *EditingController { return m.e.editing }
func (m Model) Pinning() *PinningController { return m.e.pinning }
func (m Model) Pagination() *PaginationController { return m.e.pagination }
func (m Model) Search() *SearchController { return m.e.search }
func (m Model) Cells() *CellRenderer { return m.e.cells }
func (m Model) DisplayedRows() []table.Row { return m.e.pagination.DisplayedRows() }
func (m Model) VisibleColumns() []table.Column { return m.e.store.tbl.LeafColumns() }
func (m Model) ActiveCell() (ActiveCell, bool)        { return m.e.store.ActiveCell() }
func (m Model) PendingChanges() []PendingChange { return m.e.store.PendingChanges() }
func (m Model) ScrollTop() int { return m.e.viewport.YOffset }
func (m Model) ContentWidth() int { return m.e.gridWidth() }

func (m Model) SetSize(width, height int) Model {
	width = max(width, 0)
	height = max(height, 0)
	m.e.width = width
	m.e.height = height
	m.e.viewport.Width = m.e.gridWidth()
	m.e.viewport.Height = max(height-chromeLines, 0)
	m.e.rebuild()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	e := m.e
	if e.closed {
		return m, nil
	}
	e.sync()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case flushLayoutMsg:
		if e.pinning.flush.accept(msg) {
			e.pinning.FlushLayout()
		}
	case ModifierMsg:
		e.selection.HandleModifier(msg)
	case tea.KeyMsg:
		cmd = m.updateKey(msg)
	case tea.MouseMsg:
		cmd = m.updateMouse(msg)
	}

	e.sync()
	e.rebuild()
	return m, cmd
}

// Export emits the filtered rows and visible columns to OnExport.
func (m Model) Export(format string) {
	e := m.e
	e.n.export(ExportEvent{
		Format:  format,
		Rows:    e.store.tbl.Rows(),
		Columns: e.store.tbl.LeafColumns(),
	})
}

// CopySelection writes the selected rows to the Clipboard as tab-separated
// visible column values, one line per row.
func (m Model) CopySelection() {
	e := m.e
	if e.clipboard == nil {
		return
	}
	rows := e.selection.SelectedRows()
	if len(rows) == 0 {
		return
	}
	cols := e.store.tbl.LeafColumns()
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		fields := make([]string, len(cols))
		for i, c := range cols {
			fields[i] = formatCell(e.cells.Value(r, c.ID), e.cells.specs[c.ID])
		}
		lines = append(lines, strings.Join(fields, "\t"))
	}
	if err := e.clipboard.WriteText(strings.Join(lines, "\n")); err != nil {
		e.log.Warn("copying rows to clipboard", "rows", len(rows), "error", err)
	}
}

func (m Model) updateKey(msg tea.KeyMsg) tea.Cmd {
	e := m.e
	if e.keys.Dispatch(msg) {
		return nil
	}

	km := e.km
	switch {
	case key.Matches(msg, km.ToggleEdit):
		e.toggleEdit()
	case key.Matches(msg, km.Save):
		e.editing.SaveChanges()
	case key.Matches(msg, km.Cancel):
		e.editing.CancelChanges()
	case key.Matches(msg, km.PinColumn):
		if ac, ok := e.store.ActiveCell(); ok {
			e.pinning.TogglePinned(ac.ColumnID)
			return e.pinning.ForceUpdatePinning()
		}
	case key.Matches(msg, km.UnpinAll):
		e.pinning.UnpinAllColumns()
		return e.pinning.ForceUpdatePinning()
	case key.Matches(msg, km.SortColumn):
		if ac, ok := e.store.ActiveCell(); ok {
			e.store.ToggleSort(ac.ColumnID)
		}
	case key.Matches(msg, km.NextPage):
		e.pagination.GoToNextPage()
	case key.Matches(msg, km.PrevPage):
		e.pagination.GoToPreviousPage()
	case key.Matches(msg, km.CyclePage):
		e.pagination.CyclePageSize()
	case key.Matches(msg, km.FullWidth):
		e.store.ToggleFullWidth()
		e.viewport.Width = e.gridWidth()
	case key.Matches(msg, km.Copy):
		m.CopySelection()
	default:
		if e.store.EditMode() {
			return e.cells.Update(msg)
		}
	}
	return nil
}

func (m Model) updateMouse(msg tea.MouseMsg) tea.Cmd {
	e := m.e
	if isWheel(msg) {
		var cmd tea.Cmd
		e.viewport, cmd = e.viewport.Update(msg)
		return cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	slots := e.slots()
	switch {
	case msg.Y == 0:
		slot, ok := slotAt(slots, msg.X)
		if !ok {
			return nil
		}
		if msg.Ctrl || msg.Alt {
			e.pinning.TogglePinned(slot.col.ID)
			return e.pinning.ForceUpdatePinning()
		}
		e.store.ToggleSort(slot.col.ID)

	case msg.Y >= bodyTop && msg.Y < bodyTop+e.viewport.Height:
		rows := e.pagination.DisplayedRows()
		i := msg.Y - bodyTop + e.viewport.YOffset
		if i < 0 || i >= len(rows) {
			return nil
		}
		if e.store.EditMode() {
			if slot, ok := slotAt(slots, msg.X); ok {
				e.editing.SetActiveCell(rows[i].ID, slot.col.ID)
			}
			return nil
		}
		e.selection.SetModifiers(Modifiers{Shift: msg.Shift, Ctrl: msg.Ctrl, Meta: msg.Alt})
		e.selection.HandleRowClick(rows[i])
	}
	return nil
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown)
}

func (e *engine) toggleEdit() {
	e.editing.ToggleReadOnly()
	if !e.store.EditMode() {
		return
	}
	if _, ok := e.store.ActiveCell(); ok {
		return
	}
	rows := e.pagination.DisplayedRows()
	cols := e.store.tbl.LeafColumns()
	if len(rows) > 0 && len(cols) > 0 {
		e.editing.SetActiveCell(rows[0].ID, cols[0].ID)
	}
}

// sync observes row set replacements and keeps the active cell and its
// editor consistent with what is rendered.
func (e *engine) sync() {
	e.store.SyncRows()
	e.store.syncSelectionFromTable()
	e.editing.Reconcile()

	ac, ok := e.store.ActiveCell()
	if !ok || !e.store.EditMode() {
		e.cells.Blur()
		return
	}
	if at, focused := e.cells.Focused(); !focused || at != ac {
		e.cells.Focus(ac)
	}
}

package grid

import (
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/iw2rmb/gridkit/table"
)

// ActiveCell is the cell targeted by keyboard navigation and editing.
type ActiveCell struct {
	RowID    string
	ColumnID string
}

// Modifiers tracks the modifier keys held during row clicks.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Meta  bool
}

// State is a snapshot of every grid state slice.
type State struct {
	Sorting          []table.SortSpec
	ColumnFilters    []table.ColumnFilter
	ColumnVisibility map[string]bool
	ColumnPinning    table.Pinning
	RowSelection     map[string]bool
	Pagination       table.Pagination

	FullWidth bool
	ReadOnly  bool

	PendingChanges []PendingChange
	ActiveCell     *ActiveCell

	// LastSelectedRowIndex is the shift-click anchor, -1 when unset.
	LastSelectedRowIndex int
	Modifiers            Modifiers
}

// Store owns the grid state for one grid instance. Controllers share it and
// each mutates only the slices it owns.
type Store struct {
	tbl     Table
	storage Storage
	log     *slog.Logger

	editable  bool
	paginate  bool
	pageSizes []int

	sorting    []table.SortSpec
	filters    []table.ColumnFilter
	visibility map[string]bool
	pinning    table.Pinning
	selection  map[string]bool
	pagination table.Pagination
	fullWidth  bool
	readOnly   bool
	pending    PendingBuffer
	active     ActiveCell
	hasActive  bool
	anchor     int
	modifiers  Modifiers

	lastVersion uint64

	// OnScrollTop is called when the full-width layout is entered.
	OnScrollTop func()
}

// NewStore builds the state with defaults and hydrates the full-width
// preference from cfg.Storage.
func NewStore(tbl Table, cfg Config) *Store {
	sizes := slices.DeleteFunc(slices.Clone(cfg.PageSizes), func(n int) bool { return n <= 0 })
	if len(sizes) == 0 {
		sizes = []int{DefaultPageSize}
	}
	s := &Store{
		tbl:         tbl,
		storage:     cfg.Storage,
		log:         cfg.logger(),
		editable:    cfg.Editable,
		paginate:    cfg.Paginate,
		pageSizes:   sizes,
		visibility:  map[string]bool{},
		pinning:     table.Pinning{Left: []string{}, Right: []string{}},
		selection:   map[string]bool{},
		pagination:  table.Pagination{PageIndex: 0, PageSize: sizes[0]},
		readOnly:    true,
		anchor:      -1,
		lastVersion: tbl.Version(),
	}
	s.fullWidth = s.loadFullWidth()

	tbl.SetSorting(nil)
	tbl.SetColumnPinning(s.pinning)
	tbl.SetPageSize(s.pagination.PageSize)
	tbl.SetPageIndex(0)
	tbl.SetRowSelection(nil)
	return s
}

// Table returns the materialization collaborator.
func (s *Store) Table() Table { return s.tbl }

// State returns a deep snapshot of the current state.
func (s *Store) State() State {
	st := State{
		Sorting:              slices.Clone(s.sorting),
		ColumnFilters:        slices.Clone(s.filters),
		ColumnVisibility:     maps.Clone(s.visibility),
		ColumnPinning:        s.pinning.Clone(),
		RowSelection:         maps.Clone(s.selection),
		Pagination:           s.pagination,
		FullWidth:            s.fullWidth,
		ReadOnly:             s.readOnly,
		PendingChanges:       s.pending.Changes(),
		LastSelectedRowIndex: s.anchor,
		Modifiers:            s.modifiers,
	}
	if s.hasActive {
		ac := s.active
		st.ActiveCell = &ac
	}
	return st
}

// Editable reports whether the grid is configured to allow edit mode.
func (s *Store) Editable() bool { return s.editable }

// ReadOnly reports the read-only flag.
func (s *Store) ReadOnly() bool { return s.readOnly }

// EditMode reports whether cells are currently editable.
func (s *Store) EditMode() bool { return !s.readOnly && s.editable }

// FullWidth reports the full-width layout preference.
func (s *Store) FullWidth() bool { return s.fullWidth }

// Paginated reports whether the page window is enabled.
func (s *Store) Paginated() bool { return s.paginate }

// ToggleFullWidth flips the full-width layout, persists it and scrolls to the
// top when entering full width. Persistence failures are logged.
func (s *Store) ToggleFullWidth() {
	s.fullWidth = !s.fullWidth
	if s.storage != nil {
		if err := s.storage.Set(FullWidthKey, strconv.FormatBool(s.fullWidth)); err != nil {
			s.log.Warn("persisting full-width preference", "key", FullWidthKey, "error", err)
		}
	}
	if s.fullWidth && s.OnScrollTop != nil {
		s.OnScrollTop()
	}
}

func (s *Store) loadFullWidth() bool {
	if s.storage == nil {
		return false
	}
	v, ok, err := s.storage.Get(FullWidthKey)
	if err != nil {
		s.log.Warn("reading full-width preference", "key", FullWidthKey, "error", err)
		return false
	}
	if !ok {
		return false
	}
	switch v {
	case "true":
		return true
	case "false":
		return false
	default:
		s.log.Debug("ignoring malformed full-width preference", "key", FullWidthKey, "value", v)
		return false
	}
}

// SyncRows resets the page index and drops selection flags of removed rows
// when the row set was replaced since the last call, then keeps the page
// index within the page count. It reports whether a replacement was
// observed.
func (s *Store) SyncRows() bool {
	v := s.tbl.Version()
	if v == s.lastVersion {
		s.clampPage()
		return false
	}
	s.lastVersion = v
	s.setPageIndex(0)
	s.pruneSelection()
	return true
}

func (s *Store) setPageIndex(i int) {
	if !s.paginate {
		return
	}
	s.pagination.PageIndex = i
	s.tbl.SetPageIndex(i)
}

func (s *Store) totalPages() int {
	size := max(s.pagination.PageSize, 1)
	pages := (len(s.tbl.Rows()) + size - 1) / size
	return max(pages, 1)
}

func (s *Store) clampPage() {
	if last := s.totalPages() - 1; s.pagination.PageIndex > last {
		s.setPageIndex(last)
	}
}

func (s *Store) pruneSelection() {
	sel := s.tbl.RowSelection()
	pruned := false
	for id := range sel {
		if _, ok := s.tbl.Row(id); !ok {
			delete(sel, id)
			pruned = true
		}
	}
	if pruned {
		s.tbl.SetRowSelection(sel)
	}
	s.syncSelectionFromTable()
}

// SetSorting replaces the sort order.
func (s *Store) SetSorting(specs []table.SortSpec) {
	s.sorting = slices.Clone(specs)
	s.tbl.SetSorting(s.sorting)
}

// ToggleSort cycles a sortable column through ascending, descending and
// unsorted. The column becomes the only sort key.
func (s *Store) ToggleSort(columnID string) {
	c, ok := s.tbl.Column(columnID)
	if !ok || !c.CanSort {
		return
	}
	var next []table.SortSpec
	i := slices.IndexFunc(s.sorting, func(sp table.SortSpec) bool { return sp.ColumnID == columnID })
	switch {
	case i < 0:
		next = []table.SortSpec{{ColumnID: columnID}}
	case !s.sorting[i].Desc:
		next = []table.SortSpec{{ColumnID: columnID, Desc: true}}
	}
	s.SetSorting(next)
}

// SetColumnFilter sets or, with an empty value, clears a column filter and
// returns to the first page.
func (s *Store) SetColumnFilter(columnID string, value any) {
	i := slices.IndexFunc(s.filters, func(f table.ColumnFilter) bool { return f.ColumnID == columnID })
	empty := value == nil || table.FormatValue(value) == ""
	switch {
	case empty && i >= 0:
		s.filters = slices.Delete(s.filters, i, i+1)
	case empty:
	case i >= 0:
		s.filters[i].Value = value
	default:
		s.filters = append(s.filters, table.ColumnFilter{ColumnID: columnID, Value: value})
	}
	s.tbl.SetColumnFilter(columnID, value)
	s.setPageIndex(0)
}

// SetColumnVisibility shows or hides a column.
func (s *Store) SetColumnVisibility(columnID string, visible bool) {
	s.visibility[columnID] = visible
	s.tbl.SetColumnVisibility(columnID, visible)
}

// Modifiers returns the tracked modifier keys.
func (s *Store) Modifiers() Modifiers { return s.modifiers }

// PendingChanges returns a copy of the uncommitted edits.
func (s *Store) PendingChanges() []PendingChange { return s.pending.Changes() }

// ActiveCell returns the active cell, if any.
func (s *Store) ActiveCell() (ActiveCell, bool) { return s.active, s.hasActive }

func (s *Store) setActive(ac ActiveCell) {
	s.active = ac
	s.hasActive = true
}

func (s *Store) clearActive() {
	s.active = ActiveCell{}
	s.hasActive = false
}

// syncSelectionFromTable pulls the collaborator's selection flags into the
// local mirror and reports whether they differed.
func (s *Store) syncSelectionFromTable() bool {
	next := s.tbl.RowSelection()
	if next == nil {
		next = map[string]bool{}
	}
	if maps.Equal(next, s.selection) {
		return false
	}
	s.selection = next
	return true
}

package table

import "slices"

// Options configures a new Table.
type Options struct {
	PageSize int // default: 10
}

// Table is the materialization state for one grid.
type Table struct {
	cols    []Column
	data    []Row
	version uint64

	sorting    []SortSpec
	filters    []ColumnFilter
	hidden     map[string]bool
	pinning    Pinning
	pagination Pagination
	selected   map[string]bool
}

func New(cols []Column, data []Row, opt Options) *Table {
	if opt.PageSize <= 0 {
		opt.PageSize = 10
	}
	t := &Table{
		cols:       slices.Clone(cols),
		hidden:     make(map[string]bool),
		pinning:    Pinning{Left: []string{}, Right: []string{}},
		pagination: Pagination{PageSize: opt.PageSize},
		selected:   make(map[string]bool),
	}
	t.data = reindex(data)
	return t
}

// Version changes whenever the data set is replaced.
func (t *Table) Version() uint64 { return t.version }

// SetData replaces the source data set. Selection flags are kept by row id.
func (t *Table) SetData(data []Row) {
	t.data = reindex(data)
	t.version++
}

// Data returns the source data set in its original order.
func (t *Table) Data() []Row { return slices.Clone(t.data) }

// Row looks up a row of the source data set by id.
func (t *Table) Row(id string) (Row, bool) {
	for _, r := range t.data {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

// Rows returns the current row model: filtered, then sorted.
func (t *Table) Rows() []Row {
	rows := t.filtered()
	t.sort(rows)
	return rows
}

// Columns returns every column in definition order.
func (t *Table) Columns() []Column { return slices.Clone(t.cols) }

// Column looks up a column definition by id.
func (t *Table) Column(id string) (Column, bool) {
	for _, c := range t.cols {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// LeafColumns returns the visible columns in display order: left-pinned
// columns in pin order, then unpinned columns, then right-pinned columns.
func (t *Table) LeafColumns() []Column {
	out := make([]Column, 0, len(t.cols))
	for _, id := range t.pinning.Left {
		if c, ok := t.Column(id); ok && !t.hidden[id] {
			out = append(out, c)
		}
	}
	for _, c := range t.cols {
		if t.hidden[c.ID] || slices.Contains(t.pinning.Left, c.ID) || slices.Contains(t.pinning.Right, c.ID) {
			continue
		}
		out = append(out, c)
	}
	for _, id := range t.pinning.Right {
		if c, ok := t.Column(id); ok && !t.hidden[id] {
			out = append(out, c)
		}
	}
	return out
}

// SetColumnVisibility shows or hides a column.
func (t *Table) SetColumnVisibility(id string, visible bool) {
	if visible {
		delete(t.hidden, id)
		return
	}
	t.hidden[id] = true
}

// IsColumnVisible reports whether the column is shown.
func (t *Table) IsColumnVisible(id string) bool { return !t.hidden[id] }

// ColumnWidth returns the column's rendered width in cells.
func (t *Table) ColumnWidth(id string) int {
	c, ok := t.Column(id)
	if !ok || c.Width <= 0 {
		return DefaultColumnWidth
	}
	return c.Width
}

func reindex(data []Row) []Row {
	out := make([]Row, len(data))
	for i, r := range data {
		r.Index = i
		out[i] = r
	}
	return out
}

package grid

import "github.com/iw2rmb/gridkit/table"

// Table is the row and column materialization the grid drives.
// *table.Table implements it.
type Table interface {
	// Version changes whenever the underlying row set is replaced.
	Version() uint64
	// Rows returns the filtered, sorted row model.
	Rows() []table.Row
	// Row looks up a row of the unfiltered data set.
	Row(id string) (table.Row, bool)
	// LeafColumns returns the visible columns in display order.
	LeafColumns() []table.Column
	Column(id string) (table.Column, bool)
	ColumnWidth(id string) int

	SetSorting(specs []table.SortSpec)
	SetColumnFilter(columnID string, value any)
	SetColumnVisibility(columnID string, visible bool)

	ColumnPinning() table.Pinning
	SetColumnPinning(p table.Pinning)
	// PinnedStart returns the cumulative width of left-pinned columns
	// placed before columnID.
	PinnedStart(columnID string) int

	SetPageSize(size int)
	SetPageIndex(index int)

	SetRowSelected(id string, selected bool)
	RowSelection() map[string]bool
	SetRowSelection(sel map[string]bool)
	// SelectedRows reads back the selected rows of the row model.
	SelectedRows() ([]table.Row, error)
}

var _ Table = (*table.Table)(nil)

func indexOfRow(rows []table.Row, id string) int {
	for i, r := range rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func indexOfColumn(cols []table.Column, id string) int {
	for i, c := range cols {
		if c.ID == id {
			return i
		}
	}
	return -1
}

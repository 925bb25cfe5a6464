package table

import "fmt"

// DefaultColumnWidth is used for columns that do not declare a fixed Width.
const DefaultColumnWidth = 12

// Row is one record of the data set.
type Row struct {
	// ID is stable across sorting, filtering and data reloads.
	ID string
	// Index is the row's position in the source data set.
	Index  int
	Values map[string]any
}

// Value returns the raw value stored under columnID, or nil.
func (r Row) Value(columnID string) any {
	if r.Values == nil {
		return nil
	}
	return r.Values[columnID]
}

// Column describes one leaf column.
type Column struct {
	ID     string
	Header string

	// Width is a fixed width in terminal cells. Zero means DefaultColumnWidth.
	Width int

	CanSort bool
	CanPin  bool
}

// SortSpec orders rows by one column.
type SortSpec struct {
	ColumnID string
	Desc     bool
}

// ColumnFilter restricts rows to those whose ColumnID value contains Value.
type ColumnFilter struct {
	ColumnID string
	Value    any
}

// Pinning lists pinned column ids per edge, in pin order.
type Pinning struct {
	Left  []string
	Right []string
}

// Clone returns a deep copy of p.
func (p Pinning) Clone() Pinning {
	return Pinning{
		Left:  append([]string{}, p.Left...),
		Right: append([]string{}, p.Right...),
	}
}

// Pagination is the page window state.
type Pagination struct {
	PageIndex int
	PageSize  int
}

// FormatValue renders a cell value as plain text.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

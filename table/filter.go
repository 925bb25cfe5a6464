package table

import (
	"slices"
	"strings"
)

// ColumnFilters returns the active column filters.
func (t *Table) ColumnFilters() []ColumnFilter { return slices.Clone(t.filters) }

// SetColumnFilter sets the filter value for one column. A nil or empty value
// removes the filter.
func (t *Table) SetColumnFilter(columnID string, value any) {
	i := slices.IndexFunc(t.filters, func(f ColumnFilter) bool { return f.ColumnID == columnID })
	if value == nil || FormatValue(value) == "" {
		if i >= 0 {
			t.filters = slices.Delete(t.filters, i, i+1)
		}
		return
	}
	if i >= 0 {
		t.filters[i].Value = value
		return
	}
	t.filters = append(t.filters, ColumnFilter{ColumnID: columnID, Value: value})
}

func (t *Table) filtered() []Row {
	out := make([]Row, 0, len(t.data))
	for _, r := range t.data {
		if t.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func (t *Table) matches(r Row) bool {
	for _, f := range t.filters {
		needle := strings.ToLower(FormatValue(f.Value))
		hay := strings.ToLower(FormatValue(r.Value(f.ColumnID)))
		if !strings.Contains(hay, needle) {
			return false
		}
	}
	return true
}

package table

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrStaleSelection reports selection flags for rows that are no longer part
// of the data set.
var ErrStaleSelection = errors.New("selection references missing rows")

// SetRowSelected sets or clears one row's selection flag.
func (t *Table) SetRowSelected(id string, selected bool) {
	if selected {
		t.selected[id] = true
		return
	}
	delete(t.selected, id)
}

// IsRowSelected reports the row's selection flag.
func (t *Table) IsRowSelected(id string) bool { return t.selected[id] }

// RowSelection returns a copy of the selection flags.
func (t *Table) RowSelection() map[string]bool { return maps.Clone(t.selected) }

// SetRowSelection replaces all selection flags.
func (t *Table) SetRowSelection(sel map[string]bool) {
	t.selected = make(map[string]bool, len(sel))
	for id, on := range sel {
		if on {
			t.selected[id] = true
		}
	}
}

// SelectedRows returns the selected rows of the current row model, in row
// model order.
func (t *Table) SelectedRows() ([]Row, error) {
	var missing []string
	for id := range t.selected {
		if _, ok := t.Row(id); !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("%w: %s", ErrStaleSelection, strings.Join(missing, ", "))
	}

	out := []Row{}
	for _, r := range t.Rows() {
		if t.selected[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}
